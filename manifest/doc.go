// Package manifest is the in-memory representation of a requirements
// file: an ordered list of requirement, directive, comment and blank
// lines, with canonical project-name indexing.
package manifest
