// Package diff compares two manifests by canonical project name and
// applies JSON patches to a manifest's interop form.
package diff
