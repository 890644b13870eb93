// Package index checks manifests against a PyPI-compatible package
// index: whether each pinned version is published (and not yanked),
// and what the newest constraint-satisfying release is.
package index
