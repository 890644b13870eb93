// Package encode renders manifests as requirements text (optionally
// colored, sorted, or stripped of comments), json, yaml, or the
// dependencies table of a pyproject toml file.
package encode
