// Package format enumerates the serialization formats go-req reads and
// writes: requirements text, json, yaml, and toml (pyproject).
package format
