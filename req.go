// Package req is the root of go-req, a toolchain for pip-style
// requirements manifests: parsing, rendering, linting, diffing, and
// index resolution checks. This package holds file-level conveniences;
// the machinery lives in the subpackages.
package req

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/req-format/go-req/manifest"
	"github.com/req-format/go-req/parse"
)

// Load parses requirements text.
func Load(d []byte, opts ...parse.ParseOption) (*manifest.File, error) {
	return parse.Parse(d, opts...)
}

// LoadFile parses the named requirements file.
func LoadFile(path string, opts ...parse.ParseOption) (*manifest.File, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse.Parse(d, opts...)
}

// Flatten parses the named file and inlines every -r/-c include,
// depth first, relative to the including file. Include cycles are an
// error.
func Flatten(path string, opts ...parse.ParseOption) (*manifest.File, error) {
	seen := map[string]bool{}
	return flatten(path, seen, opts)
}

func flatten(path string, seen map[string]bool, opts []parse.ParseOption) (*manifest.File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if seen[abs] {
		return nil, fmt.Errorf("include cycle through %s", path)
	}
	seen[abs] = true
	defer delete(seen, abs)

	f, err := LoadFile(path, opts...)
	if err != nil {
		return nil, err
	}
	out := &manifest.File{}
	for _, ln := range f.Lines {
		if ln.Kind == manifest.KindDirective {
			if inc, ok := ln.Dir.Include(); ok {
				sub, err := flatten(filepath.Join(filepath.Dir(path), inc), seen, opts)
				if err != nil {
					return nil, fmt.Errorf("including %s: %w", inc, err)
				}
				out.Lines = append(out.Lines, sub.Lines...)
				continue
			}
		}
		out.Lines = append(out.Lines, ln)
	}
	return out, nil
}
