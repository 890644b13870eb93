// Package pyproject reads the [project] dependency tables of a
// pyproject.toml file and converts them into a manifest.
package pyproject

import (
	"fmt"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/req-format/go-req/manifest"
	"github.com/req-format/go-req/parse"
)

type project struct {
	Project struct {
		Name                 string              `toml:"name"`
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
}

// Load reads a pyproject.toml file and returns its dependencies as a
// manifest: the main dependencies first, then each optional group
// under a comment header, in group name order.
func Load(path string) (*manifest.File, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(d)
}

func Parse(d []byte) (*manifest.File, error) {
	var p project
	if err := toml.Unmarshal(d, &p); err != nil {
		return nil, fmt.Errorf("bad pyproject: %w", err)
	}
	f := &manifest.File{}
	if err := appendDeps(f, p.Project.Dependencies); err != nil {
		return nil, err
	}
	groups := make([]string, 0, len(p.Project.OptionalDependencies))
	for g := range p.Project.OptionalDependencies {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	for _, g := range groups {
		if len(f.Lines) != 0 {
			f.Lines = append(f.Lines, manifest.Line{Kind: manifest.KindBlank})
		}
		f.Lines = append(f.Lines, manifest.Line{
			Kind:    manifest.KindComment,
			Comment: " optional: " + g,
		})
		if err := appendDeps(f, p.Project.OptionalDependencies[g]); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func appendDeps(f *manifest.File, deps []string) error {
	for _, dep := range deps {
		df, err := parse.Parse([]byte(dep))
		if err != nil {
			return fmt.Errorf("bad dependency %q: %w", dep, err)
		}
		reqs := df.Requirements()
		if len(reqs) != 1 {
			return fmt.Errorf("bad dependency %q", dep)
		}
		reqs[0].Pos = nil // positions refer to the toml string, not a file
		f.Lines = append(f.Lines, manifest.Line{
			Kind: manifest.KindRequirement,
			Req:  reqs[0],
		})
	}
	return nil
}
