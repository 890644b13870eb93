package manifest

import (
	"sort"

	"github.com/req-format/go-req/token"
)

type LineKind int

const (
	KindBlank LineKind = iota
	KindComment
	KindRequirement
	KindDirective
)

func (k LineKind) String() string {
	return map[LineKind]string{
		KindBlank:       "blank",
		KindComment:     "comment",
		KindRequirement: "requirement",
		KindDirective:   "directive",
	}[k]
}

// Line is one logical manifest line. Exactly one of Req and Dir is set
// for requirement and directive lines; comment lines carry Comment.
type Line struct {
	Kind    LineKind
	Comment string
	Req     *Requirement
	Dir     *Directive
	Pos     *token.Pos
}

// File is a parsed manifest, order and layout preserving.
type File struct {
	Lines []Line
}

// Requirements returns the requirement lines in file order.
func (f *File) Requirements() []*Requirement {
	var res []*Requirement
	for i := range f.Lines {
		if f.Lines[i].Kind == KindRequirement {
			res = append(res, f.Lines[i].Req)
		}
	}
	return res
}

// Directives returns the installer flag lines in file order.
func (f *File) Directives() []*Directive {
	var res []*Directive
	for i := range f.Lines {
		if f.Lines[i].Kind == KindDirective {
			res = append(res, f.Lines[i].Dir)
		}
	}
	return res
}

// ByName groups requirements by canonical project name, preserving
// file order within each group.
func (f *File) ByName() map[string][]*Requirement {
	res := map[string][]*Requirement{}
	for _, r := range f.Requirements() {
		key := r.Canonical()
		res[key] = append(res[key], r)
	}
	return res
}

// Get returns the first requirement whose canonical name matches.
func (f *File) Get(name string) *Requirement {
	key := Canonical(name)
	for _, r := range f.Requirements() {
		if r.Canonical() == key {
			return r
		}
	}
	return nil
}

func (f *File) Clone() *File {
	c := &File{Lines: make([]Line, len(f.Lines))}
	for i, ln := range f.Lines {
		cl := ln
		if ln.Req != nil {
			cl.Req = ln.Req.Clone()
		}
		if ln.Dir != nil {
			cl.Dir = ln.Dir.Clone()
		}
		c.Lines[i] = cl
	}
	return c
}

// Sort orders each contiguous run of requirement lines by canonical
// name. Comments, blanks and directives act as section boundaries, so
// a manifest grouped with comment headers keeps its groups.
func (f *File) Sort() {
	i := 0
	for i < len(f.Lines) {
		if f.Lines[i].Kind != KindRequirement {
			i++
			continue
		}
		j := i
		for j < len(f.Lines) && f.Lines[j].Kind == KindRequirement {
			j++
		}
		run := f.Lines[i:j]
		sort.SliceStable(run, func(a, b int) bool {
			return run[a].Req.Canonical() < run[b].Req.Canonical()
		})
		i = j
	}
}

// Dedupe removes requirement lines that repeat an earlier line's
// canonical name with an identical constraint set. Conflicting
// duplicates are kept for the linter to report.
func (f *File) Dedupe() {
	seen := map[string]string{}
	out := f.Lines[:0]
	for _, ln := range f.Lines {
		if ln.Kind == KindRequirement {
			key := ln.Req.Canonical()
			spec := ln.Req.Specifiers.String()
			if prev, ok := seen[key]; ok && prev == spec {
				continue
			}
			if _, ok := seen[key]; !ok {
				seen[key] = spec
			}
		}
		out = append(out, ln)
	}
	f.Lines = out
}
