package diff

import (
	"fmt"
	"io"
	"sort"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/req-format/go-req/encode"
	"github.com/req-format/go-req/manifest"
)

type ChangeKind int

const (
	Added ChangeKind = iota
	Removed
	Changed
)

func (k ChangeKind) String() string {
	return map[ChangeKind]string{
		Added:   "added",
		Removed: "removed",
		Changed: "changed",
	}[k]
}

type Change struct {
	Kind ChangeKind
	Name string // canonical
	Old  *manifest.Requirement
	New  *manifest.Requirement
}

type Diff struct {
	Changes []Change
}

func (d *Diff) Empty() bool { return len(d.Changes) == 0 }

// Make computes the structural difference between two manifests keyed
// by canonical project name. Reordering alone produces no changes.
func Make(from, to *manifest.File) *Diff {
	fromBy, toBy := from.ByName(), to.ByName()
	names := map[string]bool{}
	for n := range fromBy {
		names[n] = true
	}
	for n := range toBy {
		names[n] = true
	}
	ordered := make([]string, 0, len(names))
	for n := range names {
		ordered = append(ordered, n)
	}
	sort.Strings(ordered)

	d := &Diff{}
	for _, n := range ordered {
		f, t := fromBy[n], toBy[n]
		switch {
		case len(f) == 0:
			for _, r := range t {
				d.Changes = append(d.Changes, Change{Kind: Added, Name: n, New: r})
			}
		case len(t) == 0:
			for _, r := range f {
				d.Changes = append(d.Changes, Change{Kind: Removed, Name: n, Old: r})
			}
		default:
			// compare first occurrences; duplicate handling is the
			// linter's business
			if !sameRequirement(f[0], t[0]) {
				d.Changes = append(d.Changes, Change{Kind: Changed, Name: n, Old: f[0], New: t[0]})
			}
		}
	}
	return d
}

func sameRequirement(a, b *manifest.Requirement) bool {
	ac, bc := a.Clone(), b.Clone()
	ac.Comment, bc.Comment = "", ""
	return ac.String() == bc.String()
}

// Text writes the diff one change per line, +/-/~ prefixed.
func (d *Diff) Text(w io.Writer, colors *encode.Colors) error {
	for _, ch := range d.Changes {
		var line string
		switch ch.Kind {
		case Added:
			line = paint(colors, encode.VersionColor, "+ "+ch.New.String())
		case Removed:
			line = paint(colors, encode.MarkerColor, "- "+ch.Old.String())
		case Changed:
			line = paint(colors, encode.OpColor,
				fmt.Sprintf("~ %s: %s -> %s", ch.Name, constraintText(ch.Old), constraintText(ch.New)))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func constraintText(r *manifest.Requirement) string {
	if r.URL != "" {
		return "@ " + r.URL
	}
	if len(r.Specifiers) == 0 {
		return "(unconstrained)"
	}
	return r.Specifiers.String()
}

func paint(colors *encode.Colors, attr encode.ColorAttr, s string) string {
	if colors == nil {
		return s
	}
	f := colors.Map[attr]
	if f == nil {
		f = colors.Default
	}
	return f("%s", s)
}

// Doc is the json/yaml shape of a diff.
type Doc struct {
	Added   []manifest.ReqDoc `json:"added,omitempty" yaml:"added,omitempty"`
	Removed []manifest.ReqDoc `json:"removed,omitempty" yaml:"removed,omitempty"`
	Changed []ChangedDoc      `json:"changed,omitempty" yaml:"changed,omitempty"`
}

type ChangedDoc struct {
	Name string `json:"name" yaml:"name"`
	Old  string `json:"old" yaml:"old"`
	New  string `json:"new" yaml:"new"`
}

func (d *Diff) Doc() *Doc {
	doc := &Doc{}
	for _, ch := range d.Changes {
		switch ch.Kind {
		case Added:
			doc.Added = append(doc.Added, reqDoc(ch.New))
		case Removed:
			doc.Removed = append(doc.Removed, reqDoc(ch.Old))
		case Changed:
			doc.Changed = append(doc.Changed, ChangedDoc{
				Name: ch.Name,
				Old:  constraintText(ch.Old),
				New:  constraintText(ch.New),
			})
		}
	}
	return doc
}

func reqDoc(r *manifest.Requirement) manifest.ReqDoc {
	return manifest.ReqDoc{
		Name:       r.Name,
		Extras:     r.Extras,
		Constraint: r.Specifiers.String(),
		URL:        r.URL,
		Marker:     r.Marker,
	}
}

// TextDiff renders a unified-style line diff of the two manifests'
// text forms. changed reports whether any line was inserted or
// deleted; equal inputs still produce context lines.
func TextDiff(from, to *manifest.File) (text string, changed bool) {
	fromText := encode.MustString(from)
	toText := encode.MustString(to)
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(fromText, toText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	var out []byte
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffpatch.DiffInsert:
			prefix = "+ "
			changed = true
		case diffpatch.DiffDelete:
			prefix = "- "
			changed = true
		}
		for _, line := range splitKeep(d.Text) {
			out = append(out, prefix...)
			out = append(out, line...)
			out = append(out, '\n')
		}
	}
	return string(out), changed
}

func splitKeep(s string) []string {
	var res []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			res = append(res, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		res = append(res, s[start:])
	}
	return res
}
