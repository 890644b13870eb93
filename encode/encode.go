package encode

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/req-format/go-req/format"
	"github.com/req-format/go-req/manifest"
)

type encState struct {
	format    format.Format
	comments  bool
	sort      bool
	canonical bool
	colors    *Colors
}

// Encode writes a manifest to w in the format selected by opts.
// Text output preserves layout unless sorting or comment stripping is
// requested.
func Encode(f *manifest.File, w io.Writer, opts ...EncodeOption) error {
	es := &encState{comments: true}
	for _, opt := range opts {
		opt(es)
	}
	if es.sort || !es.comments || es.canonical {
		f = f.Clone()
	}
	if es.canonical {
		for _, r := range f.Requirements() {
			r.Name = r.Canonical()
		}
	}
	if es.sort {
		f.Sort()
	}
	if !es.comments {
		stripComments(f)
	}
	switch es.format {
	case format.TextFormat:
		return encodeText(f, w, es)
	case format.JSONFormat:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(f.Doc())
	case format.YAMLFormat:
		d, err := yaml.Marshal(f.Doc())
		if err != nil {
			return err
		}
		_, err = w.Write(d)
		return err
	case format.TOMLFormat:
		return encodeTOML(f, w)
	default:
		return fmt.Errorf("%w: %d", format.ErrBadFormat, es.format)
	}
}

// MustString renders f as requirements text, panicking on write
// errors; for tests and diagnostics.
func MustString(f *manifest.File, opts ...EncodeOption) string {
	var b strings.Builder
	if err := Encode(f, &b, opts...); err != nil {
		panic(err)
	}
	return b.String()
}

func stripComments(f *manifest.File) {
	out := f.Lines[:0]
	for _, ln := range f.Lines {
		switch ln.Kind {
		case manifest.KindBlank, manifest.KindComment:
			continue
		case manifest.KindRequirement:
			ln.Req.Comment = ""
		case manifest.KindDirective:
			ln.Dir.Comment = ""
		}
		out = append(out, ln)
	}
	f.Lines = out
}

func encodeText(f *manifest.File, w io.Writer, es *encState) error {
	for i := range f.Lines {
		ln := &f.Lines[i]
		var s string
		switch ln.Kind {
		case manifest.KindBlank:
			s = ""
		case manifest.KindComment:
			s = es.colors.paint(CommentColor, "#"+ln.Comment)
		case manifest.KindDirective:
			s = directiveText(ln.Dir, es)
		case manifest.KindRequirement:
			s = requirementText(ln.Req, es)
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}

func directiveText(d *manifest.Directive, es *encState) string {
	var b strings.Builder
	b.WriteString(es.colors.paint(FlagColor, d.Flag))
	for _, a := range d.Args {
		b.WriteByte(' ')
		b.WriteString(a)
	}
	writeComment(&b, d.Comment, es)
	return b.String()
}

func requirementText(r *manifest.Requirement, es *encState) string {
	var b strings.Builder
	b.WriteString(es.colors.paint(NameColor, r.Name))
	if len(r.Extras) != 0 {
		b.WriteString(es.colors.paint(ExtrasColor, "["+strings.Join(r.Extras, ",")+"]"))
	}
	if r.URL != "" {
		b.WriteString(" @ ")
		b.WriteString(es.colors.paint(URLColor, r.URL))
	} else {
		for i, spec := range r.Specifiers {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(es.colors.paint(OpColor, spec.Op))
			b.WriteString(es.colors.paint(VersionColor, spec.Version))
		}
	}
	if r.Marker != "" {
		b.WriteString(" ; ")
		b.WriteString(es.colors.paint(MarkerColor, r.Marker))
	}
	for _, opt := range r.Options {
		b.WriteByte(' ')
		b.WriteString(es.colors.paint(OptionColor, opt))
	}
	writeComment(&b, r.Comment, es)
	return b.String()
}

func writeComment(b *strings.Builder, comment string, es *encState) {
	if comment == "" {
		return
	}
	b.WriteString("  ")
	b.WriteString(es.colors.paint(CommentColor, "#"+comment))
}

// tomlProject mirrors the [project] table of a pyproject file, the
// TOML shape dependencies convert into.
type tomlProject struct {
	Project struct {
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
}

func encodeTOML(f *manifest.File, w io.Writer) error {
	var p tomlProject
	for _, r := range f.Requirements() {
		dep := r.Clone()
		dep.Options = nil // hashes are installer options, not dependency syntax
		dep.Comment = ""
		p.Project.Dependencies = append(p.Project.Dependencies, dep.String())
	}
	return toml.NewEncoder(w).Encode(&p)
}
