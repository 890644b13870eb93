package manifest

import (
	"strings"

	"github.com/req-format/go-req/token"
	"github.com/req-format/go-req/version"
)

// Requirement is one dependency line: a project name with optional
// extras, version constraints or a direct URL, an environment marker,
// and per-requirement installer options (hashes).
type Requirement struct {
	Name       string
	Extras     []string
	Specifiers version.Specifiers
	Marker     string
	URL        string
	Options    []string
	Comment    string
	Pos        *token.Pos
}

func (r *Requirement) Canonical() string {
	return Canonical(r.Name)
}

// Pinned returns the exact pinned version, if any.
func (r *Requirement) Pinned() (string, bool) {
	return r.Specifiers.Pin()
}

// String renders the requirement in normalized form, without its
// trailing comment.
func (r *Requirement) String() string {
	var b strings.Builder
	b.WriteString(r.Name)
	if len(r.Extras) != 0 {
		b.WriteByte('[')
		b.WriteString(strings.Join(r.Extras, ","))
		b.WriteByte(']')
	}
	if r.URL != "" {
		b.WriteString(" @ ")
		b.WriteString(r.URL)
	} else if len(r.Specifiers) != 0 {
		b.WriteString(r.Specifiers.String())
	}
	if r.Marker != "" {
		b.WriteString(" ; ")
		b.WriteString(r.Marker)
	}
	for _, opt := range r.Options {
		b.WriteByte(' ')
		b.WriteString(opt)
	}
	return b.String()
}

func (r *Requirement) Clone() *Requirement {
	c := *r
	c.Extras = append([]string(nil), r.Extras...)
	c.Specifiers = append(version.Specifiers(nil), r.Specifiers...)
	c.Options = append([]string(nil), r.Options...)
	return &c
}

// Directive is an installer flag line such as `-r base.txt` or
// `--index-url https://...`.
type Directive struct {
	Flag    string
	Args    []string
	Comment string
	Pos     *token.Pos
}

func (d *Directive) String() string {
	parts := append([]string{d.Flag}, d.Args...)
	return strings.Join(parts, " ")
}

// Include returns the referenced file for -r/-c style directives.
func (d *Directive) Include() (string, bool) {
	switch d.Flag {
	case "-r", "--requirement", "-c", "--constraint":
		if len(d.Args) == 1 {
			return d.Args[0], true
		}
	}
	return "", false
}

func (d *Directive) Clone() *Directive {
	c := *d
	c.Args = append([]string(nil), d.Args...)
	return &c
}
