package manifest

import "github.com/req-format/go-req/version"

// Doc is the interop shape of a manifest, used for json/yaml output
// and as the document that JSON patches apply to. Blank lines and
// standalone comments are not represented.
type Doc struct {
	Requirements []ReqDoc `json:"requirements" yaml:"requirements"`
	Directives   []DirDoc `json:"directives,omitempty" yaml:"directives,omitempty"`
}

type ReqDoc struct {
	Name       string   `json:"name" yaml:"name"`
	Extras     []string `json:"extras,omitempty" yaml:"extras,omitempty"`
	Constraint string   `json:"constraint,omitempty" yaml:"constraint,omitempty"`
	URL        string   `json:"url,omitempty" yaml:"url,omitempty"`
	Marker     string   `json:"marker,omitempty" yaml:"marker,omitempty"`
	Options    []string `json:"options,omitempty" yaml:"options,omitempty"`
	Comment    string   `json:"comment,omitempty" yaml:"comment,omitempty"`
}

type DirDoc struct {
	Flag    string   `json:"flag" yaml:"flag"`
	Args    []string `json:"args,omitempty" yaml:"args,omitempty"`
	Comment string   `json:"comment,omitempty" yaml:"comment,omitempty"`
}

func (f *File) Doc() *Doc {
	d := &Doc{}
	for _, r := range f.Requirements() {
		d.Requirements = append(d.Requirements, ReqDoc{
			Name:       r.Name,
			Extras:     append([]string(nil), r.Extras...),
			Constraint: r.Specifiers.String(),
			URL:        r.URL,
			Marker:     r.Marker,
			Options:    append([]string(nil), r.Options...),
			Comment:    r.Comment,
		})
	}
	for _, dir := range f.Directives() {
		d.Directives = append(d.Directives, DirDoc{
			Flag:    dir.Flag,
			Args:    append([]string(nil), dir.Args...),
			Comment: dir.Comment,
		})
	}
	return d
}

// FromDoc materializes a File from its interop shape: directives
// first, then requirements, each on its own line.
func FromDoc(d *Doc) (*File, error) {
	f := &File{}
	for i := range d.Directives {
		dd := &d.Directives[i]
		f.Lines = append(f.Lines, Line{
			Kind: KindDirective,
			Dir:  &Directive{Flag: dd.Flag, Args: dd.Args, Comment: dd.Comment},
		})
	}
	for i := range d.Requirements {
		rd := &d.Requirements[i]
		specs, err := version.ParseSpecifiers(rd.Constraint)
		if err != nil {
			return nil, err
		}
		f.Lines = append(f.Lines, Line{
			Kind: KindRequirement,
			Req: &Requirement{
				Name:       rd.Name,
				Extras:     rd.Extras,
				Specifiers: specs,
				URL:        rd.URL,
				Marker:     rd.Marker,
				Options:    rd.Options,
				Comment:    rd.Comment,
			},
		})
	}
	return f, nil
}
