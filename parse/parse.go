// Package parse turns requirements text into a manifest.File.
package parse

import (
	"strings"

	"github.com/req-format/go-req/manifest"
	"github.com/req-format/go-req/token"
	"github.com/req-format/go-req/version"
)

type parseOpts struct {
	keepGoing bool
	errs      *[]error
}

type ParseOption func(*parseOpts)

// KeepGoing collects per-line errors in errs instead of failing on the
// first malformed line. Malformed lines are dropped from the result.
func KeepGoing(errs *[]error) ParseOption {
	return func(o *parseOpts) {
		o.keepGoing = true
		o.errs = errs
	}
}

func Parse(d []byte, opts ...ParseOption) (*manifest.File, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	var tokOpts []token.TokenOpt
	if pOpts.keepGoing {
		tokOpts = append(tokOpts, token.KeepGoing(pOpts.errs))
	}
	toks, err := token.Tokenize(d, tokOpts...)
	if err != nil {
		return nil, err
	}
	f := &manifest.File{}
	i := 0
	for i < len(toks) {
		line, next := cutLine(toks, i)
		i = next
		if len(line) == 0 {
			continue
		}
		f.Lines = append(f.Lines, buildLine(line))
	}
	return f, nil
}

// cutLine returns the tokens of the next logical line, including its
// terminating TNewline if present.
func cutLine(toks []token.Token, i int) ([]token.Token, int) {
	j := i
	for j < len(toks) && toks[j].Type != token.TNewline {
		j++
	}
	if j < len(toks) {
		j++
	}
	return toks[i:j], j
}

func buildLine(line []token.Token) manifest.Line {
	pos := line[0].Pos
	switch line[0].Type {
	case token.TNewline:
		return manifest.Line{Kind: manifest.KindBlank, Pos: pos}
	case token.TComment:
		return manifest.Line{
			Kind:    manifest.KindComment,
			Comment: commentText(&line[0]),
			Pos:     pos,
		}
	case token.TFlag:
		return manifest.Line{Kind: manifest.KindDirective, Dir: buildDirective(line), Pos: pos}
	default:
		return manifest.Line{Kind: manifest.KindRequirement, Req: buildRequirement(line), Pos: pos}
	}
}

func buildDirective(line []token.Token) *manifest.Directive {
	d := &manifest.Directive{Flag: line[0].String(), Pos: line[0].Pos}
	for i := 1; i < len(line); i++ {
		switch line[i].Type {
		case token.TArg:
			d.Args = append(d.Args, line[i].String())
		case token.TComment:
			d.Comment = commentText(&line[i])
		}
	}
	return d
}

func buildRequirement(line []token.Token) *manifest.Requirement {
	r := &manifest.Requirement{Name: line[0].String(), Pos: line[0].Pos}
	var op string
	for i := 1; i < len(line); i++ {
		t := &line[i]
		switch t.Type {
		case token.TExtras:
			r.Extras = splitExtras(t.String())
		case token.TOp:
			op = t.String()
		case token.TVersion:
			r.Specifiers = append(r.Specifiers, version.Specifier{
				Op:      op,
				Version: t.String(),
			})
		case token.TURL:
			r.URL = t.String()
		case token.TMarker:
			r.Marker = t.String()
		case token.TOption:
			r.Options = append(r.Options, t.String())
		case token.TComment:
			r.Comment = commentText(t)
		}
	}
	return r
}

// commentText strips the leading '#'; the remainder round-trips
// verbatim.
func commentText(t *token.Token) string {
	return strings.TrimPrefix(t.String(), "#")
}

func splitExtras(s string) []string {
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	var res []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			res = append(res, part)
		}
	}
	return res
}
