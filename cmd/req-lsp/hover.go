package main

import (
	"context"
	"fmt"
	"strings"

	"go.lsp.dev/protocol"

	"github.com/req-format/go-req/manifest"
)

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.file == nil {
		return nil, nil
	}

	line := int(params.Position.Line)
	r := requirementAtLine(doc.file, line)
	if r == nil {
		return nil, nil
	}

	hoverText := buildHoverText(r)
	if hoverText == "" {
		return nil, nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hoverText,
		},
	}, nil
}

func requirementAtLine(f *manifest.File, line int) *manifest.Requirement {
	for _, r := range f.Requirements() {
		if r.Pos == nil {
			continue
		}
		if r.Pos.Line() == line {
			return r
		}
	}
	return nil
}

func buildHoverText(r *manifest.Requirement) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n\n", r.Canonical())
	if r.Name != r.Canonical() {
		fmt.Fprintf(&b, "written as `%s`\n\n", r.Name)
	}
	switch {
	case r.URL != "":
		fmt.Fprintf(&b, "installed from `%s`\n", r.URL)
	case len(r.Specifiers) == 0:
		b.WriteString("unconstrained\n")
	default:
		if pin, ok := r.Pinned(); ok {
			fmt.Fprintf(&b, "pinned to `%s`\n", pin)
		} else {
			fmt.Fprintf(&b, "constrained `%s`\n", r.Specifiers)
		}
	}
	if len(r.Extras) != 0 {
		fmt.Fprintf(&b, "\nextras: `%s`\n", strings.Join(r.Extras, "`, `"))
	}
	if r.Marker != "" {
		fmt.Fprintf(&b, "\nonly when `%s`\n", r.Marker)
	}
	return b.String()
}
