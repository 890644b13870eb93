package main

import (
	"context"
	"strings"

	"go.lsp.dev/protocol"

	"github.com/req-format/go-req/encode"
)

func (s *Server) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.file == nil || len(doc.parseErrs) != 0 {
		// don't rewrite documents that don't fully parse
		return nil, nil
	}
	formatted := encode.MustString(doc.file)
	if formatted == doc.content {
		return nil, nil
	}
	lines := uint32(strings.Count(doc.content, "\n") + 1)
	return []protocol.TextEdit{{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   protocol.Position{Line: lines, Character: 0},
		},
		NewText: formatted,
	}}, nil
}
