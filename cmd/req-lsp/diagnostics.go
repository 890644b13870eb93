package main

import (
	"context"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/req-format/go-req/lint"
)

func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	doc := s.docs.get(uri)
	if doc == nil {
		return
	}

	diagnostics := s.validateDocument(doc)

	if s.conn != nil {
		s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         protocol.DocumentURI(uri),
			Diagnostics: diagnostics,
		})
	}
}

func (s *Server) validateDocument(doc *document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	linter, err := lint.New(nil)
	if err != nil {
		s.logger.Error("linter init failed", zap.Error(err))
		return diagnostics
	}
	ds, err := linter.CheckFile(doc.file, doc.parseErrs)
	if err != nil {
		s.logger.Error("lint failed", zap.String("uri", doc.uri), zap.Error(err))
		return diagnostics
	}
	for i := range ds {
		diagnostics = append(diagnostics, toProtocol(&ds[i]))
	}
	return diagnostics
}

func toProtocol(d *lint.Diagnostic) protocol.Diagnostic {
	rng := protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   protocol.Position{Line: 0, Character: 0},
	}
	if d.Pos != nil {
		line, col := d.Pos.LineCol()
		rng = protocol.Range{
			Start: protocol.Position{
				Line:      uint32(line),
				Character: uint32(col),
			},
			End: protocol.Position{
				Line:      uint32(line),
				Character: uint32(col + 1),
			},
		}
	}
	return protocol.Diagnostic{
		Range:    rng,
		Severity: severity(d.Severity),
		Code:     d.Code,
		Message:  d.Message,
		Source:   "req",
	}
}

func severity(s lint.Severity) protocol.DiagnosticSeverity {
	switch s {
	case lint.SeverityError:
		return protocol.DiagnosticSeverityError
	case lint.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}
