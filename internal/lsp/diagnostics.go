package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"smpl/internal/errors"
	"smpl/internal/lower"
)

const diagnosticSource = "smpl"

// DiagnosticData travels in Diagnostic.Data so code actions can offer the
// suggested fix without recompiling.
type DiagnosticData struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Replacement string `json:"replacement,omitempty"`
}

// Diagnose compiles text and returns every diagnostic it produced. A graph
// construction failure is reported as a single internal error at the top
// of the file.
func Diagnose(path, text string) []protocol.Diagnostic {
	res, err := lower.Compile(path, text)
	if err != nil {
		internal := errors.InternalError(err, errors.Position{Filename: path, Line: 1, Column: 1})
		return ConvertDiagnostics([]errors.CompilerError{internal})
	}
	return ConvertDiagnostics(res.Diagnostics)
}

// ConvertDiagnostics transforms compiler diagnostics into LSP diagnostics.
// The result is never nil so that publishing it clears stale entries.
func ConvertDiagnostics(diags []errors.CompilerError) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(diags))

	for _, d := range diags {
		line := uint32(max(0, d.Position.Line-1))    // 0-based
		start := uint32(max(0, d.Position.Column-1)) // 0-based
		end := start + uint32(max(1, d.Length))

		message := d.Message
		if d.HelpText != "" {
			message += "\nhelp: " + d.HelpText
		}

		data := DiagnosticData{
			Category:    errors.GetErrorCategory(d.Code),
			Description: errors.GetErrorDescription(d.Code),
		}
		for _, s := range d.Suggestions {
			if s.Replacement != "" {
				data.Replacement = s.Replacement
				break
			}
		}

		diag := protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: line, Character: start},
				End:   protocol.Position{Line: line, Character: end},
			},
			Severity: ptrSeverity(severityOf(d.Level)),
			Code:     &protocol.IntegerOrString{Value: d.Code},
			Source:   ptrString(diagnosticSource),
			Message:  message,
			Data:     data,
		}
		if d.Code == errors.WarningUnreachableCode {
			diag.Tags = []protocol.DiagnosticTag{protocol.DiagnosticTagUnnecessary}
		}
		out = append(out, diag)
	}

	return out
}

func severityOf(level errors.ErrorLevel) protocol.DiagnosticSeverity {
	switch level {
	case errors.Warning:
		return protocol.DiagnosticSeverityWarning
	case errors.Note:
		return protocol.DiagnosticSeverityInformation
	case errors.Help:
		return protocol.DiagnosticSeverityHint
	}
	return protocol.DiagnosticSeverityError
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
