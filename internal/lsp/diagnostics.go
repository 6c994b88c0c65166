package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	hoferrors "hof/internal/errors"
	"hof/internal/driver"
	"hof/internal/eval"
	"hof/internal/translate/lambda"
	"hof/internal/translate/ski"
)

// Diagnose runs the translator or evaluator appropriate to path's
// extension over text and converts whatever it fails on into LSP
// diagnostics. A .ski or .lambda file is diagnosed by its translator; any
// other extension is treated as Hof source.
func Diagnose(path, text string) []protocol.Diagnostic {
	switch {
	case strings.HasSuffix(path, ".ski"):
		_, err := ski.Translate(text)
		return fromError(err, "hof-ski")
	case strings.HasSuffix(path, ".lambda"):
		_, err := lambda.Translate(text)
		return fromError(err, "hof-lambda")
	default:
		return diagnoseHof(text)
	}
}

// diagnoseHof runs the program the same way the CLI would, since in Hof
// parsing and reduction are interleaved and there is no syntax-only check
// to fall back to. A program that hits the recursion budget is reported
// as a diagnostic rather than killing the server.
func diagnoseHof(text string) (diagnostics []protocol.Diagnostic) {
	program := stripWhitespace(text)
	if program == "" {
		return nil
	}

	ip := eval.New(nil, nil)
	ip.OnDepthExceeded = func() { panic(eval.DepthExceeded{}) }

	var runErr error
	func() {
		defer eval.Recover(&runErr)
		_, remaining := driver.Run(ip, program)
		if len(remaining) > 0 {
			diagnostics = append(diagnostics, unconsumedInputDiagnostic(len(program)))
		}
	}()

	if runErr != nil {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    zeroRange(len(program)),
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("hof"),
			Message:  runErr.Error(),
		})
	}

	return diagnostics
}

func unconsumedInputDiagnostic(length int) protocol.Diagnostic {
	return protocol.Diagnostic{
		Range:    zeroRange(length),
		Severity: ptrSeverity(protocol.DiagnosticSeverityWarning),
		Source:   ptrString("hof"),
		Message:  "program left unconsumed terms on the evaluation stack",
	}
}

func zeroRange(length int) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   protocol.Position{Line: 0, Character: uint32(length)},
	}
}

func fromError(err error, source string) []protocol.Diagnostic {
	if err == nil {
		return nil
	}

	te, ok := err.(*hoferrors.TranslateError)
	if !ok {
		return []protocol.Diagnostic{{
			Range:    protocol.Range{Start: protocol.Position{Line: 0, Character: 0}, End: protocol.Position{Line: 0, Character: 1}},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString(source),
			Message:  err.Error(),
		}}
	}

	line := uint32(0)
	if te.Position.Line > 0 {
		line = uint32(te.Position.Line - 1)
	}
	col := uint32(0)
	if te.Position.Column > 0 {
		col = uint32(te.Position.Column - 1)
	}

	return []protocol.Diagnostic{{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: col},
			End:   protocol.Position{Line: line, Character: col + 1},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString(source),
		Message:  te.Message,
	}}
}

func stripWhitespace(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
