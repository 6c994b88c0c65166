// Package errors renders translator failures as caret-style diagnostics.
// Malformed input is the translators' problem; the core evaluator never
// sees it.
package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Position locates a byte offset in source as a 1-based line/column pair.
type Position struct {
	Line   int
	Column int
}

// TranslateError is a syntactic failure surfaced by a translator (ski or
// lambda).
type TranslateError struct {
	Message  string
	Position Position
}

func (e *TranslateError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Position.Line, e.Position.Column, e.Message)
}

// Reporter formats a TranslateError against the source it was parsed from,
// in the caret style used elsewhere for source diagnostics.
type Reporter struct {
	filename string
	lines    []string
}

// NewReporter builds a Reporter for source under the given filename ("" or
// "-" for stdin/inline programs).
func NewReporter(filename, source string) *Reporter {
	return &Reporter{filename: filename, lines: strings.Split(source, "\n")}
}

// Format renders err as a multi-line, colorized diagnostic. Any other
// error type is rendered plainly, with no caret.
func (r *Reporter) Format(err error) string {
	te, ok := err.(*TranslateError)
	if !ok {
		return color.New(color.FgRed, color.Bold).Sprint("error: ") + err.Error() + "\n"
	}

	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()

	var b strings.Builder
	b.WriteString(red("error") + ": " + te.Message + "\n")

	name := r.filename
	if name == "" {
		name = "<program>"
	}
	fmt.Fprintf(&b, " %s %s:%d:%d\n", dim("-->"), name, te.Position.Line, te.Position.Column)

	if te.Position.Line >= 1 && te.Position.Line <= len(r.lines) {
		line := r.lines[te.Position.Line-1]
		fmt.Fprintf(&b, " %s %s\n", dim("│"), line)
		col := te.Position.Column
		if col < 1 {
			col = 1
		}
		marker := strings.Repeat(" ", col-1) + red("^")
		fmt.Fprintf(&b, " %s %s\n", dim("│"), marker)
	}

	b.WriteString(bold("\n"))
	return b.String()
}
