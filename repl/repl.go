// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"hof/internal/driver"
	"hof/internal/eval"
	"hof/internal/term"
	"hof/internal/trace"
)

const PROMPT = "hof> "

// stdoutSink adapts an io.Writer to term.Sink for the REPL's P output.
type stdoutSink struct {
	w io.Writer
}

func (s stdoutSink) WriteString(str string) (int, error) {
	return io.WriteString(s.w, str)
}

// Start runs an interactive loop: each line is whitespace-stripped and fed
// to the driver as a complete Hof program, sharing one Interpreter (and
// therefore one cache and one RNG) across the whole session, so later
// lines can observe memoization effects from earlier ones.
func Start(in io.Reader, out io.Writer, verbose bool) {
	scanner := bufio.NewScanner(in)
	hub := trace.New(out, verbose, trace.DetectFormat(0))
	ip := eval.New(stdoutSink{w: out}, hub)

	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			return
		}

		line := stripWhitespace(scanner.Text())
		if line == "" {
			continue
		}

		hub.ProgramStart(line)
		result, remaining := driver.Run(ip, line)
		hub.Input(remaining)
		if result != nil {
			hub.Return(result)
			fmt.Fprintf(out, "=> %s\n", result.Fingerprint())
		}
		hub.ProgramEnd()
	}
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

var _ term.Sink = stdoutSink{}
