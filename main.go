// SPDX-License-Identifier: Apache-2.0

// Command hof runs Hof combinator-logic programs: it reads source from
// --file or --program, optionally appends --input, optionally translates
// from SKI or lambda-calculus notation, and reduces the result to normal
// form, printing whatever the program explicitly P-prints.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"hof/internal/driver"
	"hof/internal/errors"
	"hof/internal/eval"
	"hof/internal/term"
	"hof/internal/trace"
	"hof/internal/translate/lambda"
	"hof/internal/translate/ski"
	"hof/repl"
)

// stdoutSink adapts stdout to term.Sink for the P combinator.
type stdoutSink struct{ w io.Writer }

func (s stdoutSink) WriteString(str string) (int, error) { return io.WriteString(s.w, str) }

var _ term.Sink = stdoutSink{}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run implements the CLI contract. It is factored out of main so exit
// codes are testable without actually terminating the process.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("hof", flag.ContinueOnError)
	fs.SetOutput(stderr)

	file := fs.String("file", "", "path to a Hof/SKI/lambda source file")
	program := fs.String("program", "", "inline Hof/SKI/lambda source")
	input := fs.String("input", "", "extra source appended to the program after whitespace removal")
	verbose := fs.Bool("verbose", false, "emit a reduction trace on stderr")
	translateFlag := fs.String("translate", "", "re-emit Hof source translated from the named notation (ski|lambda) instead of running it")
	replFlag := fs.Bool("repl", false, "start an interactive session instead of running a program")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *replFlag {
		if *file != "" || *program != "" {
			fmt.Fprintln(stderr, "hof: --repl cannot be combined with --file or --program")
			return 1
		}
		repl.Start(os.Stdin, stdout, *verbose)
		return 0
	}

	if (*file == "") == (*program == "") {
		fmt.Fprintln(stderr, "hof: exactly one of --file or --program is required")
		return 1
	}

	var source string
	var fileExt string
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			fmt.Fprintf(stderr, "hof: %s\n", err)
			return 1
		}
		source = string(data)
		fileExt = extensionOf(*file)
	} else {
		source = *program
	}

	if *input != "" {
		source += stripWhitespace(*input)
	}

	if *translateFlag != "" {
		switch *translateFlag {
		case "ski", "lambda":
		default:
			fmt.Fprintf(stderr, "hof: --translate must be \"ski\" or \"lambda\", got %q\n", *translateFlag)
			return 1
		}

		translated, err := translateSource(*translateFlag, source)
		if err != nil {
			fmt.Fprint(stderr, errors.NewReporter(*file, source).Format(err))
			return 1
		}
		fmt.Fprintln(stdout, translated)
		return 0
	}

	// A .ski/.lambda --file auto-translates even without an explicit
	// --translate flag; the result is then executed rather than printed.
	hofSource := source
	switch fileExt {
	case "ski", "lambda":
		translated, err := translateSource(fileExt, source)
		if err != nil {
			fmt.Fprint(stderr, errors.NewReporter(*file, source).Format(err))
			return 1
		}
		hofSource = translated
	}

	return execute(stripWhitespace(hofSource), stdout, stderr, *verbose)
}

func translateSource(kind, source string) (string, error) {
	if kind == "ski" {
		return ski.Translate(source)
	}
	return lambda.Translate(source)
}

// execute reduces program to normal form and returns the process exit
// code. The recursion-budget abort (exit 2) happens inside eval via
// os.Exit; it is the one failure mode this function never returns from
// normally.
func execute(program string, stdout, stderr io.Writer, verbose bool) int {
	format := trace.FormatNone
	if f, ok := stderr.(interface{ Fd() uintptr }); ok {
		format = trace.DetectFormat(f.Fd())
	}
	hub := trace.New(stderr, verbose, format)
	ip := eval.New(stdoutSink{w: stdout}, hub)

	hub.ProgramStart(program)
	result, remaining := driver.Run(ip, program)
	hub.Input(remaining)
	if result != nil {
		hub.Return(result)
	}
	hub.ProgramEnd()

	if !verbose {
		fmt.Fprintln(stdout)
	}
	return 0
}

func extensionOf(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return ""
	}
	return path[i+1:]
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
