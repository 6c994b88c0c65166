package trace

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Format selects how trace lines are decorated: "bash" colors the output
// with ANSI codes, "none" leaves it plain.
type Format int

const (
	FormatBash Format = iota
	FormatNone
)

// DetectFormat picks Bash when fd looks like a real terminal and None
// otherwise, so trace output degrades to plain text when piped or
// redirected.
func DetectFormat(fd uintptr) Format {
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return FormatBash
	}
	return FormatNone
}

type paint func(a ...interface{}) string

type palette struct {
	green, red, cyan, yellow, purple, blue paint
}

func identity(a ...interface{}) string {
	return fmt.Sprint(a...)
}

func newPalette(f Format) palette {
	if f == FormatNone {
		return palette{identity, identity, identity, identity, identity, identity}
	}
	return palette{
		green:  color.New(color.FgGreen).SprintFunc(),
		red:    color.New(color.FgRed).SprintFunc(),
		cyan:   color.New(color.FgCyan).SprintFunc(),
		yellow: color.New(color.FgYellow).SprintFunc(),
		purple: color.New(color.FgMagenta).SprintFunc(),
		blue:   color.New(color.FgBlue).SprintFunc(),
	}
}
