// Package trace implements the verbose-mode event hooks: a prefix/postfix
// stack that nests progressively deeper sub-evaluations, and the event
// callbacks (eval step, rewrite, output boundaries, program start/end)
// that a verbose printer consumes. Hub is the sole consumer contract; the
// CLI's --verbose flag wires a Hub to stderr, but nothing in
// internal/eval depends on trace beyond this interface.
package trace

import (
	"fmt"
	"io"

	"hof/internal/term"
)

// Hub collects trace events and renders them to an io.Writer (normally
// os.Stderr) when verbose is enabled. A disabled Hub writes nothing: the
// rendering methods return early unless Verbose() is true. EvalStep still
// updates the summary counters reported by Stats, and the prefix/postfix
// stack still tracks pushes and pops.
type Hub struct {
	out     io.Writer
	verbose bool
	pal     palette

	program string
	prefix  []string
	postfix []string

	cacheHits, cacheMisses int
	depthAchieved          int
	longestEvalLine        int
}

// New returns a Hub writing to out. verbose gates all rendering; when
// false, Hub.Verbose() reports false and nothing is written to out.
func New(out io.Writer, verbose bool, format Format) *Hub {
	return &Hub{out: out, verbose: verbose, pal: newPalette(format)}
}

// Verbose reports whether this Hub is actively recording.
func (h *Hub) Verbose() bool { return h.verbose }

func (h *Hub) print(s string) {
	if !h.verbose {
		return
	}
	fmt.Fprint(h.out, s)
}

func (h *Hub) prefixString() string {
	s := ""
	for _, p := range h.prefix {
		s += p
	}
	return s
}

// postfixString joins the postfix stack innermost-first: the most recently
// pushed postfix (the deepest nested sub-evaluation) renders closest to the
// eval line.
func (h *Hub) postfixString() string {
	s := ""
	for i := len(h.postfix) - 1; i >= 0; i-- {
		s += h.postfix[i]
	}
	return s
}

// Blue decorates s in the palette's blue, for prefix fragments that want
// to stand out from the eval line they annotate.
func (h *Hub) Blue(s string) string {
	return h.pal.blue(s)
}

// PushPrefix appends a prefix fragment and returns a handle for PopPrefix.
func (h *Hub) PushPrefix(s string) int {
	h.prefix = append(h.prefix, s)
	return len(h.prefix) - 1
}

// ReplacePrefix overwrites the fragment at handle.
func (h *Hub) ReplacePrefix(handle int, s string) {
	h.prefix[handle] = s
}

// PopPrefix removes the fragment pushed with handle. Callers pop in LIFO
// order (each pop is deferred or paired with its push), so handle is
// always len-1.
func (h *Hub) PopPrefix(handle int) {
	h.prefix = append(h.prefix[:handle], h.prefix[handle+1:]...)
}

// PushPostfix pushes a postfix fragment and returns a handle for PopPostfix.
func (h *Hub) PushPostfix(s string) int {
	h.postfix = append(h.postfix, s)
	return len(h.postfix) - 1
}

// PopPostfix removes the fragment pushed with handle.
func (h *Hub) PopPostfix(handle int) {
	h.postfix = append(h.postfix[:handle], h.postfix[handle+1:]...)
}

// EvalStep emits one "eval(left,right,depth,cached?)" line, before the
// reducer dispatches. It also accumulates the end-of-program summary
// counters (cache hit/miss totals, max depth, longest line).
func (h *Hub) EvalStep(left, right *term.Term, depth int, cached bool) {
	if cached {
		h.cacheHits++
	} else {
		h.cacheMisses++
	}
	if depth > h.depthAchieved {
		h.depthAchieved = depth
	}

	if !h.verbose {
		return
	}

	var leftStr string
	colorFn := h.pal.green
	if left.Tag == term.Capture {
		colorFn = h.pal.cyan
	}
	leftStr = colorFn(left.Display())
	rightStr := h.pal.red(right.Fingerprint())

	line := leftStr + rightStr
	if len(line) > h.longestEvalLine {
		h.longestEvalLine = len(line)
	}

	h.print("  " + h.prefixString() + leftStr + rightStr + h.postfixString() + "\n")
}

// Rewrite emits an optimization-rule replacement event, e.g. "SKy -> I".
func (h *Hub) Rewrite(from, to *term.Term) {
	if !h.verbose {
		return
	}
	fromStr := from.Fingerprint()
	toStr := to.Fingerprint()
	if fromStr == "" || toStr == "" {
		return
	}
	h.print("  " + h.prefixString() + h.pal.yellow(fromStr+"->"+toStr) + h.postfixString() + "\n")
}

// ProgramStart announces the program about to run.
func (h *Hub) ProgramStart(program string) {
	if !h.verbose {
		return
	}
	h.program = "program: " + program
	h.print(h.pal.purple(h.program) + "\n")
	h.print(h.pal.purple("begin") + "\n")
}

// ProgramEnd reports the cache hit/miss counts and maximum depth reached.
func (h *Hub) ProgramEnd() {
	if !h.verbose {
		return
	}
	h.print(h.pal.purple("end") + "\n")
	h.print(h.pal.red(fmt.Sprintf("\tcacheHits: %d\n\tcacheMisses: %d\n\t>depth: %d\n\t>line: %d\n",
		h.cacheHits, h.cacheMisses, h.depthAchieved, h.longestEvalLine)))
}

// OutputStart/OutputEnd bracket a P write.
func (h *Hub) OutputStart() {
	if !h.verbose {
		return
	}
	h.print(h.pal.purple("output: "))
}

func (h *Hub) OutputEnd() {
	if !h.verbose {
		return
	}
	h.print("\n")
}

// Return reports the program's final returned term.
func (h *Hub) Return(r *term.Term) {
	if !h.verbose {
		return
	}
	ret := r.Fingerprint()
	if ret == "" {
		return
	}
	h.print(h.pal.purple("return type: " + r.Tag.String()) + "\n")
	h.print("  " + h.prefixString() + ret + h.postfixString() + "\n")
}

// Input reports whatever is left unconsumed in the evaluation list after
// the scan. Unconsumed input is diagnostic-only, never an error.
func (h *Hub) Input(remaining []*term.Term) {
	if !h.verbose || len(remaining) == 0 {
		return
	}
	h.print(h.pal.purple("input") + "\n")
	s := "  "
	for _, t := range remaining {
		s += t.Fingerprint()
	}
	h.print(s + "\n")
}

// Stats exposes the accumulated cache hit/miss and depth counters, mainly
// for tests asserting on cache behavior.
func (h *Hub) Stats() (hits, misses, maxDepth, longestLine int) {
	return h.cacheHits, h.cacheMisses, h.depthAchieved, h.longestEvalLine
}
