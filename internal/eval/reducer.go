// Package eval implements the reduction engine: eval(left,right) dispatch,
// the per-combinator rules, the S/B/C optimization rewrites, the recursion
// budget, and the memoization gate. This is the interpreter's core, kept
// as a tagged-variant switch over the term model rather than interface
// dispatch.
package eval

import (
	"fmt"
	"os"

	"hof/internal/cache"
	"hof/internal/rng"
	"hof/internal/term"
	"hof/internal/trace"
)

// maxDepth is the recursion budget: once reached, the program aborts
// rather than risk exhausting the host stack. This is the interpreter's
// only back-pressure against nonterminating programs.
const maxDepth = 1000

// Interpreter owns one evaluation run's shared, mutable state: the
// singleton combinators, the memo cache, the RNG behind R, the trace hub,
// and the in-flight recursion depth. None of this is process-wide; each
// Interpreter is independent, so concurrent interpreters never interfere.
type Interpreter struct {
	Singletons *term.Singletons
	Cache      *cache.Cache
	RNG        *rng.Source
	Hub        *trace.Hub

	// OnDepthExceeded runs once the recursion budget is reached. The
	// default installed by New prints the fixed diagnostic and exits the process
	// with code 2, matching the CLI's documented contract. Long-lived hosts
	// that cannot afford to die mid-session (the language server) install a
	// hook that panics DepthExceeded instead, see eval.Recover.
	OnDepthExceeded func()

	depth int
}

// New builds an Interpreter. sink receives P's output (may be nil to
// discard it); hub may be nil, in which case trace events are simply
// skipped.
func New(sink term.Sink, hub *trace.Hub) *Interpreter {
	if hub == nil {
		hub = trace.New(nil, false, trace.FormatNone)
	}
	return &Interpreter{
		Singletons:      term.NewSingletons(sink),
		Cache:           cache.New(),
		RNG:             rng.New(),
		Hub:             hub,
		OnDepthExceeded: exitOnDepthExceeded,
	}
}

// exitOnDepthExceeded prints the fixed non-termination diagnostic and
// exits the process with code 2.
func exitOnDepthExceeded() {
	fmt.Fprintln(os.Stderr, "hof: program has exceeded maximum recursion depth")
	os.Exit(2)
}

// DepthExceeded is the sentinel panic value a non-exiting OnDepthExceeded
// hook should raise; recover it with Recover.
type DepthExceeded struct{}

func (DepthExceeded) Error() string { return "hof: program has exceeded maximum recursion depth" }

// Recover turns a DepthExceeded panic into an error, for hosts (the
// language server) that run untrusted/partial programs and must survive
// one of them looping instead of exiting.
func Recover(err *error) {
	if r := recover(); r != nil {
		if de, ok := r.(DepthExceeded); ok {
			*err = de
			return
		}
		panic(r)
	}
}

// Eval is the reduction engine's single entry point: apply left to right,
// consulting and updating the memo cache, and return the resulting term.
func (ip *Interpreter) Eval(left, right *term.Term) *term.Term {
	ip.depth++
	if ip.depth >= maxDepth {
		ip.OnDepthExceeded()
	}
	defer func() { ip.depth-- }()

	key := left.FingerprintApplied(right)
	cached := ip.Cache.Result(key)
	ip.Hub.EvalStep(left, right, ip.depth, cached != nil)
	if cached != nil {
		return cached
	}

	var r *term.Term
	switch left.Tag {
	case term.I:
		r = right
	case term.K:
		r = term.NewCapture(term.K, 1, right)
	case term.S:
		r = term.NewCapture(term.S, 1, right)
	case term.P:
		r = ip.applyP(right)
	case term.R:
		r = term.NewCapture(term.R, 1, right)
	case term.Var:
		r = right
	case term.A:
		r = ip.applyA(left, right)
	case term.Capture:
		r = ip.applyCapture(left, right)
	default:
		panic("eval: unreachable combinator tag")
	}

	if ip.shouldCache(left, r) {
		ip.Cache.Insert(key, r)
	}

	return r
}

// shouldCache is the memoization gate: never cache an in-progress
// Capture, never cache through P or R, and never cache beneath an A-spine
// headed by P or R.
func (ip *Interpreter) shouldCache(left, r *term.Term) bool {
	if r.Tag == term.Capture {
		return false
	}
	if left.Tag == term.P || left.Tag == term.R {
		return false
	}
	if left.Tag == term.A && left.DoNotCache() {
		return false
	}
	return true
}

// applyCapture handles delivery of an argument to a Capture term: if still
// short of argsToCapture, append and return the same reference; otherwise
// dispatch to the saturated callback rule.
func (ip *Interpreter) applyCapture(cap, right *term.Term) *term.Term {
	if len(cap.CapArgs) < cap.ArgsToCapture {
		cap.AppendArg(right)
		return cap
	}

	switch cap.Callback {
	case term.K:
		return ip.applyKSaturated(cap, right)
	case term.R:
		return ip.applyRSaturated(cap, right)
	case term.S:
		return ip.applySSaturated(cap, right)
	case term.B:
		return ip.applyBSaturated(cap, right)
	case term.C:
		return ip.applyCSaturated(cap, right)
	default:
		panic("eval: unreachable capture callback")
	}
}

// applyKSaturated implements Kxy = x.
func (ip *Interpreter) applyKSaturated(cap, _ *term.Term) *term.Term {
	return cap.CapArgs[0]
}

// applyRSaturated draws a fair coin between the stored x and the
// delivered y.
func (ip *Interpreter) applyRSaturated(cap, y *term.Term) *term.Term {
	x := cap.CapArgs[0]
	if ip.RNG.Bool() {
		return x
	}
	return y
}

// applySSaturated handles the 1-capture -> 2-capture promotion of S,
// running the rewrite optimizations before (possibly) completing the
// ordinary capture, and the classical S rule once a 2-capture S is
// saturated by its third argument.
func (ip *Interpreter) applySSaturated(cap, arg *term.Term) *term.Term {
	if cap.ArgsToCapture == 1 {
		return ip.promoteS(cap, arg)
	}

	// 2-capture S saturated by z: Sxyz = xz(yz), lazily.
	x, y, z := cap.CapArgs[0], cap.CapArgs[1], arg

	var first *term.Term
	if ip.Hub.Verbose() {
		post := ip.Hub.PushPostfix(y.Fingerprint() + z.Fingerprint())
		first = ip.Eval(x, z)
		ip.Hub.PopPostfix(post)
	} else {
		first = ip.Eval(x, z)
	}

	var second *term.Term
	if cached := ip.Cache.Result(y.FingerprintApplied(z)); cached != nil {
		second = cached
	} else {
		second = term.NewThunk(y, z)
	}

	return term.NewThunk(first, second)
}

// promoteS runs the optimization rules that trigger when S receives its
// second argument, before the capture is simply extended to 2 args.
func (ip *Interpreter) promoteS(cap, arg *term.Term) *term.Term {
	x := cap.CapArgs[0]

	if x == ip.Singletons.K {
		ip.Hub.Rewrite(cap, ip.Singletons.I)
		return ip.Singletons.I
	}

	cap.ArgsToCapture = 2
	y := arg

	if isKApp(x) {
		p := x.Right
		switch {
		case isKApp(y):
			q := y.Right
			pq := term.NewThunk(p, q)
			ip.Hub.Rewrite(cap, pq)
			return term.NewCapture(term.K, 1, pq)
		case y == ip.Singletons.I:
			ip.Hub.Rewrite(cap, p)
			return p
		default:
			bpy := term.NewCapture(term.B, 2, p, y)
			ip.Hub.Rewrite(cap, bpy)
			return bpy
		}
	}

	if isKApp(y) {
		q := y.Right
		cxq := term.NewCapture(term.C, 2, x, q)
		ip.Hub.Rewrite(cap, cxq)
		return cxq
	}

	cap.AppendArg(arg)
	return cap
}

// isKApp reports whether t has shape A(K, _): an application whose left
// child is the K singleton. Shape matching is by tag; the SK-identity rule
// at the top of promoteS compares against the singleton instance where
// identity matters.
func isKApp(t *term.Term) bool {
	return t.Tag == term.A && t.Left != nil && t.Left.Tag == term.K
}

// applyBSaturated implements Bxyz = x(yz), building yz as a thunk (reusing
// a cached y@z result where one exists) and returning a thunk x(yz).
func (ip *Interpreter) applyBSaturated(cap, z *term.Term) *term.Term {
	x, y := cap.CapArgs[0], cap.CapArgs[1]

	var yz *term.Term
	if cached := ip.Cache.Result(y.FingerprintApplied(z)); cached != nil {
		yz = cached
	} else {
		yz = term.NewThunk(y, z)
	}

	return term.NewThunk(x, yz)
}

// applyCSaturated implements Cxyz = (xz)y, forcing xz strictly before
// returning a thunk (xz)y.
func (ip *Interpreter) applyCSaturated(cap, z *term.Term) *term.Term {
	x, y := cap.CapArgs[0], cap.CapArgs[1]
	xz := ip.Eval(x, z)
	return term.NewThunk(xz, y)
}

// applyA forces a well-formed application appearing in left position, then
// evaluates the forced value against right.
func (ip *Interpreter) applyA(a, x *term.Term) *term.Term {
	if a.Left == nil || a.Right == nil {
		panic("eval: malformed application reached left position")
	}

	var v *term.Term
	if ip.Hub.Verbose() {
		post := ip.Hub.PushPostfix(x.Fingerprint())
		v = ip.Force(a)
		ip.Hub.PopPostfix(post)
	} else {
		v = ip.Force(a)
	}
	return ip.Eval(v, x)
}

// Force reduces a well-formed A node to a value: eval(left, right). The
// thunk flag only affects trace decoration, not the reduction itself.
func (ip *Interpreter) Force(a *term.Term) *term.Term {
	if a.Tag != term.A {
		panic("eval: Force called on non-A term")
	}
	if !a.Thunk {
		handle := ip.Hub.PushPrefix(ip.Hub.Blue("A"))
		defer ip.Hub.PopPrefix(handle)
	}
	return ip.Eval(a.Left, a.Right)
}

// applyP forces x to head-normal form (repeatedly forcing while it remains
// a thunk A), writes its fingerprint to the configured sink, and returns
// the forced value.
func (ip *Interpreter) applyP(x *term.Term) *term.Term {
	toPrint := x
	for toPrint.Tag == term.A && toPrint.Thunk {
		handle := ip.Hub.PushPrefix("P")
		toPrint = ip.Force(toPrint)
		ip.Hub.PopPrefix(handle)
	}

	if ip.Singletons.P.Sink != nil {
		ip.Hub.OutputStart()
		ip.Singletons.P.Sink.WriteString(toPrint.Fingerprint())
		ip.Hub.OutputEnd()
	}

	return toPrint
}
