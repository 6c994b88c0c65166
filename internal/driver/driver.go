// Package driver implements the flat Hof alphabet scan: a hand-rolled,
// character-at-a-time construction of the evaluation list and its
// left-to-right folding through eval. This is deliberately not built with
// participle: the alphabet is six letters plus a catch-all Var, with no
// nesting beyond the A state machine, and a grammar library would add
// ceremony without buying anything a switch over bytes doesn't already
// give.
package driver

import (
	"hof/internal/eval"
	"hof/internal/term"
)

// Run scans program (already whitespace-stripped by the caller), builds
// the evaluation list left-associatively, and folds it through ip.Eval.
// It returns the single resulting term and whatever terms remained
// unconsumed (always empty for well-formed input; non-empty is a
// diagnostic-only concept surfaced by verbose tracing, not an error).
func Run(ip *eval.Interpreter, program string) (result *term.Term, remaining []*term.Term) {
	var list []*term.Term

	// The not-yet-scanned program tail rides along as a trace postfix so
	// every eval line shows what input still lies to its right.
	post := ip.Hub.PushPostfix(program)

	for i := 0; i < len(program); i++ {
		t := newTerm(ip, program[i])
		list = appendTerm(list, t)
		if incompleteTop(list) == nil {
			ip.Hub.PopPostfix(post)
			post = ip.Hub.PushPostfix(program[i+1:])
			list = foldComplete(ip, list)
		}
	}
	ip.Hub.PopPostfix(post)

	if len(list) == 0 {
		return nil, nil
	}
	return list[0], list[1:]
}

// newTerm maps one input byte to its Term: singletons for the five
// combinator letters, a fresh A node for 'A', and Var for anything else.
func newTerm(ip *eval.Interpreter, ch byte) *term.Term {
	switch ch {
	case 'I':
		return ip.Singletons.I
	case 'K':
		return ip.Singletons.K
	case 'S':
		return ip.Singletons.S
	case 'P':
		return ip.Singletons.P
	case 'R':
		return ip.Singletons.R
	case 'A':
		return term.NewA()
	default:
		return term.NewVar(ch)
	}
}

// appendTerm grows the evaluation list by one scanned term: a fresh A
// either starts a new list entry or becomes the next child of an
// incomplete A already at the top of the list; any other term is fed to
// an incomplete top-of-list A via AddChild, or else starts a new list
// entry.
func appendTerm(list []*term.Term, t *term.Term) []*term.Term {
	top := incompleteTop(list)

	if t.Tag == term.A {
		if top == nil {
			return append(list, t)
		}
		top.AddChild(t)
		return list
	}

	if top != nil {
		top.AddChild(t)
		return list
	}
	return append(list, t)
}

// incompleteTop returns the list's last element if it is an A node not yet
// well formed, or nil otherwise.
func incompleteTop(list []*term.Term) *term.Term {
	if len(list) == 0 {
		return nil
	}
	last := list[len(list)-1]
	if last.Tag == term.A && !last.IsWellFormed() {
		return last
	}
	return nil
}

// foldComplete folds once the list's top is a complete, well-formed
// structure (no incomplete A remains): the whole list collapses
// left-to-right through eval into a single result, which is then
// repeatedly forced while it is itself a well-formed A. A length-1 list
// still takes the forcing loop, so a program whose whole top level is one
// explicit application reduces rather than being returned raw.
func foldComplete(ip *eval.Interpreter, list []*term.Term) []*term.Term {
	if incompleteTop(list) != nil || len(list) == 0 {
		return list
	}

	acc := list[0]
	for _, next := range list[1:] {
		acc = ip.Eval(acc, next)
	}
	for acc.Tag == term.A && acc.IsWellFormed() {
		acc = ip.Force(acc)
	}

	return []*term.Term{acc}
}
