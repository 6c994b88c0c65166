// Package lambda translates lambda calculus source ("λx.body") into SKI
// notation via the six standard elimination rules plus η-reduction, then
// hands the result to internal/translate/ski for the final step down to
// Hof source.
package lambda

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	hoferrors "hof/internal/errors"
	"hof/internal/translate/ski"
)

var lambdaLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"LBrace", `\{`, lexer.Push("Sub")},
		{"LParen", `\(`, nil},
		{"RParen", `\)`, nil},
		{"Dot", `\.`, nil},
		{"Lambda", `λ`, nil},
		{"Var", `[^\s(){}λ.]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
	"Sub": {
		{"SubText", `[^}]+`, nil},
		{"RBrace", `\}`, lexer.Pop()},
	},
})

// Program is a sequence of top-level lambda terms.
type Program struct {
	Terms []*Expr `@@*`
}

// Expr is a left-associative application chain: one atom followed by zero
// or more further atoms applied to it.
type Expr struct {
	First *Atom   `@@`
	Rest  []*Atom `@@*`
}

// Atom is an abstraction, a parenthesized sub-expression, a substitution,
// or a bare variable.
type Atom struct {
	Abs   *Abstraction `  @@`
	Paren *Expr        `| "(" @@ ")"`
	Sub   *string      `| "{" @SubText "}"`
	Var   *string      `| @Var`
}

// Abstraction is "λ<var>.<body>"; the body extends as far right as
// grammatically possible.
type Abstraction struct {
	Var  string `"λ" @Var "."`
	Body *Expr  `@@`
}

func buildParser() (*participle.Parser[Program], error) {
	return participle.Build[Program](
		participle.Lexer(lambdaLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
}

// Translate parses lambda calculus source, eliminates every abstraction
// down to S/K/I combinators (plus pass-through substitutions and an
// η-reduction short-circuit), renders the result as parenthesized SKI
// text, and feeds that to the ski translator to produce flat Hof source.
func Translate(source string) (string, error) {
	parser, err := buildParser()
	if err != nil {
		return "", err
	}

	program, err := parser.ParseString("", source)
	if err != nil {
		return "", asTranslateError(err)
	}

	var b strings.Builder
	for _, e := range program.Terms {
		b.WriteString(exprToTerm(e).toSki().String())
	}

	return ski.Translate(b.String())
}

func asTranslateError(err error) error {
	pe, ok := err.(participle.Error)
	if !ok {
		return err
	}
	pos := pe.Position()
	return &hoferrors.TranslateError{
		Message:  "malformed lambda calculus input: " + pe.Message(),
		Position: hoferrors.Position{Line: pos.Line, Column: pos.Column},
	}
}

// kind discriminates the small term model used only inside the
// elimination algorithm; it exists separately from the parsed grammar
// because toSki rewrites terms into shapes (combinators) the grammar has
// no node for.
type kind int

const (
	kVar kind = iota
	kAbs
	kApp
	kComb
	kSub
)

type lTerm struct {
	kind    kind
	name    string // variable name / combinator letter / substitution text
	varName string // kAbs: the bound variable
	body    *lTerm // kAbs
	left    *lTerm // kApp
	right   *lTerm // kApp
}

func comb(letter string) *lTerm { return &lTerm{kind: kComb, name: letter} }

func exprToTerm(e *Expr) *lTerm {
	t := atomToTerm(e.First)
	for _, a := range e.Rest {
		t = &lTerm{kind: kApp, left: t, right: atomToTerm(a)}
	}
	return t
}

func atomToTerm(a *Atom) *lTerm {
	switch {
	case a.Abs != nil:
		return &lTerm{kind: kAbs, varName: a.Abs.Var, body: exprToTerm(a.Abs.Body)}
	case a.Paren != nil:
		return exprToTerm(a.Paren)
	case a.Sub != nil:
		return &lTerm{kind: kSub, name: *a.Sub}
	case a.Var != nil:
		return &lTerm{kind: kVar, name: *a.Var}
	default:
		panic("lambda: unreachable atom shape")
	}
}

// String renders variables and combinators as themselves, applications
// parenthesized with a separating space, and abstractions as "λx.body".
// Used only to test one variable's freeness in another subterm by
// substring search: single-character variables make that exact.
func (t *lTerm) String() string {
	switch t.kind {
	case kVar, kComb:
		return t.name
	case kSub:
		return "{" + t.name + "}"
	case kApp:
		return "(" + t.left.String() + " " + t.right.String() + ")"
	case kAbs:
		return "λ" + t.varName + "." + t.body.String()
	default:
		panic("lambda: unreachable term kind in String")
	}
}

// isFreeIn reports whether the abstraction's bound variable occurs in its
// body.
func (t *lTerm) isFreeIn() bool {
	return strings.Contains(t.body.String(), t.varName)
}

// toSki eliminates abstractions via the six standard SKI-completeness
// rules, trying an η-reduction short-circuit first.
func (t *lTerm) toSki() *lTerm {
	switch t.kind {
	case kVar, kComb, kSub:
		// rule 1: variables (and anything already reduced) pass through.
		return t
	case kApp:
		// rule 2: push the transform into both sides of an application.
		return &lTerm{kind: kApp, left: t.left.toSki(), right: t.right.toSki()}
	case kAbs:
		return t.abstractionToSki()
	default:
		panic("lambda: unreachable term kind in toSki")
	}
}

func (t *lTerm) abstractionToSki() *lTerm {
	// η-reduction: λx.(M x) -> M, when x does not occur free in M.
	if t.body.kind == kApp && t.body.right.kind == kVar && t.body.right.name == t.varName &&
		!strings.Contains(t.body.left.String(), t.varName) {
		return t.body.left.toSki()
	}

	// rule 3: x not free in body -> K body.
	if !t.isFreeIn() {
		return &lTerm{kind: kApp, left: comb("K"), right: t.body.toSki()}
	}

	// rule 4: λx.x -> I.
	if t.body.kind == kVar && t.body.name == t.varName {
		return comb("I")
	}

	// rule 5: λx.λy.M with x free in λy.M -> reduce the inner abstraction
	// first, then retry the outer one.
	if t.body.kind == kAbs {
		reduced := &lTerm{kind: kAbs, varName: t.varName, body: t.body.toSki()}
		return reduced.toSki()
	}

	// rule 6: λx.(M N) with x free -> S (λx.M) (λx.N).
	if t.body.kind == kApp {
		left := &lTerm{kind: kAbs, varName: t.varName, body: t.body.left}
		right := &lTerm{kind: kAbs, varName: t.varName, body: t.body.right}
		app := &lTerm{
			kind:  kApp,
			left:  &lTerm{kind: kApp, left: comb("S"), right: left},
			right: right,
		}
		return app.toSki()
	}

	panic("lambda: unreachable abstraction body kind")
}
