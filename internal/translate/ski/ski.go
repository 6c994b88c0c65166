// Package ski translates parenthesized SKI notation, e.g. "(SII)" or
// "S(K(SII))", into flat Hof source. It is built with participle/v2's
// stateful lexer, the same parser toolkit used for the lambda translator,
// since this syntax genuinely nests (parentheses, substitution braces) in
// a way the flat Hof alphabet itself never does.
package ski

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	hoferrors "hof/internal/errors"
)

var skiLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"LBrace", `\{`, lexer.Push("Sub")},
		{"LParen", `\(`, nil},
		{"RParen", `\)`, nil},
		{"Atom", `[SsKkIi]`, nil},
		{"Char", `[^\s(){}]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
	"Sub": {
		{"SubText", `[^}]+`, nil},
		{"RBrace", `\}`, lexer.Pop()},
	},
})

// Program is a sequence of top-level SKI terms, concatenated in the
// output the way adjacent top-level applications are in Hof source.
type Program struct {
	Terms []*Term `@@*`
}

// Term is one atomic SKI token, a parenthesized sub-application, or a
// passthrough substitution.
type Term struct {
	Sub   *string `  "{" @SubText "}"`
	Paren *Paren  `| @@`
	Atom  *string `| @Atom`
	Char  *string `| @Char`
}

// Paren is a parenthesized application "(u v w ...)" of at least two
// terms; fewer than two is malformed.
type Paren struct {
	First *Term   `"(" @@`
	Rest  []*Term `@@+ ")"`
}

func buildParser() (*participle.Parser[Program], error) {
	return participle.Build[Program](
		participle.Lexer(skiLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
}

// Translate parses parenthesized SKI source and renders it as flat Hof
// source: each parenthesized application "(u v w)" becomes a run of "A"
// prefixes (one fewer than the term count) followed by each term's own
// rendering, left-associating the application. Atomic S/K/I map to
// themselves; any other single character is passed through verbatim,
// becoming a Var when later interpreted; "{tok}" substitutions pass
// their token through unchanged.
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
	for _, t := range program.Terms {
		t.writeHof(&b)
	}
	return b.String(), nil
}

func (t *Term) writeHof(b *strings.Builder) {
	switch {
	case t.Sub != nil:
		b.WriteString(*t.Sub)
	case t.Paren != nil:
		t.Paren.writeHof(b)
	case t.Atom != nil:
		b.WriteString(strings.ToUpper(*t.Atom))
	case t.Char != nil:
		b.WriteString(*t.Char)
	default:
		panic("ski: unreachable term shape")
	}
}

func (p *Paren) writeHof(b *strings.Builder) {
	terms := append([]*Term{p.First}, p.Rest...)
	b.WriteString("A")
	b.WriteString(strings.Repeat("A", len(terms)-2))
	for _, t := range terms {
		t.writeHof(b)
	}
}

func asTranslateError(err error) error {
	pe, ok := err.(participle.Error)
	if !ok {
		return err
	}
	pos := pe.Position()
	return &hoferrors.TranslateError{
		Message:  "malformed SKI input: " + pe.Message(),
		Position: hoferrors.Position{Line: pos.Line, Column: pos.Column},
	}
}
