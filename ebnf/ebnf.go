// Package ebnf compiles grammars written in the EBNF of "golang.org/x/exp/ebnf" to packrat parsers.
//
// Productions whose names begin with an upper-case letter are syntactic: whitespace is skipped
// before each token and before each reference to a lexical production. Productions with lower-case
// names are lexical and match their input exactly.
//
// Here's a grammar for comma separated lists of identifiers:
//
//	List = ident { "," ident } .
//	ident = letter { letter | digit } .
//	letter = "a" … "z" | "A" … "Z" | "_" .
//	digit = "0" … "9" .
//
// Alternatives are ordered: the first alternative that matches is taken, as in any PEG. Left-recursive
// productions are not supported.
package ebnf

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"

	"github.com/alecthomas/packrat"
	"github.com/alecthomas/packrat/charclass"
)

// Tree is the parse tree of a production.
//
// Lexical productions are leaves. Syntactic productions have a child for each production they
// matched directly.
type Tree struct {
	Production string
	Start      int
	End        int
	Text       string
	Children   []*Tree
}

func (t *Tree) String() string {
	w := &strings.Builder{}
	t.write(w, "")
	return w.String()
}

func (t *Tree) write(w *strings.Builder, indent string) {
	fmt.Fprintf(w, "%s%s %q\n", indent, t.Production, t.Text)
	for _, child := range t.Children {
		child.write(w, indent+"  ")
	}
}

// A Parser for an EBNF grammar.
type Parser struct {
	start string
	root  *packrat.Node
}

// Compile grammar into a Parser for the production start.
//
// Options are passed through to the packrat.Generator the grammar is compiled with.
func Compile(grammar, start string, options ...packrat.Option) (*Parser, error) {
	return CompileReader("<grammar>", strings.NewReader(grammar), start, options...)
}

// MustCompile is like Compile but panics on error.
func MustCompile(grammar, start string, options ...packrat.Option) *Parser {
	p, err := Compile(grammar, start, options...)
	if err != nil {
		panic(err)
	}
	return p
}

// CompileReader compiles the grammar read from r. filename is used in error messages.
func CompileReader(filename string, r io.Reader, start string, options ...packrat.Option) (*Parser, error) {
	ast, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, err
	}
	if err := ebnf.Verify(ast, start); err != nil {
		return nil, err
	}
	g, err := packrat.New(options...)
	if err != nil {
		return nil, err
	}
	c := &compiler{
		g:           g,
		grammar:     ast,
		productions: map[string]*packrat.Node{},
		ws:          g.Chars(" \t\r\n").ZeroOrMore(),
	}
	root, err := g.Build(func() *packrat.Node {
		root := c.production(start)
		if syntactic(start) {
			root = g.Seq(root, c.ws).Action(first)
		}
		return root
	})
	if err != nil {
		return nil, err
	}
	return &Parser{start: start, root: root}, nil
}

// Parse input, which must match the start production in its entirety.
func (p *Parser) Parse(input string) (*Tree, error) {
	return packrat.ParseAs[*Tree](p.root, input)
}

// Node returns the packrat node the grammar compiled to.
func (p *Parser) Node() *packrat.Node { return p.root }

// Start production.
func (p *Parser) Start() string { return p.start }

func (p *Parser) String() string { return p.root.String() }

type compiler struct {
	g           *packrat.Generator
	grammar     ebnf.Grammar
	productions map[string]*packrat.Node
	ws          *packrat.Node
}

func (c *compiler) production(name string) *packrat.Node {
	if n, ok := c.productions[name]; ok {
		return n
	}
	production := c.grammar[name]
	lexical := !syntactic(name)
	body := c.g.Seq(func() []any { return []any{c.expr(production.Expr, lexical)} })
	var n *packrat.Node
	if lexical {
		n = body.Text().Action(func(v any, env packrat.Env) any {
			return &Tree{Production: name, Start: env.Start, End: env.End, Text: v.(string)}
		})
	} else {
		n = body.Action(func(v any, env packrat.Env) any {
			return &Tree{Production: name, Start: env.Start, End: env.End, Text: env.Text(), Children: trees(v, nil)}
		})
	}
	c.productions[name] = n
	return n
}

func (c *compiler) expr(expr ebnf.Expression, lexical bool) *packrat.Node {
	switch n := expr.(type) {
	case nil:
		return c.g.Str("")

	case ebnf.Alternative:
		return c.g.Or(c.exprs(n, lexical)...)

	case ebnf.Sequence:
		return c.g.Seq(c.exprs(n, lexical)...)

	case *ebnf.Group:
		return c.expr(n.Body, lexical)

	case *ebnf.Option:
		return c.expr(n.Body, lexical).Optional()

	case *ebnf.Repetition:
		return c.expr(n.Body, lexical).ZeroOrMore()

	case *ebnf.Token:
		return c.skip(c.g.Str(n.String), lexical)

	case *ebnf.Range:
		lo, _ := utf8.DecodeRuneInString(n.Begin.String)
		hi, _ := utf8.DecodeRuneInString(n.End.String)
		return c.skip(c.g.Chars(charclass.Set{{Lo: lo, Hi: hi}}.Normalize().Pattern()), lexical)

	case *ebnf.Name:
		ref := c.production(n.String)
		if syntactic(n.String) {
			return ref
		}
		return c.skip(ref, lexical)
	}
	panic(fmt.Sprintf("%s: unsupported expression %T", expr.Pos(), expr))
}

func (c *compiler) exprs(exprs []ebnf.Expression, lexical bool) []any {
	out := make([]any, len(exprs))
	for i, expr := range exprs {
		out[i] = c.expr(expr, lexical)
	}
	return out
}

// skip whitespace before n in syntactic productions.
func (c *compiler) skip(n *packrat.Node, lexical bool) *packrat.Node {
	if lexical {
		return n
	}
	return c.g.Seq(c.ws, n).Action(second)
}

func syntactic(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

func first(v any, env packrat.Env) any  { return v.([]any)[0] }
func second(v any, env packrat.Env) any { return v.([]any)[1] }

func trees(v any, out []*Tree) []*Tree {
	switch v := v.(type) {
	case *Tree:
		out = append(out, v)
	case []any:
		for _, e := range v {
			out = trees(e, out)
		}
	}
	return out
}
