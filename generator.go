package packrat

import (
	"io"
	"regexp"
	"sync/atomic"

	"github.com/alecthomas/packrat/internal/intern"
)

// A Generator is the namespace of a grammar.
//
// Nodes constructed by the same Generator from equal arguments are the same *Node, and therefore
// share one memo table. Nodes from different Generators never share identity.
//
// A Generator and its nodes are safe for concurrent use.
type Generator struct {
	pool   *intern.Pool
	trace  io.Writer
	noMemo bool

	// Number of outcomes computed rather than recalled from a memo table.
	evaluations atomic.Int64
}

// New creates a new Generator.
func New(options ...Option) (*Generator, error) {
	g := &Generator{pool: intern.New()}
	for _, option := range options {
		if err := option(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// MustNew creates a new Generator or panics.
func MustNew(options ...Option) *Generator {
	g, err := New(options...)
	if err != nil {
		panic(err)
	}
	return g
}

// Build calls define to construct a grammar and returns its root node.
//
// Construction errors raised by define, or by any deferred Seq or Or reachable from the root, are
// returned rather than panicking.
func (g *Generator) Build(define func() *Node) (root *Node, err error) {
	defer func() {
		if err != nil {
			root = nil
		}
	}()
	defer recoverToError(&err)
	root = define()
	if root == nil {
		panicf("build", "grammar definition returned a nil node")
	}
	// Resolve every deferred expression list now rather than during the first parse.
	if err := Walk(root, func(*Node) error { return nil }); err != nil {
		return nil, err
	}
	return root, nil
}

// Any matches a single character.
func (g *Generator) Any() *Node {
	return g.node("any", nil, func() matcher { return anyChar{} })
}

// Str matches the literal s.
//
// The value of a match is s.
func (g *Generator) Str(s string) *Node {
	return g.node("str", []any{s}, func() matcher { return newLiteral(s) })
}

// Chars matches one character from a class pattern such as "a-zA-Z_" or "^0-9".
//
// See charclass.Parse for the pattern syntax. The value of a match is the matched text.
func (g *Generator) Chars(pattern string) *Node {
	return g.node("chars", []any{pattern}, func() matcher { return newClass("chars", pattern, false) })
}

// Pattern matches the regular expression re, anchored at the current offset.
//
// The value of a match is a []string holding the text of the match and of each submatch.
//
// re only sees the input from the current offset onwards, so `^`, `\A` and `\b` treat that offset
// as the start of the text. Use a lookahead such as NotA to test the preceding input.
func (g *Generator) Pattern(re *regexp.Regexp) *Node {
	if re == nil {
		panicf("pattern", "nil regular expression")
	}
	return g.node("pattern", []any{re}, func() matcher { return newPattern(re) })
}

// Regexp compiles expr and matches it as Pattern does.
func (g *Generator) Regexp(expr string) *Node {
	return g.node("regexp", []any{expr}, func() matcher {
		re, err := regexp.Compile(expr)
		if err != nil {
			panicf("regexp", "%s", err)
		}
		return newPattern(re)
	})
}

// IsA succeeds, without consuming input, if x matches at the current offset.
//
// x may be anything accepted where a parser is expected, a func() any or func() *Node producing one
// (called once, on first use), or a func(input string, offset int) bool test.
func (g *Generator) IsA(x any) *Node {
	return g.lookahead("is_a", x, false)
}

// NotA succeeds, without consuming input, if x does not match at the current offset.
//
// x is as for IsA.
func (g *Generator) NotA(x any) *Node {
	return g.lookahead("not_a", x, true)
}

// Custom matches using f.
func (g *Generator) Custom(f CustomFunc) *Node {
	if f == nil {
		panicf("custom", "nil function")
	}
	return g.node("custom", []any{f}, func() matcher { return custom{f} })
}

// Seq matches each expression in order, producing a []any of their values.
//
// Either a non-empty list of parsers is given, or a single func() []any or func() []*Node that is
// called on first use to produce the list.
func (g *Generator) Seq(exprs ...any) *Node {
	return g.reduce("seq", exprs, func(l *exprList) matcher { return &sequence{l} })
}

// Or matches the first expression that succeeds, producing its value.
//
// The expressions are given as for Seq. Alternatives are tried in order and the first match wins,
// even if a later alternative would match more input.
func (g *Generator) Or(exprs ...any) *Node {
	return g.reduce("or", exprs, func(l *exprList) matcher { return &choice{l} })
}

func (g *Generator) node(kind string, args []any, build func() matcher) *Node {
	return g.pool.Intern(kind, args, func() any {
		return &Node{g: g, kind: kind, impl: build(), memo: map[memoKey]Outcome{}}
	}).(*Node)
}

// coerce a parser-like value to a node.
func (g *Generator) coerce(op string, x any) *Node {
	switch x := x.(type) {
	case *Node:
		if x == nil {
			panicf(op, "nil node")
		}
		return x
	case string:
		return g.Str(x)
	case *regexp.Regexp:
		return g.Pattern(x)
	}
	panicf(op, "expected *Node, string or *regexp.Regexp but got %T", x)
	return nil
}

func (g *Generator) coerceAll(op string, xs []any) []*Node {
	if len(xs) == 0 {
		panicf(op, "at least one expression is required")
	}
	out := make([]*Node, len(xs))
	for i, x := range xs {
		out[i] = g.coerce(op, x)
	}
	return out
}
