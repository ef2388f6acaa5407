package packrat

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

func TestStringer(t *testing.T) {
	g := MustNew()
	var expr *Node
	number := g.Chars("0-9").OneOrMore().Text()
	atom := g.Or(number, g.Seq("(", g.Seq(func() []any { return []any{expr} }), ")"))
	operator := g.Chars(`+\-`).Action(func(v any, env Env) any { return v })
	expr = g.Seq(atom, g.Seq(operator, atom).ZeroOrMore())

	nodes := []*Node{
		expr,
		g.Str("x").I(),
		g.Chars("a-z").I(),
		g.NotA("x"),
		g.IsA(func(input string, offset int) bool { return offset == 0 }),
		g.Any().Times(3),
		g.Regexp(`[0-9]+`),
		g.Str("a").Optional().Value(1),
		g.Str("a").Match(func(v any) bool { return true }),
		g.Str("ab").Unmatch("abc"),
		g.Custom(func(input string, start, stop int) (int, any, bool) { return start, nil, true }),
		g.Str("tab\t"),
	}
	out := &strings.Builder{}
	for _, n := range nodes {
		out.WriteString(n.String())
		out.WriteString("\n")
	}
	gd := goldie.New(t)
	gd.Assert(t, "grammar", []byte(out.String()))
}

func TestStringerDepth(t *testing.T) {
	g := MustNew()
	n := g.Seq("a", g.Seq("b", g.Seq("c", "d")))
	require.Equal(t, `("a" (… …))`, stringer(n, 2))
	require.Equal(t, `("a" ("b" ("c" "d")))`, stringer(n, -1))
}
