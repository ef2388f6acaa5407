package packrat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInterning(t *testing.T) {
	g := MustNew()
	require.Same(t, g.Str("x"), g.Str("x"))
	require.Same(t, g.Any(), g.Any())
	require.Same(t, g.Chars("a-z"), g.Chars("a-z"))
	require.NotSame(t, g.Str("x"), g.Str("y"))
	require.NotSame(t, g.Chars("a"), g.Str("a"))
	require.Same(t, g.Str("x").ZeroOrMore(), g.Str("x").ZeroOrMore())
	require.NotSame(t, g.Str("x").ZeroOrMore(), g.Str("x").OneOrMore())

	f := func(v any, env Env) any { return v }
	require.Same(t, g.Any().Action(f), g.Any().Action(f))
	require.NotSame(t, g.Any().Action(f), g.Any().Action(func(v any, env Env) any { return nil }))
}

func TestInterningScopes(t *testing.T) {
	a := MustNew()
	b := MustNew()
	require.NotSame(t, a.Str("x"), b.Str("x"))
	require.Same(t, a, a.Str("x").Generator())
	require.Same(t, b, b.Str("x").Generator())
}

func TestUncomparableValuesAreNotInterned(t *testing.T) {
	g := MustNew()
	require.NotSame(t, g.Any().Value([]int{1}), g.Any().Value([]int{1}))
	require.NotSame(t, g.Any().Value(map[string]int{}), g.Any().Value(map[string]int{}))
}

func TestKind(t *testing.T) {
	g := MustNew()
	require.Equal(t, "str", g.Str("x").Kind())
	require.Equal(t, "str.i", g.Str("x").I().Kind())
	require.Equal(t, "seq", g.Seq("a", "b").Kind())
	require.Equal(t, "zeroOrMore", g.Any().ZeroOrMore().Kind())
}

func TestOptionError(t *testing.T) {
	failing := func(g *Generator) error { return errors.New("nope") }
	_, err := New(failing)
	require.EqualError(t, err, "nope")
	require.Panics(t, func() { MustNew(failing) })
}

func TestBuild(t *testing.T) {
	g := MustNew()
	root, err := g.Build(func() *Node {
		var list *Node
		item := g.Chars("a-z").OneOrMore().Text()
		list = g.Seq(func() []any {
			return []any{item, g.Seq(",", list).Optional()}
		})
		return list
	})
	require.NoError(t, err)
	require.NotNil(t, root)
	_, err = root.Parse("a,bc,d")
	require.NoError(t, err)
}

func TestBuildErrors(t *testing.T) {
	g := MustNew()
	root, err := g.Build(func() *Node { return nil })
	require.Nil(t, root)
	require.EqualError(t, err, "build: grammar definition returned a nil node")

	// Errors in deferred lists are reported by Build rather than on first use.
	root, err = g.Build(func() *Node {
		return g.Seq("a", g.Or(func() []any { return []any{"b", struct{}{}} }))
	})
	require.Nil(t, root)
	require.EqualError(t, err, "or: expected *Node, string or *regexp.Regexp but got struct {}")

	// Panics that are not construction errors propagate.
	require.PanicsWithValue(t, "boom", func() {
		_, _ = g.Build(func() *Node { panic("boom") })
	})
}

func TestWalk(t *testing.T) {
	g := MustNew()
	var expr *Node
	expr = g.Or(func() []any {
		return []any{g.Seq("(", expr, ")"), "x"}
	})
	kinds := map[string]int{}
	err := Walk(expr, func(n *Node) error {
		kinds[n.Kind()]++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, map[string]int{"or": 1, "seq": 1, "str": 3}, kinds)

	stop := errors.New("stop")
	visited := 0
	err = Walk(expr, func(n *Node) error {
		visited++
		return stop
	})
	require.Equal(t, stop, err)
	require.Equal(t, 1, visited)
}
