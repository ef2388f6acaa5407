package packrat

import (
	"regexp"
	"strings"
	"sync"

	"github.com/alecthomas/packrat/charclass"
	"github.com/alecthomas/packrat/internal/casefold"
	"github.com/alecthomas/packrat/internal/text"
)

// CustomFunc attempts a match at start that must not extend beyond stop.
//
// It returns the end offset of the match and its value, or false if there is no match. Returning an
// end outside [start, stop] is treated as no match.
type CustomFunc func(input string, start, stop int) (end int, value any, ok bool)

// I returns a case-insensitive variant of a literal or character class node.
//
// Case-insensitive matching uses Unicode simple case folding.
func (n *Node) I() *Node {
	switch m := n.impl.(type) {
	case *literal:
		return n.g.node("str.i", []any{m.s}, func() matcher { return newLiteralFold(m.s) })
	case *class:
		if m.folded {
			return n
		}
		return n.g.node("chars.i", []any{m.pattern}, func() matcher { return newClass("chars", m.pattern, true) })
	case *literalFold:
		return n
	}
	panicf("i", "only literal and character class nodes have a case-insensitive variant, not %s", n.kind)
	return nil
}

// .
type anyChar struct{}

func (anyChar) match(ctx *parseContext, input string, start, stop int) Outcome {
	if start >= len(input) {
		return fail(start)
	}
	_, w := text.Next(input, start)
	end := start + w
	return success(end, end, constant(input[start:end]))
}

// "..."
type literal struct {
	s     string
	value *thunk
}

func newLiteral(s string) *literal {
	return &literal{s: s, value: constant(s)}
}

func (l *literal) match(ctx *parseContext, input string, start, stop int) Outcome {
	if !strings.HasPrefix(input[start:], l.s) {
		return fail(start)
	}
	end := start + len(l.s)
	return success(end, end, l.value)
}

// "..."i
type literalFold struct {
	s      string
	folded []rune
}

func newLiteralFold(s string) *literalFold {
	l := &literalFold{s: s}
	for i := 0; i < len(s); {
		r, w := text.Next(s, i)
		l.folded = append(l.folded, casefold.Fold(r))
		i += w
	}
	return l
}

func (l *literalFold) match(ctx *parseContext, input string, start, stop int) Outcome {
	end := start
	for _, want := range l.folded {
		if end >= len(input) {
			return fail(start)
		}
		r, w := text.Next(input, end)
		if casefold.Fold(r) != want {
			return fail(start)
		}
		end += w
	}
	return success(end, end, constant(input[start:end]))
}

// [...]
type class struct {
	pattern string
	folded  bool
	class   *charclass.Class
}

func newClass(op, pattern string, folded bool) *class {
	c, err := charclass.Parse(pattern)
	if err != nil {
		panicf(op, "%s", err)
	}
	if folded {
		c = c.Fold()
	}
	return &class{pattern: pattern, folded: folded, class: c}
}

func (c *class) match(ctx *parseContext, input string, start, stop int) Outcome {
	w, ok := c.class.Match(input, start)
	if !ok {
		return fail(start)
	}
	end := start + w
	return success(end, end, constant(input[start:end]))
}

// /.../
type pattern struct {
	re       *regexp.Regexp
	anchored *regexp.Regexp
}

func newPattern(re *regexp.Regexp) *pattern {
	return &pattern{re: re, anchored: regexp.MustCompile(`\A(?:` + re.String() + `)`)}
}

func (p *pattern) match(ctx *parseContext, input string, start, stop int) Outcome {
	loc := p.anchored.FindStringSubmatchIndex(input[start:])
	if loc == nil {
		return fail(start)
	}
	end := start + loc[1]
	if end > stop {
		return fail(start)
	}
	return success(end, end, lazy(func() any {
		groups := make([]string, len(loc)/2)
		for i := range groups {
			if loc[2*i] >= 0 {
				groups[i] = input[start+loc[2*i] : start+loc[2*i+1]]
			}
		}
		return groups
	}))
}

// &... and !...
type lookahead struct {
	negate bool
	target func() *Node
	test   func(input string, offset int) bool
}

func (g *Generator) lookahead(op string, x any, negate bool) *Node {
	var build func() matcher
	switch f := x.(type) {
	case func(input string, offset int) bool:
		build = func() matcher { return &lookahead{negate: negate, test: f} }
	case func() any:
		build = func() matcher {
			return &lookahead{negate: negate, target: sync.OnceValue(func() *Node { return g.coerce(op, f()) })}
		}
	case func() *Node:
		build = func() matcher {
			return &lookahead{negate: negate, target: sync.OnceValue(func() *Node { return g.coerce(op, f()) })}
		}
	default:
		target := g.coerce(op, x)
		x = target
		build = func() matcher { return &lookahead{negate: negate, target: func() *Node { return target }} }
	}
	return g.node(op, []any{x}, build)
}

func (l *lookahead) match(ctx *parseContext, input string, start, stop int) Outcome {
	var (
		matched  bool
		furthest = start
	)
	if l.test != nil {
		matched = l.test(input, start)
	} else {
		out := l.target().try(ctx, input, start, stop)
		matched = out.ok
		furthest = out.furthest
	}
	if matched == l.negate {
		return fail(furthest)
	}
	return success(start, start, constant(nil))
}

type custom struct {
	f CustomFunc
}

func (c custom) match(ctx *parseContext, input string, start, stop int) Outcome {
	end, value, ok := c.f(input, start, stop)
	if !ok || end < start || end > stop {
		return fail(start)
	}
	return success(end, end, constant(value))
}
