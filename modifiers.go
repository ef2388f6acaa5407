package packrat

import "regexp"

// ActionFunc computes the value of a match from the value of the underlying node.
type ActionFunc func(value any, env Env) any

// Env describes the match an action is applied to.
type Env struct {
	Input string
	Start int
	End   int
}

// Text matched.
func (e Env) Text() string { return e.Input[e.Start:e.End] }

// Position of the start of the match.
func (e Env) Position() Position { return PositionOf(e.Input, e.Start) }

// ZeroOrMore matches the node repeatedly, as many times as possible, producing a []any.
//
// It always succeeds. A repetition that matches without consuming input ends the loop.
func (n *Node) ZeroOrMore() *Node {
	return n.g.node("zeroOrMore", []any{n}, func() matcher { return &repetition{node: n, min: 0} })
}

// OneOrMore is like ZeroOrMore but fails unless the node matches at least once.
func (n *Node) OneOrMore() *Node {
	return n.g.node("oneOrMore", []any{n}, func() matcher { return &repetition{node: n, min: 1} })
}

// Times matches the node exactly count times, producing a []any.
//
// Times panics with a *ConstructionError if count is negative. A count of zero matches the empty
// string.
func (n *Node) Times(count int) *Node {
	if count < 0 {
		panicf("times", "count must be a non-negative integer")
	}
	return n.g.node("times", []any{n, count}, func() matcher { return &times{node: n, count: count} })
}

// Optional matches the node if possible, and otherwise succeeds without consuming input, with a nil
// value.
func (n *Node) Optional() *Node {
	return n.g.node("optional", []any{n}, func() matcher { return &optional{node: n} })
}

// Action transforms the value of the node with f.
//
// f is only called if the value is used.
func (n *Node) Action(f ActionFunc) *Node {
	if f == nil {
		panicf("action", "nil function")
	}
	return n.g.node("action", []any{n, f}, func() matcher { return &action{node: n, f: f} })
}

// Value replaces the value of the node with v.
func (n *Node) Value(v any) *Node {
	return n.g.node("value", []any{n, v}, func() matcher { return &value{node: n, value: constant(v)} })
}

// Text replaces the value of the node with the text it matched.
//
// The value of the underlying node is never computed, so no actions beneath it run.
func (n *Node) Text() *Node {
	return n.g.node("text", []any{n}, func() matcher { return &matchedText{node: n} })
}

// Match requires p to hold for each match of the node.
//
// p is either a parser, which must match exactly the same text as the node, or a func(value any) bool
// over the node's value. The node's own outcome is passed through unchanged.
func (n *Node) Match(p any) *Node {
	return n.suffix("match", p, false)
}

// Unmatch is the inverse of Match: p must not hold for a match of the node.
func (n *Node) Unmatch(p any) *Node {
	return n.suffix("unmatch", p, true)
}

func (n *Node) suffix(op string, p any, negate bool) *Node {
	s := &assertion{node: n, negate: negate}
	switch p := p.(type) {
	case func(value any) bool:
		if p == nil {
			panicf(op, "nil function")
		}
		s.check = p
	case *Node, string, *regexp.Regexp:
		s.test = n.g.coerce(op, p)
	default:
		panicf(op, "expected *Node, string, *regexp.Regexp or func(any) bool but got %T", p)
	}
	key := any(s.test)
	if s.check != nil {
		key = s.check
	}
	return n.g.node(op, []any{n, key}, func() matcher { return s })
}

// x* and x+
type repetition struct {
	node *Node
	min  int
}

func (r *repetition) match(ctx *parseContext, input string, start, stop int) Outcome {
	var thunks []*thunk
	offset, furthest := start, start
	for {
		out := r.node.try(ctx, input, offset, stop)
		furthest = max(furthest, out.furthest)
		if !out.ok {
			break
		}
		thunks = append(thunks, out.value)
		if out.end == offset {
			break
		}
		offset = out.end
	}
	if len(thunks) < r.min {
		return fail(furthest)
	}
	return success(offset, furthest, values(thunks))
}

// x{n}
type times struct {
	node  *Node
	count int
}

func (t *times) match(ctx *parseContext, input string, start, stop int) Outcome {
	thunks := make([]*thunk, t.count)
	offset, furthest := start, start
	for i := range thunks {
		out := t.node.try(ctx, input, offset, stop)
		furthest = max(furthest, out.furthest)
		if !out.ok {
			return fail(furthest)
		}
		thunks[i] = out.value
		offset = out.end
	}
	return success(offset, furthest, values(thunks))
}

// x?
type optional struct {
	node *Node
}

func (o *optional) match(ctx *parseContext, input string, start, stop int) Outcome {
	out := o.node.try(ctx, input, start, stop)
	if out.ok {
		return out
	}
	return success(start, out.furthest, constant(nil))
}

// x@action
type action struct {
	node *Node
	f    ActionFunc
}

func (a *action) match(ctx *parseContext, input string, start, stop int) Outcome {
	out := a.node.try(ctx, input, start, stop)
	if !out.ok {
		return out
	}
	base, env := out.value, Env{Input: input, Start: start, End: out.end}
	return success(out.end, out.furthest, lazy(func() any { return a.f(base.get(), env) }))
}

type value struct {
	node  *Node
	value *thunk
}

func (v *value) match(ctx *parseContext, input string, start, stop int) Outcome {
	out := v.node.try(ctx, input, start, stop)
	if !out.ok {
		return out
	}
	return success(out.end, out.furthest, v.value)
}

// $x
type matchedText struct {
	node *Node
}

func (m *matchedText) match(ctx *parseContext, input string, start, stop int) Outcome {
	out := m.node.try(ctx, input, start, stop)
	if !out.ok {
		return out
	}
	return success(out.end, out.furthest, constant(input[start:out.end]))
}

// x:&p and x:!p
type assertion struct {
	node   *Node
	negate bool
	test   *Node
	check  func(value any) bool
}

func (a *assertion) match(ctx *parseContext, input string, start, stop int) Outcome {
	out := a.node.try(ctx, input, start, stop)
	if !out.ok {
		return out
	}
	var holds bool
	if a.test != nil {
		t := a.test.try(ctx, input, start, out.end)
		holds = t.ok && t.end == out.end
	} else {
		holds = a.check(out.value.get())
	}
	if holds == a.negate {
		return fail(out.furthest)
	}
	return out
}
