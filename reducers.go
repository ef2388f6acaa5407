package packrat

import "sync"

// exprList is the list of child expressions of a reducer, either fixed at construction or produced
// by a deferred function on first use.
type exprList struct {
	g        *Generator
	op       string
	fixed    bool
	nodes    []*Node
	deferred func() []any

	once    sync.Once
	failure any
}

func (l *exprList) resolve() []*Node {
	if l.fixed {
		return l.nodes
	}
	l.once.Do(func() {
		defer func() {
			if msg := recover(); msg != nil {
				l.failure = msg
			}
		}()
		l.nodes = l.g.coerceAll(l.op, l.deferred())
		l.deferred = nil
	})
	if l.failure != nil {
		panic(l.failure)
	}
	return l.nodes
}

func (g *Generator) reduce(op string, exprs []any, build func(l *exprList) matcher) *Node {
	if len(exprs) == 1 {
		switch f := exprs[0].(type) {
		case func() []any:
			if f == nil {
				panicf(op, "nil function")
			}
			return g.node(op, []any{f}, func() matcher {
				return build(&exprList{g: g, op: op, deferred: f})
			})
		case func() []*Node:
			if f == nil {
				panicf(op, "nil function")
			}
			return g.node(op, []any{f}, func() matcher {
				return build(&exprList{g: g, op: op, deferred: func() []any {
					nodes := f()
					out := make([]any, len(nodes))
					for i, n := range nodes {
						out[i] = n
					}
					return out
				}})
			})
		}
	}
	nodes := g.coerceAll(op, exprs)
	args := make([]any, len(nodes))
	for i, n := range nodes {
		args[i] = n
	}
	return g.node(op, args, func() matcher {
		return build(&exprList{g: g, op: op, fixed: true, nodes: nodes})
	})
}

// (a b c)
type sequence struct {
	list *exprList
}

func (s *sequence) match(ctx *parseContext, input string, start, stop int) Outcome {
	nodes := s.list.resolve()
	thunks := make([]*thunk, len(nodes))
	offset, furthest := start, start
	for i, n := range nodes {
		out := n.try(ctx, input, offset, stop)
		furthest = max(furthest, out.furthest)
		if !out.ok || out.end > stop {
			return fail(furthest)
		}
		thunks[i] = out.value
		offset = out.end
	}
	return success(offset, furthest, values(thunks))
}

// (a / b / c)
type choice struct {
	list *exprList
}

func (c *choice) match(ctx *parseContext, input string, start, stop int) Outcome {
	furthest := start
	for _, n := range c.list.resolve() {
		out := n.try(ctx, input, start, stop)
		furthest = max(furthest, out.furthest)
		if out.ok && out.end <= stop {
			out.furthest = furthest
			return out
		}
	}
	return fail(furthest)
}
