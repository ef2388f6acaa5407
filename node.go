package packrat

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"
)

// A matcher implements the matching logic of one kind of node.
//
// Matchers call child nodes through Node.try so that their outcomes are memoised.
type matcher interface {
	match(ctx *parseContext, input string, start, stop int) Outcome
}

// Node is an immutable parser.
//
// Nodes are constructed by a Generator and its chainable methods, never directly.
type Node struct {
	g    *Generator
	kind string
	impl matcher

	mu   sync.Mutex
	memo map[memoKey]Outcome
}

// memoKey identifies an attempt. Inputs are identified by their backing array, which the key keeps
// alive, so keys hash in constant time.
type memoKey struct {
	data   *byte
	length int
	start  int
	stop   int
}

// Generator that constructed the node.
func (n *Node) Generator() *Generator { return n.g }

// Kind of the node, eg. "seq" or "str".
func (n *Node) Kind() string { return n.kind }

func (n *Node) String() string { return stringer(n, -1) }

// TryParse attempts a match of the node at start, without allowing the match to extend beyond stop.
//
// Pass Unbounded as stop to allow matching to the end of input. TryParse never returns an error:
// failure to match is reported by Outcome.OK.
func (n *Node) TryParse(input string, start, stop int) Outcome {
	return n.try(n.g.newContext(), input, start, stop)
}

// Parse the whole of input.
//
// An *UnmatchedError is returned if the node does not match at the start of input, and an
// *IncompleteError if it matches but does not consume the entire input.
func (n *Node) Parse(input string) (any, error) {
	return n.ParseFrom(input, 0)
}

// ParseFrom parses input from offset start to its end.
func (n *Node) ParseFrom(input string, start int) (value any, err error) {
	defer recoverToError(&err)
	out := n.TryParse(input, start, Unbounded)
	if !out.OK() {
		return nil, unmatched(input, out.Furthest())
	}
	if out.End() != len(input) {
		return nil, incomplete(input, out.End(), out.Furthest())
	}
	return out.Value(), nil
}

// ParseAs parses the whole of input with n and asserts that the value is a T.
func ParseAs[T any](n *Node, input string) (T, error) {
	var zero T
	v, err := n.Parse(input)
	if err != nil || v == nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%s: value of type %T is not a %s", n.kind, v, reflect.TypeOf(&zero).Elem())
	}
	return t, nil
}

func (n *Node) try(ctx *parseContext, input string, start, stop int) Outcome {
	if start < 0 || start > len(input) {
		return fail(start)
	}
	if stop > len(input) {
		stop = len(input)
	}
	key := memoKey{data: unsafe.StringData(input), length: len(input), start: start, stop: stop}
	if !n.g.noMemo {
		n.mu.Lock()
		out, ok := n.memo[key]
		n.mu.Unlock()
		if ok {
			return out
		}
	}

	leave := ctx.enter(n, start)
	n.g.evaluations.Add(1)
	out := n.impl.match(ctx, input, start, stop)
	leave()
	if out.ok && out.end > stop {
		out = fail(out.furthest)
	}

	if n.g.noMemo {
		return out
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if prev, ok := n.memo[key]; ok {
		return prev
	}
	n.memo[key] = out
	return out
}
