package packrat

import (
	"bytes"
	"fmt"
	"strconv"
)

type stringerVisitor struct {
	bytes.Buffer
	seen map[*Node]bool
}

// stringer renders n in PEG notation, down to depth levels of nesting, or fully if depth is
// negative.
func stringer(n *Node, depth int) string {
	v := &stringerVisitor{seen: map[*Node]bool{}}
	v.visit(n, depth)
	return v.String()
}

func (s *stringerVisitor) visit(n *Node, depth int) {
	if depth == 0 {
		fmt.Fprint(s, "…")
		return
	}
	// Only reducers and lookaheads can close a cycle.
	switch n.impl.(type) {
	case *sequence, *choice, *lookahead:
		if s.seen[n] {
			fmt.Fprint(s, "...")
			return
		}
		s.seen[n] = true
		defer delete(s.seen, n)
	}

	switch m := n.impl.(type) {
	case anyChar:
		fmt.Fprint(s, ".")

	case *literal:
		fmt.Fprint(s, strconv.Quote(m.s))

	case *literalFold:
		fmt.Fprintf(s, "%si", strconv.Quote(m.s))

	case *class:
		fmt.Fprintf(s, "[%s]", m.pattern)
		if m.folded {
			fmt.Fprint(s, "i")
		}

	case *pattern:
		fmt.Fprintf(s, "/%s/", m.re)

	case *lookahead:
		if m.negate {
			fmt.Fprint(s, "!")
		} else {
			fmt.Fprint(s, "&")
		}
		if m.test != nil {
			fmt.Fprint(s, "<func>")
		} else {
			s.visit(m.target(), depth-1)
		}

	case custom:
		fmt.Fprint(s, "<custom>")

	case *sequence:
		s.list(m.list.resolve(), " ", depth)

	case *choice:
		s.list(m.list.resolve(), " / ", depth)

	case *repetition:
		s.visit(m.node, depth-1)
		if m.min == 0 {
			fmt.Fprint(s, "*")
		} else {
			fmt.Fprint(s, "+")
		}

	case *times:
		s.visit(m.node, depth-1)
		fmt.Fprintf(s, "{%d}", m.count)

	case *optional:
		s.visit(m.node, depth-1)
		fmt.Fprint(s, "?")

	case *action:
		s.visit(m.node, depth-1)
		fmt.Fprint(s, "@action")

	case *value:
		s.visit(m.node, depth-1)
		fmt.Fprintf(s, "@value(%v)", m.value.get())

	case *matchedText:
		fmt.Fprint(s, "$")
		s.visit(m.node, depth-1)

	case *assertion:
		s.visit(m.node, depth-1)
		if m.negate {
			fmt.Fprint(s, ":!")
		} else {
			fmt.Fprint(s, ":&")
		}
		if m.test != nil {
			s.visit(m.test, depth-1)
		} else {
			fmt.Fprint(s, "<func>")
		}
	}
}

func (s *stringerVisitor) list(nodes []*Node, sep string, depth int) {
	if len(nodes) == 1 {
		s.visit(nodes[0], depth-1)
		return
	}
	fmt.Fprint(s, "(")
	for i, c := range nodes {
		if i > 0 {
			fmt.Fprint(s, sep)
		}
		s.visit(c, depth-1)
	}
	fmt.Fprint(s, ")")
}
