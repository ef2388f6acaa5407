package packrat

// Walk calls fn for every node reachable from n, including n, once each, depth first.
//
// Deferred expression lists are resolved as they are reached. If fn returns an error, walking stops
// and the error is returned.
func Walk(n *Node, fn func(n *Node) error) error {
	return walk(map[*Node]bool{}, n, fn)
}

func walk(seen map[*Node]bool, n *Node, fn func(n *Node) error) error {
	if seen[n] {
		return nil
	}
	seen[n] = true
	if err := fn(n); err != nil {
		return err
	}
	for _, child := range children(n) {
		if err := walk(seen, child, fn); err != nil {
			return err
		}
	}
	return nil
}

func children(n *Node) []*Node {
	switch m := n.impl.(type) {
	case *sequence:
		return m.list.resolve()
	case *choice:
		return m.list.resolve()
	case *lookahead:
		if m.target != nil {
			return []*Node{m.target()}
		}
	case *repetition:
		return []*Node{m.node}
	case *times:
		return []*Node{m.node}
	case *optional:
		return []*Node{m.node}
	case *action:
		return []*Node{m.node}
	case *value:
		return []*Node{m.node}
	case *matchedText:
		return []*Node{m.node}
	case *assertion:
		if m.test != nil {
			return []*Node{m.node, m.test}
		}
		return []*Node{m.node}
	case anyChar, *literal, *literalFold, *class, *pattern, custom:
	default:
		panic("unsupported")
	}
	return nil
}
