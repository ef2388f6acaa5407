package packrat

import (
	"fmt"
	"strings"
)

// enter traces an attempt of n at offset, returning a function to call when the attempt completes.
func (p *parseContext) enter(n *Node, offset int) func() {
	if p.trace == nil {
		return func() {}
	}
	fmt.Fprintf(p.trace, "%s@%d %s\n", strings.Repeat("  ", p.depth), offset, stringer(n, 2))
	p.depth++
	return func() { p.depth-- }
}
