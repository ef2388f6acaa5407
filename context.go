package packrat

import "io"

// Context for a single top-level parse attempt.
type parseContext struct {
	trace io.Writer
	depth int
}

func (g *Generator) newContext() *parseContext {
	return &parseContext{trace: g.trace}
}
