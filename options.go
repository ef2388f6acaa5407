package packrat

import "io"

// An Option to modify the behaviour of the Generator.
type Option func(g *Generator) error

// Trace every parse attempt to "w".
//
// One line is written each time a node computes an outcome that is not already memoised, indented by
// the nesting depth of the attempt.
func Trace(w io.Writer) Option {
	return func(g *Generator) error {
		g.trace = w
		return nil
	}
}

// NoMemo disables packrat memoisation for all nodes of the Generator.
//
// Without memoisation parse time can grow exponentially and actions may run more than once. This is
// only useful for measuring the effect of memoisation.
func NoMemo() Option {
	return func(g *Generator) error {
		g.noMemo = true
		return nil
	}
}
