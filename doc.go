// Package packrat builds Parsing Expression Grammar parsers from combinators.
//
// A Generator is the namespace of a grammar. Its methods construct primitive matchers and reducers,
// and every *Node has chainable modifiers:
//
//	g := packrat.MustNew()
//	digit := g.Chars("0-9")
//	number := digit.OneOrMore().Text()
//	var expr *packrat.Node
//	term := g.Or(number, g.Seq(func() []any { return []any{"(", expr, ")"} }))
//	expr = g.Seq(term, g.Seq("+", term).ZeroOrMore())
//	value, err := expr.Parse("1+(2+3)")
//
// The supported constructions are:
//
//   - `g.Any()` Match any single character.
//   - `g.Str(s)` Match the literal s. `.I()` matches it case-insensitively.
//   - `g.Chars("a-z_")` Match a character class; a leading `^` inverts it. `.I()` folds case.
//   - `g.Pattern(re)` Match a regular expression anchored at the current offset.
//   - `g.IsA(x)` / `g.NotA(x)` Zero-width positive/negative lookahead.
//   - `g.Seq(...)` Match each expression in turn.
//   - `g.Or(...)` Match the first expression that succeeds.
//   - `.ZeroOrMore()`, `.OneOrMore()`, `.Optional()`, `.Times(n)` Repetition.
//   - `.Action(f)`, `.Value(v)`, `.Text()` Value transforms.
//   - `.Match(p)` / `.Unmatch(p)` Suffix assertions on a successful match.
//
// Wherever a parser is expected a string or *regexp.Regexp may be used instead, and Seq and Or also
// accept a single func() []any that is called once, on first use, to allow recursive rules.
//
// Every node memoises its outcomes per (input, start, stop), which gives linear-time parsing, and
// nodes are interned per Generator: constructing the same combinator from the same arguments twice
// yields the same *Node. Values are computed lazily, so actions only run when a value is demanded.
package packrat
