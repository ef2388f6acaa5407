// Package charclass implements Unicode character classes: parsing class patterns such as `a-z_`
// or `^0-9`, normalised code point range sets, case-insensitive closure and serialisation back to
// patterns.
package charclass

import (
	"github.com/alecthomas/packrat/internal/text"
)

// surrogatePairWidth is the width of a CESU-8 encoded surrogate pair.
const surrogatePairWidth = 6

// Class is a parsed character class.
type Class struct {
	Set      Set
	Inverted bool
}

// MustParse is like Parse but panics if the pattern is invalid.
func MustParse(pattern string) *Class {
	c, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return c
}

// Fold returns a case-insensitive copy of the class.
//
// The set is closed under case folding before inversion is applied, so an inverted folded class
// excludes every case variant of its members.
func (c *Class) Fold() *Class {
	return &Class{Set: c.Set.Fold(), Inverted: c.Inverted}
}

// Contains reports whether the class matches the code point r.
func (c *Class) Contains(r rune) bool {
	return c.Set.Contains(r) != c.Inverted
}

// Match the character at byte offset i of s, returning the number of bytes consumed.
//
// A non-inverted class first tests the whole character. A CESU-8 encoded surrogate pair then
// falls back to its high surrogate, so classes of surrogates can match half of a pair. Well-formed
// UTF-8 characters are never split. An inverted class matches any character not in the set,
// including malformed units.
func (c *Class) Match(s string, i int) (int, bool) {
	if i < 0 || i >= len(s) {
		return 0, false
	}
	r, w := text.Next(s, i)
	if c.Inverted {
		if c.Set.Contains(r) {
			return 0, false
		}
		return w, true
	}
	if c.Set.Contains(r) {
		return w, true
	}
	if w != surrogatePairWidth {
		return 0, false
	}
	if u, uw := text.Unit(s, i); c.Set.Contains(u) {
		return uw, true
	}
	return 0, false
}

// String returns the class as a pattern that Parse accepts and that yields an equal class.
func (c *Class) String() string {
	if c.Inverted {
		return "^" + c.Set.pattern(true)
	}
	return c.Set.Pattern()
}
