// Package casefold exposes the Unicode simple case folding relation as a read-only table.
//
// The table is derived once at process start from the case orbits of the unicode package, which are
// generated from CaseFolding.txt. Only simple (length-preserving in code points) foldings are
// represented.
package casefold

import (
	"sort"
	"unicode"
)

type entry struct {
	target rune
	orbit  []rune
}

var (
	table    = map[rune]*entry{}
	foldable []rune
)

func init() {
	for _, cr := range unicode.CaseRanges {
		for r := rune(cr.Lo); r <= rune(cr.Hi); r++ {
			add(r)
		}
	}
	for r := range table {
		foldable = append(foldable, r)
	}
	sort.Slice(foldable, func(i, j int) bool { return foldable[i] < foldable[j] })
}

func add(r rune) {
	if _, ok := table[r]; ok {
		return
	}
	orbit := []rune{r}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		orbit = append(orbit, f)
	}
	if len(orbit) == 1 {
		return
	}
	sort.Slice(orbit, func(i, j int) bool { return orbit[i] < orbit[j] })
	e := &entry{target: orbit[0], orbit: orbit}
	for _, member := range orbit {
		table[member] = e
	}
}

// Target returns the canonical fold target of r, if r participates in case folding.
func Target(r rune) (rune, bool) {
	e, ok := table[r]
	if !ok {
		return r, false
	}
	return e.target, true
}

// Fold returns the canonical fold target of r, or r itself.
func Fold(r rune) rune {
	t, _ := Target(r)
	return t
}

// Equivalents returns every code point that folds to the same target as r, including r, in
// ascending order.
//
// The returned slice must not be modified.
func Equivalents(r rune) []rune {
	if e, ok := table[r]; ok {
		return e.orbit
	}
	return []rune{r}
}

// Foldable returns all code points with at least one case equivalent, in ascending order.
//
// The returned slice must not be modified.
func Foldable() []rune {
	return foldable
}
