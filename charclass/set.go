package charclass

import (
	"fmt"
	"sort"

	"github.com/alecthomas/packrat/internal/casefold"
)

// Range is a closed interval of code points.
type Range struct {
	Lo, Hi rune
}

// Single returns the Range containing only r.
func Single(r rune) Range { return Range{r, r} }

// Contains reports whether r lies within the range.
func (r Range) Contains(c rune) bool { return c >= r.Lo && c <= r.Hi }

func (r Range) String() string {
	if r.Lo == r.Hi {
		return fmt.Sprintf("%U", r.Lo)
	}
	return fmt.Sprintf("%U-%U", r.Lo, r.Hi)
}

// Set is a set of code points represented as ranges.
//
// Query methods require a normalised set: sorted, with overlapping and adjacent ranges merged.
// Sets produced by this package are always normalised.
type Set []Range

// Normalize returns a sorted copy of s with overlapping and adjacent ranges merged.
//
// Normalising an already normalised set returns an equal set.
func (s Set) Normalize() Set {
	if len(s) == 0 {
		return Set{}
	}
	sorted := make(Set, 0, len(s))
	for _, r := range s {
		if r.Lo > r.Hi {
			r.Lo, r.Hi = r.Hi, r.Lo
		}
		sorted = append(sorted, r)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Lo != sorted[j].Lo {
			return sorted[i].Lo < sorted[j].Lo
		}
		return sorted[i].Hi < sorted[j].Hi
	})
	out := sorted[:1]
	for _, r := range sorted[1:] {
		last := &out[len(out)-1]
		if r.Lo <= last.Hi+1 {
			if r.Hi > last.Hi {
				last.Hi = r.Hi
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// Union of two sets.
func (s Set) Union(other Set) Set {
	out := make(Set, 0, len(s)+len(other))
	out = append(out, s...)
	out = append(out, other...)
	return out.Normalize()
}

// Contains reports whether r is in the set.
func (s Set) Contains(r rune) bool {
	i := sort.Search(len(s), func(i int) bool { return s[i].Hi >= r })
	return i < len(s) && s[i].Lo <= r
}

// Len returns the number of code points in the set.
func (s Set) Len() int {
	n := 0
	for _, r := range s {
		n += int(r.Hi-r.Lo) + 1
	}
	return n
}

// Fold returns the closure of s under simple case folding: every code point that folds to or from a
// member of s is added.
func (s Set) Fold() Set {
	var extra Set
	for _, r := range casefold.Foldable() {
		if !s.Contains(r) {
			continue
		}
		for _, eq := range casefold.Equivalents(r) {
			extra = append(extra, Single(eq))
		}
	}
	if len(extra) == 0 {
		return s
	}
	return s.Union(extra)
}
