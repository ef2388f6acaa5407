package charclass

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/alecthomas/packrat/internal/text"
)

// Pattern serialises the set as a non-inverted class pattern.
//
// The output re-parses to an equal set:
//
//   - a literal `^` is never emitted first, where it would invert the class;
//   - a literal `-` is emitted last, where it cannot form a range;
//   - ranges starting with a low surrogate are emitted before all others, so an escaped high
//     surrogate is never directly followed by an escaped low surrogate and re-read as a pair.
func (s Set) Pattern() string {
	return s.pattern(false)
}

func (s Set) pattern(inverted bool) string {
	var (
		low, rest []Range
		dash      bool
	)
	for _, r := range s {
		if r.Contains('-') {
			dash = true
			if r.Lo < '-' {
				rest = append(rest, Range{r.Lo, '-' - 1})
			}
			if r.Hi > '-' {
				rest = append(rest, Range{'-' + 1, r.Hi})
			}
			continue
		}
		if text.IsLowSurrogate(r.Lo) {
			low = append(low, r)
			continue
		}
		rest = append(rest, r)
	}
	items := append(low, rest...)

	w := &strings.Builder{}
	if !inverted && len(items) > 0 && items[0].Lo == '^' {
		switch {
		case len(items) > 1:
			items[0], items[1] = items[1], items[0]
		case dash && items[0].Hi == '^':
			w.WriteByte('-')
			dash = false
		default:
			w.WriteString(`\^`)
			if items[0].Hi == '^' {
				items = items[1:]
			} else {
				items[0].Lo++
				if items[0].Lo == items[0].Hi {
					w.WriteString(escape(items[0].Lo))
					items = items[1:]
				}
			}
		}
	}
	for _, r := range items {
		w.WriteString(escape(r.Lo))
		if r.Hi != r.Lo {
			w.WriteByte('-')
			w.WriteString(escape(r.Hi))
		}
	}
	if dash {
		w.WriteByte('-')
	}
	return w.String()
}

func escape(r rune) string {
	switch r {
	case '\\':
		return `\\`
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\t':
		return `\t`
	case 0:
		return `\0`
	}
	if text.IsSurrogate(r) || !unicode.IsPrint(r) {
		if r > 0xFFFF {
			return fmt.Sprintf(`\u{%X}`, r)
		}
		return fmt.Sprintf(`\u%04X`, r)
	}
	return string(r)
}
