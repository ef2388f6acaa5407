// Package text decodes characters from UTF-8 input the way the matchers see them.
//
// A character is one of:
//
//   - a well-formed UTF-8 sequence;
//   - a CESU-8 encoded surrogate pair, decoded to the supplementary code point it encodes;
//   - a lone encoded surrogate, decoded to the surrogate code point;
//   - any other byte, decoded to the code point with the byte's value.
//
// Malformed input therefore never stops a match: every byte belongs to exactly one character.
package text

import (
	"unicode/utf16"
	"unicode/utf8"
)

// Surrogate code point bounds.
const (
	HighSurrogateMin = 0xD800
	HighSurrogateMax = 0xDBFF
	LowSurrogateMin  = 0xDC00
	LowSurrogateMax  = 0xDFFF
)

// Next decodes the character starting at byte offset i.
//
// i must be less than len(s).
func Next(s string, i int) (r rune, width int) {
	if b := s[i]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	r, width = utf8.DecodeRuneInString(s[i:])
	if r != utf8.RuneError || width > 1 {
		return r, width
	}
	if hi, ok := surrogateAt(s, i); ok {
		if IsHighSurrogate(hi) {
			if lo, ok := surrogateAt(s, i+3); ok && IsLowSurrogate(lo) {
				return utf16.DecodeRune(hi, lo), 6
			}
		}
		return hi, 3
	}
	return rune(s[i]), 1
}

// Unit decodes the smallest unit starting at byte offset i: an encoded surrogate, or a single byte.
//
// i must be less than len(s).
func Unit(s string, i int) (r rune, width int) {
	if sr, ok := surrogateAt(s, i); ok {
		return sr, 3
	}
	return rune(s[i]), 1
}

// Count returns the number of characters in s.
func Count(s string) int {
	n := 0
	for i := 0; i < len(s); n++ {
		_, w := Next(s, i)
		i += w
	}
	return n
}

// IsHighSurrogate reports whether r is a high (leading) surrogate.
func IsHighSurrogate(r rune) bool { return r >= HighSurrogateMin && r <= HighSurrogateMax }

// IsLowSurrogate reports whether r is a low (trailing) surrogate.
func IsLowSurrogate(r rune) bool { return r >= LowSurrogateMin && r <= LowSurrogateMax }

// IsSurrogate reports whether r is any surrogate.
func IsSurrogate(r rune) bool { return r >= HighSurrogateMin && r <= LowSurrogateMax }

// EncodeSurrogate returns the 3-byte generalised UTF-8 encoding of a surrogate code point.
func EncodeSurrogate(r rune) string {
	return string([]byte{0xED, byte(0x80 | (r>>6)&0x3F), byte(0x80 | r&0x3F)})
}

func surrogateAt(s string, i int) (rune, bool) {
	if i+3 > len(s) || s[i] != 0xED || s[i+1] < 0xA0 || s[i+1] > 0xBF || s[i+2]&0xC0 != 0x80 {
		return 0, false
	}
	return 0xD000 | rune(s[i+1]&0x3F)<<6 | rune(s[i+2]&0x3F), true
}
