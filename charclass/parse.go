package charclass

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/packrat/internal/text"
)

// Error is returned by Parse for malformed patterns.
type Error struct {
	Pattern string
	Offset  int
	Msg     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid character class %q at offset %d: %s", e.Pattern, e.Offset, e.Msg)
}

// Parse a character class pattern.
//
// The syntax is a sequence of characters and ranges (`a-z`). A leading `^` inverts the class. A `-`
// at the start or end of the pattern, or following a range, is literal. The escapes `\\`, `\-`,
// `\^`, `\]`, `\n`, `\r`, `\t`, `\f`, `\v`, `\0`, `\xHH`, `\uHHHH` and `\u{H...}` are recognised,
// and an escaped high surrogate immediately followed by an escaped low surrogate denotes the
// supplementary code point they encode. Any other escaped punctuation stands for itself.
func Parse(pattern string) (*Class, error) {
	p := &parser{pattern: pattern}
	c := &Class{}
	if p.peekByte('^') {
		p.pos++
		c.Inverted = true
	}
	var set Set
	for p.pos < len(p.pattern) {
		lo, err := p.atom()
		if err != nil {
			return nil, err
		}
		if p.peekByte('-') && p.pos+1 < len(p.pattern) {
			start := p.pos
			p.pos++
			hi, err := p.atom()
			if err != nil {
				return nil, err
			}
			if hi < lo {
				return nil, p.errorf(start, "range %U-%U is out of order", lo, hi)
			}
			set = append(set, Range{lo, hi})
			continue
		}
		set = append(set, Single(lo))
	}
	c.Set = set.Normalize()
	return c, nil
}

type parser struct {
	pattern string
	pos     int
}

func (p *parser) errorf(offset int, format string, args ...interface{}) error {
	return &Error{Pattern: p.pattern, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) peekByte(b byte) bool {
	return p.pos < len(p.pattern) && p.pattern[p.pos] == b
}

func (p *parser) atom() (rune, error) {
	if p.pattern[p.pos] != '\\' {
		r, w := text.Next(p.pattern, p.pos)
		p.pos += w
		return r, nil
	}
	start := p.pos
	p.pos++
	if p.pos >= len(p.pattern) {
		return 0, p.errorf(start, "trailing backslash")
	}
	r, w := text.Next(p.pattern, p.pos)
	p.pos += w
	switch r {
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'f':
		return '\f', nil
	case 'v':
		return '\v', nil
	case '0':
		return 0, nil
	case 'x':
		return p.hex(start, 2)
	case 'u':
		if p.peekByte('{') {
			return p.braced(start)
		}
		hi, err := p.hex(start, 4)
		if err != nil || !text.IsHighSurrogate(hi) {
			return hi, err
		}
		if !p.hasPrefix(`\u`) {
			return hi, nil
		}
		save := p.pos
		p.pos += 2
		lo, err := p.hex(save, 4)
		if err != nil || !text.IsLowSurrogate(lo) {
			p.pos = save
			return hi, nil
		}
		return 0x10000 + (hi-text.HighSurrogateMin)<<10 + (lo - text.LowSurrogateMin), nil
	}
	if r < 0x80 && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
		return 0, p.errorf(start, "unknown escape \\%c", r)
	}
	return r, nil
}

func (p *parser) hasPrefix(prefix string) bool {
	return len(p.pattern)-p.pos >= len(prefix) && p.pattern[p.pos:p.pos+len(prefix)] == prefix
}

func (p *parser) hex(start, digits int) (rune, error) {
	if p.pos+digits > len(p.pattern) {
		return 0, p.errorf(start, "expected %d hex digits", digits)
	}
	v, err := strconv.ParseUint(p.pattern[p.pos:p.pos+digits], 16, 32)
	if err != nil {
		return 0, p.errorf(start, "expected %d hex digits", digits)
	}
	p.pos += digits
	return rune(v), nil
}

func (p *parser) braced(start int) (rune, error) {
	end := p.pos + 1
	for end < len(p.pattern) && p.pattern[end] != '}' {
		end++
	}
	if end >= len(p.pattern) || end == p.pos+1 || end-p.pos-1 > 6 {
		return 0, p.errorf(start, "malformed \\u{...} escape")
	}
	v, err := strconv.ParseUint(p.pattern[p.pos+1:end], 16, 32)
	if err != nil || v > 0x10FFFF {
		return 0, p.errorf(start, "malformed \\u{...} escape")
	}
	p.pos = end + 1
	return rune(v), nil
}
