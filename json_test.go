package packrat

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"unicode"
	"unicode/utf16"

	"github.com/alecthomas/repr"
	"github.com/stretchr/testify/require"
)

// jsonGrammar decodes JSON to the same values as encoding/json does when decoding into an any.
func jsonGrammar() *Node {
	g := MustNew()
	ws := g.Chars(" \t\n\r").ZeroOrMore()
	token := func(s string) *Node { return g.Seq(s, ws) }
	second := func(v any, env Env) any { return v.([]any)[1] }

	hex := g.Chars("0-9a-fA-F")
	unicodeEscape := g.Seq(`\u`, hex.Times(4).Text()).Action(func(v any, env Env) any {
		n, _ := strconv.ParseUint(v.([]any)[1].(string), 16, 16)
		return rune(n)
	})
	simpleEscape := g.Seq(`\`, g.Or(
		g.Chars(`"\\/`),
		g.Str("b").Value("\b"),
		g.Str("f").Value("\f"),
		g.Str("n").Value("\n"),
		g.Str("r").Value("\r"),
		g.Str("t").Value("\t"),
	)).Action(second)
	char := g.Or(unicodeEscape, simpleEscape, g.Chars(`^"\\\0-\x1F`))
	str := g.Seq(`"`, char.ZeroOrMore(), `"`, ws).Action(func(v any, env Env) any {
		return assemble(v.([]any)[1].([]any))
	})

	// Numerals out of the range of a float64 are rejected, as encoding/json does.
	numeral := g.Regexp(`-?(?:0|[1-9][0-9]*)(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?`).Match(func(v any) bool {
		_, err := strconv.ParseFloat(v.([]string)[0], 64)
		return err == nil
	})
	number := g.Seq(numeral, ws).Action(func(v any, env Env) any {
		f, _ := strconv.ParseFloat(v.([]any)[0].([]string)[0], 64)
		return f
	})

	var object, array *Node
	value := g.Or(func() []any {
		return []any{
			object, array, str, number,
			token("true").Value(true),
			token("false").Value(false),
			token("null").Value(nil),
		}
	})
	array = g.Seq(token("["), g.Seq(value, g.Seq(token(","), value).ZeroOrMore()).Optional(), token("]")).
		Action(func(v any, env Env) any { return list(v.([]any)[1]) })
	member := g.Seq(str, token(":"), value)
	object = g.Seq(token("{"), g.Seq(member, g.Seq(token(","), member).ZeroOrMore()).Optional(), token("}")).
		Action(func(v any, env Env) any {
			out := map[string]any{}
			for _, m := range list(v.([]any)[1]) {
				m := m.([]any)
				out[m[0].(string)] = m[2]
			}
			return out
		})
	return g.Seq(ws, value).Action(second)
}

// list flattens the value of (x ("," x)*)? to the values of each x.
func list(v any) []any {
	out := []any{}
	if v == nil {
		return out
	}
	parts := v.([]any)
	out = append(out, parts[0])
	for _, rest := range parts[1].([]any) {
		out = append(out, rest.([]any)[1])
	}
	return out
}

// assemble the characters of a string, pairing escaped surrogates.
func assemble(chars []any) string {
	b := &strings.Builder{}
	for i := 0; i < len(chars); i++ {
		switch c := chars[i].(type) {
		case string:
			b.WriteString(c)
		case rune:
			if !utf16.IsSurrogate(c) {
				b.WriteRune(c)
				continue
			}
			if i+1 < len(chars) {
				if lo, ok := chars[i+1].(rune); ok {
					if r := utf16.DecodeRune(c, lo); r != unicode.ReplacementChar {
						b.WriteRune(r)
						i++
						continue
					}
				}
			}
			b.WriteRune(unicode.ReplacementChar)
		}
	}
	return b.String()
}

func TestJSONDifferential(t *testing.T) {
	p := jsonGrammar()
	corpus := []string{
		`null`,
		`true`,
		`false`,
		`0`,
		`-0`,
		`42`,
		`1.5e3`,
		`-12.25E-2`,
		`""`,
		`"hello"`,
		`"esc \" \\ \/ \b \f \n \r \t"`,
		`"é中"`,
		`"🍇"`,
		`"\u00e9"`,
		`"\ud83c\udf47"`,
		`"x\ud83c\udf47\ud83c\udf53y"`,
		`"\ud800"`,
		`"\udc00x"`,
		`"\ud800A"`,
		"\"héllo \U0001F347\"",
		`[]`,
		`[1, [2, [3]], {"a": []}]`,
		`{}`,
		`{"a": 1, "b": {"c": [true, false, null]}, "a": 2}`,
		" \n {\"k\" : \"v\" } \t",
		`[{"x": [{"y": [{"z": "deep"}]}]}]`,
	}
	for _, input := range corpus {
		var expected any
		require.NoError(t, json.Unmarshal([]byte(input), &expected), input)
		actual, err := p.Parse(input)
		require.NoError(t, err, input)
		require.Equal(t, expected, actual, "%s\n%s", input, repr.String(actual))
	}
}

func TestJSONRejects(t *testing.T) {
	p := jsonGrammar()
	for _, input := range []string{
		``,
		`[1,]`,
		`{"a"}`,
		`01`,
		`"\x"`,
		"\"\x01\"",
		`tru`,
		`[1 2]`,
		`{"a": 1,}`,
		`1e400`,
	} {
		var v any
		require.Error(t, json.Unmarshal([]byte(input), &v), input)
		_, err := p.Parse(input)
		require.Error(t, err, input)
	}
}
