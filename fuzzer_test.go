package packrat

import (
	"encoding/json"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/alecthomas/repr"
	"github.com/stretchr/testify/require"
)

func randomJSON(rng *rand.Rand, depth int) string {
	ws := func() string { return []string{"", " ", "\n\t", "  \r\n"}[rng.Intn(4)] }
	kind := rng.Intn(8)
	if depth == 0 {
		kind = rng.Intn(5)
	}
	switch kind {
	case 0:
		return "null"
	case 1:
		return strconv.FormatBool(rng.Intn(2) == 0)
	case 2:
		return strconv.FormatFloat((rng.Float64()-0.5)*math.Pow(10, float64(rng.Intn(40)-20)), 'g', -1, 64)
	case 3:
		return strconv.Itoa(rng.Intn(2000) - 1000)
	case 4:
		return randomString(rng)
	case 5:
		items := make([]string, rng.Intn(4))
		for i := range items {
			items[i] = ws() + randomJSON(rng, depth-1) + ws()
		}
		return "[" + strings.Join(items, ",") + "]"
	default:
		members := make([]string, rng.Intn(4))
		for i := range members {
			members[i] = ws() + randomString(rng) + ws() + ":" + ws() + randomJSON(rng, depth-1) + ws()
		}
		return "{" + strings.Join(members, ",") + "}"
	}
}

func randomString(rng *rand.Rand) string {
	pieces := []string{"a", "Z", " ", "é", "\U0001F347", `\"`, `\\`, `\/`, `\n`, `\t`, `\u00e9`, `\ud83c\udf47`, `\ud800`, `\udc00`}
	out := &strings.Builder{}
	out.WriteString(`"`)
	for i := rng.Intn(8); i > 0; i-- {
		out.WriteString(pieces[rng.Intn(len(pieces))])
	}
	out.WriteString(`"`)
	return out.String()
}

func TestFuzzJSON(t *testing.T) {
	p := jsonGrammar()
	rng := rand.New(rand.NewSource(0))
	for i := 0; i < 500; i++ {
		input := randomJSON(rng, 4)
		var expected any
		require.NoError(t, json.Unmarshal([]byte(input), &expected), input)
		actual, err := p.Parse(input)
		require.NoError(t, err, input)
		require.Equal(t, expected, actual, repr.String(input))
	}
}

func FuzzJSON(f *testing.F) {
	for _, seed := range []string{`{"a": [1, 2.5e3, "xé"]}`, `[]`, `"🍇"`, `nul`, `[1,]`, `-`} {
		f.Add(seed)
	}
	p := jsonGrammar()
	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			t.Skip()
		}
		var expected any
		jerr := json.Unmarshal([]byte(input), &expected)
		actual, err := p.Parse(input)
		if jerr != nil {
			require.Error(t, err, input)
			return
		}
		require.NoError(t, err, input)
		require.Equal(t, expected, actual, input)
	})
}
