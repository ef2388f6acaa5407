package casefold

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFoldASCII(t *testing.T) {
	require.Equal(t, Fold('a'), Fold('A'))
	require.Equal(t, Fold('z'), Fold('Z'))
	require.NotEqual(t, Fold('a'), Fold('b'))
	_, ok := Target('1')
	require.False(t, ok)
	require.Equal(t, '1', Fold('1'))
}

func TestDottedAndDotlessI(t *testing.T) {
	require.Equal(t, []rune{'I', 'i'}, Equivalents('I'))
	require.Equal(t, []rune{'\u0130'}, Equivalents('\u0130'))
	require.Equal(t, []rune{'\u0131'}, Equivalents('\u0131'))
	require.NotEqual(t, Fold('i'), Fold('\u0130'))
	require.NotEqual(t, Fold('i'), Fold('\u0131'))
}

func TestKelvinAndLongS(t *testing.T) {
	require.Equal(t, []rune{'K', 'k', '\u212A'}, Equivalents('\u212A'))
	require.Equal(t, []rune{'S', 's', '\u017F'}, Equivalents('s'))
	require.Equal(t, Fold('k'), Fold('\u212A'))
}

func TestSymmetric(t *testing.T) {
	for _, r := range Foldable() {
		for _, eq := range Equivalents(r) {
			require.Contains(t, Equivalents(eq), r, "%U <-> %U", r, eq)
			require.Equal(t, Fold(r), Fold(eq))
		}
	}
}

func TestFoldableSorted(t *testing.T) {
	all := Foldable()
	require.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		require.Less(t, all[i-1], all[i])
	}
}
