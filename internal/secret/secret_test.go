package secret

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassword(t *testing.T) {
	seen := map[string]bool{}

	for range 50 {
		pw, err := Password()
		require.NoError(t, err)
		assert.Len(t, pw, PasswordLen)

		for _, r := range pw {
			assert.True(t, strings.ContainsRune(string(Alphabet), r), "unexpected rune %q", r)
		}

		assert.False(t, seen[pw], "duplicate password")
		seen[pw] = true
	}
}

func TestGenerate(t *testing.T) {
	s, err := Generate(1000, []byte("ab"))
	require.NoError(t, err)
	assert.Len(t, s, 1000)
	assert.Contains(t, s, "a")
	assert.Contains(t, s, "b")

	s, err = Generate(0, Alphabet)
	require.NoError(t, err)
	assert.Empty(t, s)

	_, err = Generate(8, []byte("a"))
	require.ErrorIs(t, err, ErrAlphabet)

	_, err = Generate(8, make([]byte, 257))
	require.ErrorIs(t, err, ErrAlphabet)
}
