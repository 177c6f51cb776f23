package shortcode

import (
	"context"
	"errors"
	"testing"

	"github.com/mikepea/shortmark/pkg/shortmark/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequence returns an index source that replays idx, then repeats the last value
func sequence(idx ...int) func(int) int {
	i := 0
	return func(n int) int {
		v := idx[len(idx)-1]
		if i < len(idx) {
			v = idx[i]
			i++
		}
		return v % n
	}
}

func never(context.Context, string) (bool, error) { return false, nil }

func TestAlphabet(t *testing.T) {
	assert.Len(t, Alphabet, 62)
	seen := make(map[rune]bool)
	for _, r := range Alphabet {
		assert.False(t, seen[r], "duplicate %q in alphabet", r)
		seen[r] = true
	}
}

func TestDrawShape(t *testing.T) {
	g := New()
	for i := 0; i < 1000; i++ {
		code := g.Draw()
		require.True(t, Valid(code), "unexpected code %q", code)
	}
}

func TestDrawCoversAlphabet(t *testing.T) {
	g := New()
	seen := make(map[rune]bool)
	for i := 0; i < 5000; i++ {
		for _, r := range g.Draw() {
			seen[r] = true
		}
	}
	// 15000 draws over 62 symbols: every symbol shows up with overwhelming probability
	assert.Len(t, seen, len(Alphabet))
}

func TestGenerateReturnsFreeCode(t *testing.T) {
	g := New(WithIntN(sequence(0, 1, 2)))

	code, err := g.Generate(context.Background(), never)
	require.NoError(t, err)
	assert.Equal(t, "012", code)
}

func TestGenerateRetriesOnCollision(t *testing.T) {
	// first draw "000", second "111"
	g := New(WithIntN(sequence(0, 0, 0, 1, 1, 1)))
	taken := map[string]bool{"000": true}

	var checked []string
	code, err := g.Generate(context.Background(), func(_ context.Context, c string) (bool, error) {
		checked = append(checked, c)
		return taken[c], nil
	})
	require.NoError(t, err)
	assert.Equal(t, "111", code)
	assert.Equal(t, []string{"000", "111"}, checked)
}

func TestGenerateExhausted(t *testing.T) {
	g := New(WithMaxAttempts(4))

	calls := 0
	_, err := g.Generate(context.Background(), func(context.Context, string) (bool, error) {
		calls++
		return true, nil
	})

	var exhausted *apperr.ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 4, exhausted.Attempts)
	assert.Equal(t, 4, calls)
}

func TestGeneratePropagatesLookupError(t *testing.T) {
	g := New()
	boom := errors.New("db down")

	_, err := g.Generate(context.Background(), func(context.Context, string) (bool, error) {
		return false, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestGenerateHonoursCancellation(t *testing.T) {
	g := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Generate(ctx, never)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("aB3"))
	assert.False(t, Valid("ab"))
	assert.False(t, Valid("abcd"))
	assert.False(t, Valid("a-b"))
	assert.False(t, Valid("éab"))
}

func TestWithMaxAttemptsIgnoresNonPositive(t *testing.T) {
	assert.Equal(t, DefaultMaxAttempts, New(WithMaxAttempts(0)).MaxAttempts())
	assert.Equal(t, 7, New(WithMaxAttempts(7)).MaxAttempts())
}
