// Package shortcode draws the public short codes that bookmarks are
// reachable under.
package shortcode

import (
	"context"
	"math/rand/v2"
	"regexp"

	"github.com/mikepea/shortmark/pkg/shortmark/apperr"
)

const (
	// Alphabet is the set of characters a short code is drawn from
	Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	// Length is the number of characters in a short code
	Length = 3
	// DefaultMaxAttempts bounds the number of draws in a single Generate call
	DefaultMaxAttempts = 32
)

var codeRegex = regexp.MustCompile(`^[0-9A-Za-z]{3}$`)

// Valid reports whether s has the shape of a short code
func Valid(s string) bool {
	return codeRegex.MatchString(s)
}

// TakenFunc reports whether code is already held by a bookmark
type TakenFunc func(ctx context.Context, code string) (bool, error)

// Generator draws uniformly random short codes
type Generator struct {
	maxAttempts int
	intN        func(n int) int
}

// Option configures a Generator
type Option func(*Generator)

// WithMaxAttempts sets how many draws Generate makes before giving up
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// WithIntN replaces the random index source. fn must return a value in [0, n).
func WithIntN(fn func(n int) int) Option {
	return func(g *Generator) {
		g.intN = fn
	}
}

// New creates a generator
func New(opts ...Option) *Generator {
	g := &Generator{
		maxAttempts: DefaultMaxAttempts,
		intN:        rand.IntN,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// MaxAttempts returns the configured attempt bound
func (g *Generator) MaxAttempts() int {
	return g.maxAttempts
}

// Draw returns a random code without checking availability
func (g *Generator) Draw() string {
	b := make([]byte, Length)
	for i := range b {
		b[i] = Alphabet[g.intN(len(Alphabet))]
	}
	return string(b)
}

// Generate draws codes until taken reports one as free. It fails with
// *apperr.ExhaustedError once the attempt bound is reached.
func (g *Generator) Generate(ctx context.Context, taken TakenFunc) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		code := g.Draw()
		exists, err := taken(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}

	return "", &apperr.ExhaustedError{Attempts: g.maxAttempts}
}
