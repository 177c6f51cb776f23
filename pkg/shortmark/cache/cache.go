// Package cache holds the short code -> target URL cache used by the
// redirect path. The database stays the source of truth; entries are
// dropped whenever a bookmark's URL changes or the bookmark is deleted.
package cache

import "context"

// Cache maps short codes to target URLs
type Cache interface {
	// Get returns the cached URL; ok is false on a miss
	Get(ctx context.Context, code string) (url string, ok bool, err error)
	Set(ctx context.Context, code, url string) error
	Delete(ctx context.Context, code string) error
}

// Nop is a Cache that never stores anything
type Nop struct{}

func (Nop) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (Nop) Set(context.Context, string, string) error         { return nil }
func (Nop) Delete(context.Context, string) error              { return nil }
