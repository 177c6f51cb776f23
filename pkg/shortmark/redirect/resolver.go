package redirect

import (
	"context"

	"github.com/mikepea/shortmark/pkg/shortmark/apperr"
	"github.com/mikepea/shortmark/pkg/shortmark/cache"
	"github.com/mikepea/shortmark/pkg/shortmark/models"
	"github.com/mikepea/shortmark/pkg/shortmark/shortcode"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const resourceName = "Short URL"

// Resolver turns short codes into target URLs and counts the visit
type Resolver struct {
	db    *gorm.DB
	cache cache.Cache
	log   *zap.Logger
}

// NewResolver creates a resolver. A nil cache disables caching.
func NewResolver(db *gorm.DB, c cache.Cache, log *zap.Logger) *Resolver {
	if c == nil {
		c = cache.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{db: db, cache: c, log: log}
}

// Resolve returns the URL stored under code and increments its visit
// count by exactly one. Unknown codes fail with *apperr.NotFoundError.
//
// The URL always comes from the row the visit was counted on. The cache
// only mirrors it and is rewritten whenever it disagrees.
func (r *Resolver) Resolve(ctx context.Context, code string) (string, error) {
	if !shortcode.Valid(code) {
		return "", &apperr.NotFoundError{Resource: resourceName, Key: code}
	}

	cached, hit := r.cached(ctx, code)

	var bookmark models.Bookmark
	result := r.db.WithContext(ctx).
		Model(&bookmark).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "url"}}}).
		Where("short_url = ?", code).
		Update("visits", gorm.Expr("visits + 1"))
	if result.Error != nil {
		return "", errors.Wrap(result.Error, "count visit")
	}
	if result.RowsAffected == 0 {
		if hit {
			r.drop(ctx, code)
		}
		return "", &apperr.NotFoundError{Resource: resourceName, Key: code}
	}

	if !hit || cached != bookmark.URL {
		if err := r.cache.Set(ctx, code, bookmark.URL); err != nil {
			r.log.Warn("failed to cache url", zap.String("short_url", code), zap.Error(err))
		}
	}
	return bookmark.URL, nil
}

// cached looks code up in the cache. Errors count as a miss.
func (r *Resolver) cached(ctx context.Context, code string) (string, bool) {
	url, ok, err := r.cache.Get(ctx, code)
	if err != nil {
		r.log.Warn("resolve cache unavailable", zap.String("short_url", code), zap.Error(err))
		return "", false
	}
	return url, ok
}

func (r *Resolver) drop(ctx context.Context, code string) {
	if err := r.cache.Delete(ctx, code); err != nil {
		r.log.Warn("failed to drop cached url", zap.String("short_url", code), zap.Error(err))
	}
}
