// Package bookmarks owns bookmark records and short code allocation.
package bookmarks

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mikepea/shortmark/pkg/shortmark/apperr"
	"github.com/mikepea/shortmark/pkg/shortmark/cache"
	"github.com/mikepea/shortmark/pkg/shortmark/models"
	"github.com/mikepea/shortmark/pkg/shortmark/shortcode"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// DefaultMaxInsertAttempts bounds retries after a unique index violation
	DefaultMaxInsertAttempts = 5

	msgInvalidURL   = "Enter a valid url"
	msgURLExists    = "URL already exists"
	resourceName    = "Bookmark"
	urlValidateTags = "required,http_url"
)

// Store is the bookmark store. Every read and write is scoped to the
// owning user.
type Store struct {
	db                *gorm.DB
	codes             *shortcode.Generator
	cache             cache.Cache
	log               *zap.Logger
	validate          *validator.Validate
	maxInsertAttempts int
}

// Option configures a Store
type Option func(*Store)

// WithGenerator sets the short code generator
func WithGenerator(g *shortcode.Generator) Option {
	return func(s *Store) {
		if g != nil {
			s.codes = g
		}
	}
}

// WithCache sets the resolve cache invalidated by Edit and Delete
func WithCache(c cache.Cache) Option {
	return func(s *Store) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithLogger sets the logger
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMaxInsertAttempts sets how many insert transactions Create tries
// before giving up on constraint violations
func WithMaxInsertAttempts(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxInsertAttempts = n
		}
	}
}

// NewStore creates a bookmark store on db
func NewStore(db *gorm.DB, opts ...Option) *Store {
	s := &Store{
		db:                db,
		codes:             shortcode.New(),
		cache:             cache.Nop{},
		log:               zap.NewNop(),
		validate:          validator.New(),
		maxInsertAttempts: DefaultMaxInsertAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateURL checks that raw is an absolute http(s) URL
func (s *Store) ValidateURL(raw string) error {
	if err := s.validate.Var(raw, urlValidateTags); err != nil {
		return &apperr.ValidationError{Message: msgInvalidURL}
	}
	return nil
}

// Create stores a new bookmark for userID under a freshly drawn short code.
//
// Each attempt runs in its own transaction: the URL must not exist anywhere
// in the store, a free code is drawn, and the row is inserted. A unique
// index violation on insert means a concurrent creator took the code, so
// the attempt is retried.
func (s *Store) Create(ctx context.Context, userID uint, url, body string) (*models.Bookmark, error) {
	if err := s.ValidateURL(url); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= s.maxInsertAttempts; attempt++ {
		var bookmark models.Bookmark
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&models.Bookmark{}).Where("url = ?", url).Count(&count).Error; err != nil {
				return errors.Wrap(err, "check url")
			}
			if count > 0 {
				return &apperr.ConflictError{Message: msgURLExists}
			}

			code, err := s.codes.Generate(ctx, codeTaken(tx))
			if err != nil {
				return err
			}

			bookmark = models.Bookmark{
				UserID:   userID,
				URL:      url,
				Body:     body,
				ShortURL: code,
			}
			return tx.Create(&bookmark).Error
		})

		switch {
		case err == nil:
			s.log.Debug("bookmark created",
				zap.Uint("user_id", userID),
				zap.Uint("id", bookmark.ID),
				zap.String("short_url", bookmark.ShortURL))
			return &bookmark, nil
		case stderrors.Is(err, gorm.ErrDuplicatedKey):
			s.log.Warn("short code collision on insert, retrying",
				zap.String("short_url", bookmark.ShortURL),
				zap.Int("attempt", attempt))
			continue
		case isAppError(err):
			return nil, err
		default:
			return nil, errors.Wrap(err, "create bookmark")
		}
	}

	return nil, &apperr.ExhaustedError{Attempts: s.maxInsertAttempts}
}

// codeTaken reports whether a bookmark holds code, reading through tx
func codeTaken(tx *gorm.DB) shortcode.TakenFunc {
	return func(ctx context.Context, code string) (bool, error) {
		var count int64
		if err := tx.WithContext(ctx).Model(&models.Bookmark{}).Where("short_url = ?", code).Count(&count).Error; err != nil {
			return false, errors.Wrap(err, "check short code")
		}
		return count > 0, nil
	}
}

// Get returns the bookmark with id if it belongs to userID
func (s *Store) Get(ctx context.Context, userID, id uint) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&bookmark).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Resource: resourceName}
		}
		return nil, errors.Wrap(err, "get bookmark")
	}
	return &bookmark, nil
}

// Edit replaces the url and body of a bookmark. The short code and visit
// count are left alone and the URL is not re-checked for uniqueness.
func (s *Store) Edit(ctx context.Context, userID, id uint, url, body string) (*models.Bookmark, error) {
	bookmark, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.ValidateURL(url); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(bookmark).Updates(map[string]interface{}{
		"url":  url,
		"body": body,
	}).Error
	if err != nil {
		return nil, errors.Wrap(err, "update bookmark")
	}
	bookmark.URL = url
	bookmark.Body = body

	s.invalidate(ctx, bookmark.ShortURL)
	return bookmark, nil
}

// Delete removes a bookmark owned by userID
func (s *Store) Delete(ctx context.Context, userID, id uint) error {
	bookmark, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Bookmark{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "delete bookmark")
	}
	if result.RowsAffected == 0 {
		return &apperr.NotFoundError{Resource: resourceName}
	}

	s.invalidate(ctx, bookmark.ShortURL)
	return nil
}

// Backdate sets the creation time of a bookmark owned by userID, for
// records brought in from elsewhere. updated_at is left alone.
func (s *Store) Backdate(ctx context.Context, userID, id uint, createdAt time.Time) error {
	result := s.db.WithContext(ctx).Model(&models.Bookmark{}).
		Where("id = ? AND user_id = ?", id, userID).
		UpdateColumn("created_at", createdAt)
	if result.Error != nil {
		return errors.Wrap(result.Error, "backdate bookmark")
	}
	if result.RowsAffected == 0 {
		return &apperr.NotFoundError{Resource: resourceName}
	}
	return nil
}

// Stat is the per-bookmark visit summary
type Stat struct {
	ID       uint   `json:"id"`
	URL      string `json:"url"`
	ShortURL string `json:"short_url"`
	Visits   uint   `json:"visits"`
}

// Stats returns visit counts for every bookmark owned by userID
func (s *Store) Stats(ctx context.Context, userID uint) ([]Stat, error) {
	stats := []Stat{}
	err := s.db.WithContext(ctx).Model(&models.Bookmark{}).
		Select("id, url, short_url, visits").
		Where("user_id = ?", userID).
		Order("id").
		Scan(&stats).Error
	if err != nil {
		return nil, errors.Wrap(err, "load stats")
	}
	return stats, nil
}

// All returns every bookmark owned by userID, ordered by id
func (s *Store) All(ctx context.Context, userID uint) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&bookmarks).Error; err != nil {
		return nil, errors.Wrap(err, "list bookmarks")
	}
	return bookmarks, nil
}

func (s *Store) invalidate(ctx context.Context, code string) {
	if err := s.cache.Delete(ctx, code); err != nil {
		s.log.Warn("failed to invalidate cached url",
			zap.String("short_url", code),
			zap.Error(err))
	}
}

func isAppError(err error) bool {
	var (
		validation *apperr.ValidationError
		conflict   *apperr.ConflictError
		notFound   *apperr.NotFoundError
		exhausted  *apperr.ExhaustedError
	)
	return stderrors.As(err, &validation) ||
		stderrors.As(err, &conflict) ||
		stderrors.As(err, &notFound) ||
		stderrors.As(err, &exhausted)
}
