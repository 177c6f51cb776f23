package bookmarks

import (
	"context"

	"github.com/mikepea/shortmark/pkg/shortmark/models"
	"github.com/pkg/errors"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 5
	MaxPerPage     = 100
)

// Meta describes where a page sits in the full listing. Prev and Next are
// nil when there is no such page.
type Meta struct {
	Page       int   `json:"page"`
	Pages      int   `json:"pages"`
	PerPage    int   `json:"per_page"`
	TotalCount int64 `json:"total_count"`
	Prev       *int  `json:"prev"`
	Next       *int  `json:"next"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

// Page is one page of a user's bookmarks
type Page struct {
	Data []models.Bookmark
	Meta Meta
}

// NormalizePaging applies defaults to non-positive values and caps perPage
func NormalizePaging(page, perPage int) (int, int) {
	if page <= 0 {
		page = DefaultPage
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage
}

// NewMeta computes paging metadata for total items
func NewMeta(page, perPage int, total int64) Meta {
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	meta := Meta{
		Page:       page,
		Pages:      pages,
		PerPage:    perPage,
		TotalCount: total,
		HasPrev:    page > 1,
		HasNext:    page < pages,
	}
	if meta.HasPrev {
		prev := page - 1
		meta.Prev = &prev
	}
	if meta.HasNext {
		next := page + 1
		meta.Next = &next
	}
	return meta
}

// List returns one page of the bookmarks owned by userID, ordered by id.
// A page past the end yields empty data.
func (s *Store) List(ctx context.Context, userID uint, page, perPage int) (*Page, error) {
	page, perPage = NormalizePaging(page, perPage)

	db := s.db.WithContext(ctx).Model(&models.Bookmark{}).Where("user_id = ?", userID)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "count bookmarks")
	}

	meta := NewMeta(page, perPage, total)
	data := []models.Bookmark{}
	if page > meta.Pages {
		return &Page{Data: data, Meta: meta}, nil
	}

	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&data).Error
	if err != nil {
		return nil, errors.Wrap(err, "list bookmarks")
	}

	return &Page{Data: data, Meta: meta}, nil
}
