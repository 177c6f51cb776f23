// Package importexport moves bookmarks in and out in Pinboard's JSON format.
package importexport

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mikepea/shortmark/pkg/shortmark/apperr"
	"github.com/mikepea/shortmark/pkg/shortmark/bookmarks"
	"github.com/mikepea/shortmark/pkg/shortmark/models"
	"go.uber.org/zap"
)

// Pin is one entry of a Pinboard export. Tags, Shared and ToRead are
// accepted on import and ignored.
type Pin struct {
	Href        string `json:"href"`
	Description string `json:"description"`
	Extended    string `json:"extended"`
	Tags        string `json:"tags"`
	Time        string `json:"time"`
	Shared      string `json:"shared"`
	ToRead      string `json:"toread"`
}

// ImportResult reports what happened to each entry. Errors are prefixed
// with the entry's index.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

func (r *ImportResult) skip(i int, reason string) {
	r.Skipped++
	r.Errors = append(r.Errors, fmt.Sprintf("bookmark %d: %s", i, reason))
}

// PinFromBookmark converts a stored bookmark. The short code travels in
// Description, which Pinboard shows as the title.
func PinFromBookmark(b models.Bookmark) Pin {
	return Pin{
		Href:        b.URL,
		Description: b.ShortURL,
		Extended:    b.Body,
		Time:        b.CreatedAt.UTC().Format(time.RFC3339),
		Shared:      "no",
		ToRead:      "no",
	}
}

// Importer feeds Pinboard entries through the bookmark store
type Importer struct {
	store *bookmarks.Store
	log   *zap.Logger
}

// NewImporter creates an importer writing to store
func NewImporter(store *bookmarks.Store, log *zap.Logger) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{store: store, log: log}
}

// Import creates a bookmark for each pin. Entries the store rejects
// (bad URL, URL already saved, no free code) are skipped; an
// infrastructure error stops the import and is returned.
func (im *Importer) Import(ctx context.Context, userID uint, pins []Pin) (*ImportResult, error) {
	result := &ImportResult{Errors: []string{}}

	for i, pin := range pins {
		var savedAt time.Time
		if pin.Time != "" {
			t, err := time.Parse(time.RFC3339, pin.Time)
			if err != nil {
				result.skip(i, "invalid time format")
				continue
			}
			savedAt = t
		}

		b, err := im.store.Create(ctx, userID, pin.Href, pin.Extended)
		if err != nil {
			if apperr.Status(err) == http.StatusInternalServerError {
				return nil, err
			}
			result.skip(i, err.Error())
			continue
		}
		result.Imported++

		if savedAt.IsZero() {
			continue
		}
		if err := im.store.Backdate(ctx, userID, b.ID, savedAt); err != nil {
			im.log.Warn("failed to keep imported timestamp", zap.Uint("id", b.ID), zap.Error(err))
		}
	}

	im.log.Info("bookmarks imported",
		zap.Uint("user_id", userID),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped))
	return result, nil
}
