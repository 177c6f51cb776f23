package models

import (
	"time"
)

// Bookmark represents a saved URL reachable under a short code.
// ShortURL is assigned once at creation; the unique index is what guarantees
// no two bookmarks share a code, even under concurrent inserts.
type Bookmark struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	URL       string    `gorm:"type:text;not null;index" json:"url"`
	Body      string    `gorm:"type:text" json:"body"`
	ShortURL  string    `gorm:"size:3;uniqueIndex;not null" json:"short_url"`
	Visits    uint      `gorm:"not null;default:0" json:"visits"`
}
