package models

import (
	"time"
)

// User represents an account that owns bookmarks
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`

	// Relationships
	Bookmarks []Bookmark `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"bookmarks,omitempty"`
	APIKeys   []APIKey   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"api_keys,omitempty"`
}
