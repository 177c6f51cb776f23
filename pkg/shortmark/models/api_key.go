package models

import (
	"time"
)

// APIKey is a long-lived credential for scripts. Only the SHA-256 digest of
// the key is stored; KeyPrefix is kept in clear so users can tell keys apart.
// Revoking a key deletes the row.
type APIKey struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	KeyHash     string     `gorm:"size:64;uniqueIndex;not null" json:"-"`
	KeyPrefix   string     `gorm:"size:8;not null" json:"key_prefix"`
	Description string     `gorm:"size:255" json:"description"`
	LastUsedAt  *time.Time `json:"last_used_at"`
}
