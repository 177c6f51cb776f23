// Package models holds the GORM schema.
package models

import "gorm.io/gorm"

// AllModels lists every table in dependency order; users come first because
// bookmarks and api keys reference them.
func AllModels() []interface{} {
	return []interface{}{&User{}, &Bookmark{}, &APIKey{}}
}

// AutoMigrate creates or updates every table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
