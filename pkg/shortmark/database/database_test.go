package database

import (
	"testing"

	"github.com/mikepea/shortmark/pkg/shortmark/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpenAndMigrateSQLite(t *testing.T) {
	db, err := OpenAndMigrate(Options{Driver: DriverSQLite, DSN: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	assert.True(t, db.Migrator().HasTable(&models.Bookmark{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestForeignKeysCascade(t *testing.T) {
	db, err := OpenAndMigrate(Options{DSN: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	user := models.User{Username: "dora", Email: "dora@example.com", PasswordHash: "hash"}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.Bookmark{UserID: user.ID, URL: "https://example.com", ShortURL: "d0r"}).Error)

	require.NoError(t, db.Delete(&user).Error)

	var count int64
	db.Model(&models.Bookmark{}).Count(&count)
	assert.Zero(t, count, "bookmarks should be removed with their owner")

	// A bookmark for a user that does not exist violates the foreign key
	err = db.Create(&models.Bookmark{UserID: 999, URL: "https://orphan.example", ShortURL: "orf"}).Error
	assert.Error(t, err)
}

func TestUnsupportedDriver(t *testing.T) {
	_, err := Open(Options{Driver: "oracle", DSN: "x"}, zap.NewNop())
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestWithForeignKeys(t *testing.T) {
	assert.Equal(t, ":memory:?_foreign_keys=on", withForeignKeys(":memory:"))
	assert.Equal(t, "file.db?cache=shared&_foreign_keys=on", withForeignKeys("file.db?cache=shared"))
	assert.Equal(t, "file.db?_fk=1", withForeignKeys("file.db?_fk=1"))
}
