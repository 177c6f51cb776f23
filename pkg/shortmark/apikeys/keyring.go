// Package apikeys issues long-lived API keys and authenticates requests
// that carry one.
package apikeys

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"time"

	"github.com/mikepea/shortmark/pkg/shortmark/apperr"
	"github.com/mikepea/shortmark/pkg/shortmark/models"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// KeyLength is the number of random bytes in a key; keys are hex encoded
	KeyLength = 32
	// KeyPrefixLength is how much of a key is kept in clear for display
	KeyPrefixLength = 8
)

// Issued is a newly created key. Key is never stored and cannot be
// recovered later.
type Issued struct {
	Key    string
	Record models.APIKey
}

// Keyring stores API keys by SHA-256 digest
type Keyring struct {
	db  *gorm.DB
	log *zap.Logger
	now func() time.Time
}

// NewKeyring creates a keyring on db
func NewKeyring(db *gorm.DB, log *zap.Logger) *Keyring {
	if log == nil {
		log = zap.NewNop()
	}
	return &Keyring{db: db, log: log, now: time.Now}
}

func newKey() (string, error) {
	raw := make([]byte, KeyLength)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

func digest(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// Issue creates a key for userID
func (k *Keyring) Issue(ctx context.Context, userID uint, description string) (*Issued, error) {
	key, err := newKey()
	if err != nil {
		return nil, errors.Wrap(err, "generate api key")
	}

	record := models.APIKey{
		UserID:      userID,
		KeyHash:     digest(key),
		KeyPrefix:   key[:KeyPrefixLength],
		Description: description,
	}
	if err := k.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, errors.Wrap(err, "store api key")
	}

	k.log.Info("api key issued", zap.Uint("user_id", userID), zap.String("key_prefix", record.KeyPrefix))
	return &Issued{Key: key, Record: record}, nil
}

// List returns the keys of userID, newest first
func (k *Keyring) List(ctx context.Context, userID uint) ([]models.APIKey, error) {
	keys := []models.APIKey{}
	if err := k.db.WithContext(ctx).Where("user_id = ?", userID).Order("id DESC").Find(&keys).Error; err != nil {
		return nil, errors.Wrap(err, "list api keys")
	}
	return keys, nil
}

// Revoke deletes key id if it belongs to userID
func (k *Keyring) Revoke(ctx context.Context, userID, id uint) error {
	result := k.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.APIKey{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "delete api key")
	}
	if result.RowsAffected == 0 {
		return &apperr.NotFoundError{Resource: "API key"}
	}
	return nil
}

// Lookup finds the record for a presented key
func (k *Keyring) Lookup(ctx context.Context, key string) (*models.APIKey, error) {
	var record models.APIKey
	err := k.db.WithContext(ctx).Where("key_hash = ?", digest(key)).First(&record).Error
	switch {
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		return nil, &apperr.AuthError{Message: "Invalid API key"}
	case err != nil:
		return nil, errors.Wrap(err, "look up api key")
	}
	return &record, nil
}

// Touch records that key id was just used
func (k *Keyring) Touch(ctx context.Context, id uint) error {
	return k.db.WithContext(ctx).Model(&models.APIKey{}).Where("id = ?", id).Update("last_used_at", k.now()).Error
}

// Authenticate resolves a presented key to its owner and records the use.
// A failed Touch is logged and does not reject the request.
func (k *Keyring) Authenticate(ctx context.Context, key string) (*models.User, error) {
	record, err := k.Lookup(ctx, key)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := k.db.WithContext(ctx).First(&user, record.UserID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.AuthError{Message: "User not found"}
		}
		return nil, errors.Wrap(err, "load api key owner")
	}

	if err := k.Touch(ctx, record.ID); err != nil {
		k.log.Warn("failed to record api key use", zap.Uint("api_key_id", record.ID), zap.Error(err))
	}
	return &user, nil
}
