package auth

import (
	"context"
	stderrors "errors"

	"github.com/mikepea/shortmark/pkg/shortmark/apperr"
	"github.com/mikepea/shortmark/pkg/shortmark/models"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	msgAccountTaken   = "Username or email already registered"
	msgBadCredentials = "Invalid email or password"
)

// Session is a signed-in user together with the token that identifies them
type Session struct {
	Token string
	User  models.User
}

// Users owns account records and issues tokens for them
type Users struct {
	db     *gorm.DB
	tokens *Tokens
	log    *zap.Logger
}

// NewUsers creates the account service
func NewUsers(db *gorm.DB, tokens *Tokens, log *zap.Logger) *Users {
	if log == nil {
		log = zap.NewNop()
	}
	return &Users{db: db, tokens: tokens, log: log}
}

// Register creates an account and signs it in. Username and email are both
// unique; a clash with either is a ConflictError.
func (u *Users) Register(ctx context.Context, username, email, password string) (*Session, error) {
	db := u.db.WithContext(ctx)

	var clashes int64
	err := db.Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&clashes).Error
	if err != nil {
		return nil, errors.Wrap(err, "check existing account")
	}
	if clashes > 0 {
		return nil, &apperr.ConflictError{Message: msgAccountTaken}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	user := models.User{Username: username, Email: email, PasswordHash: hash}
	if err := db.Create(&user).Error; err != nil {
		// lost a race with a concurrent registration
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &apperr.ConflictError{Message: msgAccountTaken}
		}
		return nil, errors.Wrap(err, "create account")
	}

	u.log.Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return u.session(user)
}

// Authenticate checks an email and password pair. Unknown email and wrong
// password are indistinguishable to the caller.
func (u *Users) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	var user models.User
	err := u.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	switch {
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		return nil, &apperr.AuthError{Message: msgBadCredentials}
	case err != nil:
		return nil, errors.Wrap(err, "load account")
	}

	if !CheckPassword(password, user.PasswordHash) {
		u.log.Debug("password mismatch", zap.Uint("user_id", user.ID))
		return nil, &apperr.AuthError{Message: msgBadCredentials}
	}
	return u.session(user)
}

// Find loads the account with id
func (u *Users) Find(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Resource: "User"}
		}
		return nil, errors.Wrap(err, "load account")
	}
	return &user, nil
}

func (u *Users) session(user models.User) (*Session, error) {
	token, err := u.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return nil, errors.Wrap(err, "sign token")
	}
	return &Session{Token: token, User: user}, nil
}
