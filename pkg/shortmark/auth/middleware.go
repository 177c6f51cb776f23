package auth

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/shortmark/pkg/shortmark/apperr"
)

const (
	// ContextKeyUserID is the key for user ID in gin context
	ContextKeyUserID = "user_id"
	// ContextKeyUsername is the key for username in gin context
	ContextKeyUsername = "username"
	// ContextKeyAuthMethod records whether the caller used a JWT or an API key
	ContextKeyAuthMethod = "auth_method"

	AuthMethodJWT    = "jwt"
	AuthMethodAPIKey = "api_key"
)

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The message describes what was wrong when ok is false.
func BearerToken(c *gin.Context) (token string, message string, ok bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", "Authorization header required", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", "Invalid authorization header format", false
	}
	return parts[1], "", true
}

// AuthMiddleware validates JWT tokens and sets user info in context
func AuthMiddleware(tokens *Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, message, ok := BearerToken(c)
		if !ok {
			apperr.Abort(c, message)
			return
		}

		if !SetFromJWT(c, tokens, tokenString) {
			return
		}
		c.Next()
	}
}

// SetFromJWT validates tokenString and stores the identity in c. On
// failure it aborts with 401 and returns false.
func SetFromJWT(c *gin.Context, tokens *Tokens, tokenString string) bool {
	claims, err := tokens.Validate(tokenString)
	if err != nil {
		if errors.Is(err, ErrExpiredToken) {
			apperr.Abort(c, "Token has expired")
		} else {
			apperr.Abort(c, "Invalid token")
		}
		return false
	}

	c.Set(ContextKeyUserID, claims.UserID)
	c.Set(ContextKeyUsername, claims.Username)
	c.Set(ContextKeyAuthMethod, AuthMethodJWT)
	return true
}

// GetUserID returns the user ID from the gin context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// GetUsername returns the username from the gin context
func GetUsername(c *gin.Context) (string, bool) {
	username, exists := c.Get(ContextKeyUsername)
	if !exists {
		return "", false
	}
	name, ok := username.(string)
	return name, ok
}
