package apikeys

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/shortmark/pkg/shortmark/apperr"
	"github.com/mikepea/shortmark/pkg/shortmark/auth"
	"go.uber.org/zap"
)

// CombinedAuthMiddleware accepts either a JWT or an API key as the bearer
// token. JWTs always contain dots and hex keys never do.
func CombinedAuthMiddleware(keys *Keyring, tokens *auth.Tokens, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, message, ok := auth.BearerToken(c)
		if !ok {
			apperr.Abort(c, message)
			return
		}

		if strings.Contains(token, ".") {
			if auth.SetFromJWT(c, tokens, token) {
				c.Next()
			}
			return
		}

		user, err := keys.Authenticate(c.Request.Context(), token)
		if err != nil {
			if apperr.Status(err) != http.StatusUnauthorized {
				log.Error("api key authentication failed", zap.Error(err))
				err = &apperr.AuthError{Message: "Invalid API key"}
			}
			apperr.Abort(c, err.Error())
			return
		}

		c.Set(auth.ContextKeyUserID, user.ID)
		c.Set(auth.ContextKeyUsername, user.Username)
		c.Set(auth.ContextKeyAuthMethod, auth.AuthMethodAPIKey)
		c.Next()
	}
}
