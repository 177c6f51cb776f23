package apperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Respond writes err as a JSON error body with the matching status code.
// Internal errors are logged and replaced with a generic message.
func Respond(c *gin.Context, log *zap.Logger, err error) {
	status := Status(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		if log != nil {
			log.Error("request failed",
				zap.String("path", c.FullPath()),
				zap.Error(err))
		}
		if status == http.StatusInternalServerError {
			c.JSON(status, gin.H{"error": "Internal server error"})
			return
		}
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// Abort responds with an AuthError and stops the handler chain
func Abort(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": (&AuthError{Message: message}).Error()})
}
