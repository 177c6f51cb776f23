package redirect

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/shortmark/pkg/shortmark/apperr"
	"go.uber.org/zap"
)

// Handler handles redirect requests
type Handler struct {
	resolver *Resolver
	log      *zap.Logger
}

// NewHandler creates a new redirect handler
func NewHandler(resolver *Resolver, log *zap.Logger) *Handler {
	return &Handler{resolver: resolver, log: log}
}

// Redirect sends the visitor to the bookmark stored under the short code.
// No authentication; every successful redirect is counted.
// @Summary Follow a short URL
// @Tags redirect
// @Param short_url path string true "Three character short code"
// @Success 302
// @Failure 404 {string} string "Short URL not found"
// @Router /{short_url} [get]
func (h *Handler) Redirect(c *gin.Context) {
	code := c.Param("short_url")

	url, err := h.resolver.Resolve(c.Request.Context(), code)
	if err != nil {
		status := apperr.Status(err)
		if status >= http.StatusInternalServerError {
			_ = c.Error(err)
			h.log.Error("redirect failed", zap.String("short_url", code), zap.Error(err))
			c.String(status, "Internal server error")
			return
		}
		c.String(status, err.Error())
		return
	}

	c.Redirect(http.StatusFound, url)
}

// RegisterRoutes registers redirect routes on the root router.
// This should be called AFTER all other routes to avoid conflicts.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/:short_url", h.Redirect)
}
