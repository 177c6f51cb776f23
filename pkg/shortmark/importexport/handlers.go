package importexport

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/shortmark/pkg/shortmark/apperr"
	"github.com/mikepea/shortmark/pkg/shortmark/auth"
	"github.com/mikepea/shortmark/pkg/shortmark/bookmarks"
	"go.uber.org/zap"
)

// Handler serves bookmark import and export
type Handler struct {
	store    *bookmarks.Store
	importer *Importer
	log      *zap.Logger
}

// NewHandler creates a new import/export handler
func NewHandler(store *bookmarks.Store, log *zap.Logger) *Handler {
	return &Handler{store: store, importer: NewImporter(store, log), log: log}
}

type ImportRequest struct {
	Bookmarks []Pin `json:"bookmarks" binding:"required"`
}

// Import loads a Pinboard export
// @Summary Import bookmarks
// @Description Import Pinboard JSON. Invalid or already stored URLs are skipped and reported.
// @Tags import-export
// @Accept json
// @Produce json
// @Param request body ImportRequest true "Pinboard bookmarks"
// @Success 200 {object} ImportResult
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /bookmarks/import [post]
func (h *Handler) Import(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.importer.Import(c.Request.Context(), userID, req.Bookmarks)
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Export writes the caller's bookmarks as Pinboard JSON
// @Summary Export bookmarks
// @Tags import-export
// @Produce json
// @Success 200 {array} Pin
// @Security BearerAuth
// @Router /bookmarks/export [get]
func (h *Handler) Export(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	all, err := h.store.All(c.Request.Context(), userID)
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}

	pins := make([]Pin, 0, len(all))
	for _, b := range all {
		pins = append(pins, PinFromBookmark(b))
	}
	c.JSON(http.StatusOK, pins)
}

// RegisterRoutes mounts import and export under /bookmarks
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookmarks/import", h.Import)
	rg.GET("/bookmarks/export", h.Export)
}
