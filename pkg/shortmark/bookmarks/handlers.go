package bookmarks

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/shortmark/pkg/shortmark/apperr"
	"github.com/mikepea/shortmark/pkg/shortmark/auth"
	"github.com/mikepea/shortmark/pkg/shortmark/models"
	"go.uber.org/zap"
)

// Handler handles bookmark requests
type Handler struct {
	store   *Store
	baseURL string
	log     *zap.Logger
}

// NewHandler creates a new bookmarks handler. baseURL is the public origin
// short links are built on; empty leaves short_link out of responses.
func NewHandler(store *Store, baseURL string, log *zap.Logger) *Handler {
	return &Handler{store: store, baseURL: strings.TrimRight(baseURL, "/"), log: log}
}

// BookmarkRequest is the body for creating or editing a bookmark. URL
// format is checked by the store so every entry point shares one message.
type BookmarkRequest struct {
	URL  string `json:"url"`
	Body string `json:"body"`
}

// BookmarkResponse represents a bookmark in API responses
type BookmarkResponse struct {
	ID        uint   `json:"id"`
	URL       string `json:"url"`
	ShortURL  string `json:"short_url"`
	ShortLink string `json:"short_link,omitempty"`
	Visits    uint   `json:"visits"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ListResponse is one page of bookmarks
type ListResponse struct {
	Data []BookmarkResponse `json:"data"`
	Meta Meta               `json:"meta"`
}

// StatsResponse lists visit counts
type StatsResponse struct {
	Data []Stat `json:"data"`
}

func (h *Handler) bookmarkToResponse(b models.Bookmark) BookmarkResponse {
	resp := BookmarkResponse{
		ID:        b.ID,
		URL:       b.URL,
		ShortURL:  b.ShortURL,
		Visits:    b.Visits,
		Body:      b.Body,
		CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: b.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if h.baseURL != "" {
		resp.ShortLink = h.baseURL + "/" + b.ShortURL
	}
	return resp
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bookmark ID"})
		return 0, false
	}
	return uint(id), true
}

// queryInt reads a positive integer query parameter. Missing or malformed
// values yield 0 so the store applies its default.
func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}

// Create creates a new bookmark
// @Summary Create a bookmark
// @Description Save a URL and assign it a random three character short code
// @Tags bookmarks
// @Accept json
// @Produce json
// @Param request body BookmarkRequest true "Bookmark details"
// @Success 201 {object} BookmarkResponse
// @Failure 400 {object} map[string]string "Enter a valid url"
// @Failure 409 {object} map[string]string "URL already exists"
// @Failure 503 {object} map[string]string "No free short code"
// @Security BearerAuth
// @Router /bookmarks [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req BookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bookmark, err := h.store.Create(c.Request.Context(), userID, req.URL, req.Body)
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, h.bookmarkToResponse(*bookmark))
}

// List returns a page of the caller's bookmarks
// @Summary List bookmarks
// @Description Get the caller's bookmarks ordered by id, one page at a time
// @Tags bookmarks
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param per_page query int false "Page size (default 5, max 100)"
// @Success 200 {object} ListResponse
// @Security BearerAuth
// @Router /bookmarks [get]
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	page, err := h.store.List(c.Request.Context(), userID, queryInt(c, "page"), queryInt(c, "per_page"))
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}

	data := make([]BookmarkResponse, len(page.Data))
	for i, b := range page.Data {
		data[i] = h.bookmarkToResponse(b)
	}

	c.JSON(http.StatusOK, ListResponse{Data: data, Meta: page.Meta})
}

// Get returns a single bookmark
// @Summary Get a bookmark
// @Tags bookmarks
// @Produce json
// @Param id path int true "Bookmark ID"
// @Success 200 {object} BookmarkResponse
// @Failure 404 {object} map[string]string "Bookmark not found"
// @Security BearerAuth
// @Router /bookmarks/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	bookmark, err := h.store.Get(c.Request.Context(), userID, id)
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, h.bookmarkToResponse(*bookmark))
}

// Edit replaces a bookmark's url and body
// @Summary Edit a bookmark
// @Description Replace url and body. The short code and visit count are kept.
// @Tags bookmarks
// @Accept json
// @Produce json
// @Param id path int true "Bookmark ID"
// @Param request body BookmarkRequest true "Updated bookmark"
// @Success 200 {object} BookmarkResponse
// @Failure 400 {object} map[string]string "Enter a valid url"
// @Failure 404 {object} map[string]string "Bookmark not found"
// @Security BearerAuth
// @Router /bookmarks/{id} [put]
func (h *Handler) Edit(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req BookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bookmark, err := h.store.Edit(c.Request.Context(), userID, id, req.URL, req.Body)
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, h.bookmarkToResponse(*bookmark))
}

// Delete removes a bookmark
// @Summary Delete a bookmark
// @Tags bookmarks
// @Param id path int true "Bookmark ID"
// @Success 204
// @Failure 404 {object} map[string]string "Bookmark not found"
// @Security BearerAuth
// @Router /bookmarks/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.store.Delete(c.Request.Context(), userID, id); err != nil {
		apperr.Respond(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Stats returns visit counts for the caller's bookmarks
// @Summary Bookmark visit stats
// @Tags bookmarks
// @Produce json
// @Success 200 {object} StatsResponse
// @Security BearerAuth
// @Router /bookmarks/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	stats, err := h.store.Stats(c.Request.Context(), userID)
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, StatsResponse{Data: stats})
}

// RegisterRoutes registers bookmark routes on rg, which should already
// carry the authentication middleware
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	bookmarks := rg.Group("/bookmarks")
	for _, path := range []string{"", "/"} {
		bookmarks.GET(path, h.List)
		bookmarks.POST(path, h.Create)
	}
	bookmarks.GET("/stats", h.Stats)
	bookmarks.GET("/:id", h.Get)
	bookmarks.PUT("/:id", h.Edit)
	bookmarks.PATCH("/:id", h.Edit)
	bookmarks.DELETE("/:id", h.Delete)
}
