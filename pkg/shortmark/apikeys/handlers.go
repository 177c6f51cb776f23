package apikeys

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/shortmark/pkg/shortmark/apperr"
	"github.com/mikepea/shortmark/pkg/shortmark/auth"
	"github.com/mikepea/shortmark/pkg/shortmark/models"
	"go.uber.org/zap"
)

// Handler serves key management for the signed-in user
type Handler struct {
	keys *Keyring
	log  *zap.Logger
}

// NewHandler creates a new API keys handler
func NewHandler(keys *Keyring, log *zap.Logger) *Handler {
	return &Handler{keys: keys, log: log}
}

// APIKeyResponse describes a stored key without its secret
type APIKeyResponse struct {
	ID          uint       `json:"id"`
	KeyPrefix   string     `json:"key_prefix"`
	Description string     `json:"description"`
	LastUsedAt  *time.Time `json:"last_used_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

type CreateAPIKeyRequest struct {
	Description string `json:"description" binding:"max=255"`
}

// CreateAPIKeyResponse is APIKeyResponse plus the key itself
type CreateAPIKeyResponse struct {
	APIKeyResponse
	Key string `json:"key"`
}

func newAPIKeyResponse(k models.APIKey) APIKeyResponse {
	return APIKeyResponse{
		ID:          k.ID,
		KeyPrefix:   k.KeyPrefix,
		Description: k.Description,
		LastUsedAt:  k.LastUsedAt,
		CreatedAt:   k.CreatedAt,
	}
}

// Create issues a key for the caller
// @Summary Create an API key
// @Description The full key is only returned by this call.
// @Tags api-keys
// @Accept json
// @Produce json
// @Param request body CreateAPIKeyRequest false "Key details"
// @Success 201 {object} CreateAPIKeyResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Authentication required"
// @Security BearerAuth
// @Router /api-keys [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateAPIKeyRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	issued, err := h.keys.Issue(c.Request.Context(), userID, req.Description)
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, CreateAPIKeyResponse{
		APIKeyResponse: newAPIKeyResponse(issued.Record),
		Key:            issued.Key,
	})
}

// List returns the caller's keys
// @Summary List API keys
// @Tags api-keys
// @Produce json
// @Success 200 {array} APIKeyResponse
// @Security BearerAuth
// @Router /api-keys [get]
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	keys, err := h.keys.List(c.Request.Context(), userID)
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}

	out := make([]APIKeyResponse, 0, len(keys))
	for _, k := range keys {
		out = append(out, newAPIKeyResponse(k))
	}
	c.JSON(http.StatusOK, out)
}

// Delete revokes one of the caller's keys
// @Summary Delete an API key
// @Tags api-keys
// @Param id path int true "API key ID"
// @Success 204
// @Failure 400 {object} map[string]string "Invalid API key ID"
// @Failure 404 {object} map[string]string "API key not found"
// @Security BearerAuth
// @Router /api-keys/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid API key ID"})
		return
	}

	if err := h.keys.Revoke(c.Request.Context(), userID, uint(id)); err != nil {
		apperr.Respond(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RegisterRoutes mounts key management on rg, which must require a JWT
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	keys := rg.Group("/api-keys")
	keys.POST("", h.Create)
	keys.GET("", h.List)
	keys.DELETE("/:id", h.Delete)
}
