package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/shortmark/pkg/shortmark/apperr"
	"github.com/mikepea/shortmark/pkg/shortmark/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler serves the account endpoints
type Handler struct {
	users  *Users
	tokens *Tokens
	log    *zap.Logger
}

// NewHandler creates a new auth handler
func NewHandler(db *gorm.DB, tokens *Tokens, log *zap.Logger) *Handler {
	return &Handler{users: NewUsers(db, tokens, log), tokens: tokens, log: log}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=1,max=80"`
	Email    string `json:"email" binding:"required,email,max=120"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries a fresh token and the account it belongs to
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse is the public view of an account
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func newUserResponse(u models.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}

func newAuthResponse(s *Session) AuthResponse {
	return AuthResponse{Token: s.Token, User: newUserResponse(s.User)}
}

// Register creates an account
// @Summary Register a new user
// @Description Create an account and receive a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration details"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 409 {object} map[string]string "Username or email already registered"
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, newAuthResponse(session))
}

// Login exchanges credentials for a JWT
// @Summary Login
// @Description Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Invalid email or password"
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, newAuthResponse(session))
}

// Me returns the caller's account
// @Summary Get current user
// @Tags auth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} map[string]string "Authentication required"
// @Security BearerAuth
// @Router /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		apperr.Abort(c, "Authentication required")
		return
	}

	user, err := h.users.Find(c.Request.Context(), userID)
	if err != nil {
		apperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(*user))
}

// Logout is a no-op on the server; clients drop their token.
// @Summary Logout
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// RegisterRoutes mounts the account endpoints on rg
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)
	rg.POST("/logout", h.Logout)
	rg.GET("/me", AuthMiddleware(h.tokens), h.Me)
}
