package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/nazarshv/teamtrack/backend/internal/config"
	"github.com/nazarshv/teamtrack/backend/internal/middleware"
	"github.com/nazarshv/teamtrack/backend/internal/services"
	"github.com/nazarshv/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(db *gorm.DB, jwtCfg *config.JWTConfig) *AuthHandler {
	return &AuthHandler{
		authService: services.NewAuthService(db, jwtCfg),
	}
}

// Register creates a new user account
// POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{
		"message": "user registered successfully",
		"user_id": user.ID,
	})
}

// Login authenticates a user and returns a token
// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, resp)
}

// Me returns the authenticated user's profile
// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	response.Success(c, user)
}

// Refresh reissues a token for the authenticated user
// POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	user := middleware.CurrentUser(c)

	token, err := h.authService.Refresh(user)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"token": token})
}
