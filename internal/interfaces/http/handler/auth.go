package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/cafemenu/backend/internal/application/identity"
	"github.com/cafemenu/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles admin authentication endpoints
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates an admin and returns a session token
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Me returns the authenticated admin's profile
func (h *AuthHandler) Me(c *gin.Context) {
	adminID, err := getAdminID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	admin, err := h.authService.Me(c.Request.Context(), adminID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, admin)
}

// ChangePassword replaces the authenticated admin's password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	adminID, err := getAdminID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), adminID, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
