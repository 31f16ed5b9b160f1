package handlers

import (
	"net/http"

	"github.com/GhoshCoop/membergate-go/internal/application/services"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/logging"
	"github.com/GhoshCoop/membergate-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandlers contains the staff authentication HTTP handlers
type AuthHandlers struct {
	auth   *services.AuthService
	logger *logging.ChanneledLogger
}

// NewAuthHandlers creates auth handlers with injected dependencies
func NewAuthHandlers(auth *services.AuthService, logger *logging.ChanneledLogger) *AuthHandlers {
	return &AuthHandlers{auth: auth, logger: logger}
}

// PostLogin handles POST /api/v1/auth/login - staff password in, JWT cookie
// out.
func (h *AuthHandlers) PostLogin(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password is required"})
		return
	}

	result := h.auth.Authenticate(req.Password)
	if !result.Success {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": result.Error})
		return
	}

	// 24h to match the token's own expiry
	c.SetCookie(middleware.StaffAuthCookie, result.Token, 24*60*60, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "role": result.Role, "token": result.Token})
}

// PostLogoutStaff handles POST /api/v1/auth/logout - clears the staff cookie.
func (h *AuthHandlers) PostLogoutStaff(c *gin.Context) {
	c.SetCookie(middleware.StaffAuthCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
