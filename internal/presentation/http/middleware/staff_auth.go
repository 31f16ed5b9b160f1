package middleware

import (
	"net/http"
	"strings"

	"github.com/GhoshCoop/membergate-go/internal/application/services"
	"github.com/gin-gonic/gin"
)

// StaffAuthCookie is the HTTP-only cookie carrying the staff token.
const StaffAuthCookie = "staff_auth"

// StaffAuth guards the message-admin endpoints behind a valid staff JWT,
// accepted from either the auth cookie or a bearer header.
func StaffAuth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""

		if cookie, err := c.Cookie(StaffAuthCookie); err == nil {
			token = cookie
		} else if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimPrefix(header, "Bearer ")
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		claims, ok := auth.ValidateToken(token)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("staffRole", claims["role"])
		c.Next()
	}
}
