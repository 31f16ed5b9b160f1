package middleware

import (
	"net/http"

	"github.com/GhoshCoop/membergate-go/internal/application/services"
	"github.com/GhoshCoop/membergate-go/internal/domain/session"
	"github.com/gin-gonic/gin"
)

// VerifyPath is the only always-reachable route; the guard sends unverified
// devices here.
const VerifyPath = "/verify"

// sessionKey is the gin context key carrying the current session record.
const sessionKey = "currentSession"

// PageGuard gates page routes behind "does a session exist for this device".
// A hit updates the session's last access time as a side effect; a miss
// redirects to the verification page. There is no expiry check: a session
// stays valid until explicit logout.
func PageGuard(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := sessions.Current()
		if current == nil {
			c.Redirect(http.StatusFound, VerifyPath)
			c.Abort()
			return
		}

		sessions.Touch()
		c.Set(sessionKey, current)
		c.Next()
	}
}

// APIGuard is the JSON variant of PageGuard for API endpoints serving
// guarded pages: same check and touch, but a 401 instead of a redirect.
func APIGuard(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := sessions.Current()
		if current == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "verification required"})
			c.Abort()
			return
		}

		sessions.Touch()
		c.Set(sessionKey, current)
		c.Next()
	}
}

// CurrentSession returns the session record stored by the guard, if any.
func CurrentSession(c *gin.Context) (*session.MachineSession, bool) {
	value, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	record, ok := value.(*session.MachineSession)
	return record, ok
}
