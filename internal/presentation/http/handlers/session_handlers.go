package handlers

import (
	"net/http"

	"github.com/GhoshCoop/membergate-go/internal/application/services"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/logging"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// SessionHandlers contains the session lifecycle HTTP handlers
type SessionHandlers struct {
	sessions    *services.SessionService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewSessionHandlers creates session handlers with injected dependencies
func NewSessionHandlers(sessions *services.SessionService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *SessionHandlers {
	return &SessionHandlers{
		sessions:    sessions,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// GetSession handles GET /api/v1/session - returns this device's session or
// null. Never an error: an absent or unreadable session is simply null.
func (h *SessionHandlers) GetSession(c *gin.Context) {
	current := h.sessions.Current()
	if current == nil {
		c.JSON(http.StatusOK, gin.H{"session": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session":    current,
		"memberName": h.sessions.StoredMemberName(),
	})
}

// PostTouch handles POST /api/v1/session/touch - updates the session's last
// access time.
func (h *SessionHandlers) PostTouch(c *gin.Context) {
	if !h.sessions.Touch() {
		c.JSON(http.StatusOK, gin.H{"success": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PostLogout handles POST /api/v1/logout - removes this device's session and
// clears the remembered fingerprint.
func (h *SessionHandlers) PostLogout(c *gin.Context) {
	marker := h.perfTracker.StartOperation("logout_request")
	defer marker.Complete()

	success := h.sessions.Logout()
	marker.SetSuccess(success)
	c.JSON(http.StatusOK, gin.H{"success": success})
}
