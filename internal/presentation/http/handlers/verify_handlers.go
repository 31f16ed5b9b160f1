// Package handlers provides HTTP request handlers for the presentation layer.
package handlers

import (
	"net/http"
	"time"

	"github.com/GhoshCoop/membergate-go/internal/application/services"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/logging"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/performance"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/security"
	"github.com/gin-gonic/gin"
)

// VerifyHandlers contains the member verification HTTP handlers
type VerifyHandlers struct {
	verification *services.VerificationService
	sessions     *services.SessionService
	logger       *logging.ChanneledLogger
	perfTracker  *performance.Tracker
}

// NewVerifyHandlers creates verify handlers with injected dependencies
func NewVerifyHandlers(verification *services.VerificationService, sessions *services.SessionService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *VerifyHandlers {
	return &VerifyHandlers{
		verification: verification,
		sessions:     sessions,
		logger:       logger,
		perfTracker:  perfTracker,
	}
}

// PostVerify handles POST /api/v1/verify - checks member credentials and, on
// success, creates this device's session.
func (h *VerifyHandlers) PostVerify(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("verify_request")
	defer marker.Complete()

	var req struct {
		FullName string                 `json:"fullName" binding:"required"`
		Code     string                 `json:"code" binding:"required"`
		Client   security.ClientProfile `json:"client"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Auth().Error("Verify request JSON binding failed", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result := h.verification.Verify(req.FullName, req.Code)
	if !result.Success {
		marker.SetSuccess(false)
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": result.Message})
		return
	}

	sessionResult := h.sessions.Create(result.Member, req.Client, c.ClientIP())
	if !sessionResult.Success {
		marker.SetSuccess(false)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": sessionResult.Error})
		return
	}

	h.logger.Auth().Info("Device verified", "memberId", result.Member.ID, "duration", time.Since(start))
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    result.Message,
		"memberName": result.Member.FullName,
		"session":    sessionResult.Session,
	})
}

// GetMemberNames handles GET /api/v1/verify/names - member names for the
// verification page's autocomplete.
func (h *VerifyHandlers) GetMemberNames(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"names": h.verification.MemberNames()})
}
