package handlers

import (
	"net/http"

	"github.com/GhoshCoop/membergate-go/internal/application/services"
	"github.com/GhoshCoop/membergate-go/internal/domain/messages"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/logging"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// MessageHandlers contains the contact-message HTTP handlers
type MessageHandlers struct {
	messages    *services.MessageService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewMessageHandlers creates message handlers with injected dependencies
func NewMessageHandlers(messageService *services.MessageService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *MessageHandlers {
	return &MessageHandlers{
		messages:    messageService,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// PostMessage handles POST /api/v1/messages - the public contact form.
func (h *MessageHandlers) PostMessage(c *gin.Context) {
	var form services.ContactForm
	if err := c.ShouldBindJSON(&form); err != nil {
		h.logger.Messages().Error("Message request JSON binding failed", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result := h.messages.Save(form)
	if !result.Success {
		if result.FieldErrors != nil {
			c.JSON(http.StatusUnprocessableEntity, result)
			return
		}
		c.JSON(http.StatusInternalServerError, result)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetMessages handles GET /api/v1/admin/messages - staff only.
func (h *MessageHandlers) GetMessages(c *gin.Context) {
	all, err := h.messages.All()
	if err != nil {
		h.logger.Messages().Error("Failed to list messages", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": all, "count": len(all)})
}

// GetMessage handles GET /api/v1/admin/messages/:id - staff only.
func (h *MessageHandlers) GetMessage(c *gin.Context) {
	msg, err := h.messages.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load message"})
		return
	}
	if msg == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// PutMessageStatus handles PUT /api/v1/admin/messages/:id/status - staff only.
func (h *MessageHandlers) PutMessageStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result := h.messages.UpdateStatus(c.Param("id"), messages.Status(req.Status))
	if !result.Success {
		if result.Error == "Message not found" {
			c.JSON(http.StatusNotFound, result)
			return
		}
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	c.JSON(http.StatusOK, result)
}
