package services

import (
	"regexp"
	"strings"
	"time"

	"github.com/GhoshCoop/membergate-go/internal/domain/messages"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/email"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/logging"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/performance"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/security"
)

const minMessageLength = 10

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^(\+91)?[6-9]\d{9}$`)
	phoneStrip   = strings.NewReplacer(" ", "", "-", "")
)

// ContactForm is one contact-form submission before validation.
type ContactForm struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// MessageService stores contact messages and notifies staff. The message log
// is append-only apart from status transitions.
type MessageService struct {
	messages    messages.Repository
	notifier    email.Service
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewMessageService creates a new message service
func NewMessageService(repo messages.Repository, notifier email.Service, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *MessageService {
	return &MessageService{
		messages:    repo,
		notifier:    notifier,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// MessageResult holds the outcome of saving a contact message
type MessageResult struct {
	Success     bool                    `json:"success"`
	Message     *messages.StoredMessage `json:"message,omitempty"`
	Error       string                  `json:"error,omitempty"`
	FieldErrors map[string]string       `json:"fieldErrors,omitempty"`
}

// ValidateForm checks each field and returns per-field inline errors.
func ValidateForm(form ContactForm) map[string]string {
	errs := make(map[string]string)

	if form.Email == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(form.Email) {
		errs["email"] = "Please enter a valid email address"
	}

	if form.Phone == "" {
		errs["phone"] = "Phone number is required"
	} else if !phonePattern.MatchString(phoneStrip.Replace(form.Phone)) {
		errs["phone"] = "Please enter a valid Indian phone number"
	}

	if form.Message == "" {
		errs["message"] = "Message is required"
	} else if len(strings.TrimSpace(form.Message)) < minMessageLength {
		errs["message"] = "Message must be at least 10 characters long"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Save validates the form, appends the message with status "received", and
// notifies staff. A notification failure is logged but never fails the save.
func (s *MessageService) Save(form ContactForm) *MessageResult {
	marker := s.perfTracker.StartOperation("messages:save")
	defer marker.Complete()

	if fieldErrors := ValidateForm(form); fieldErrors != nil {
		marker.SetSuccess(false)
		return &MessageResult{Success: false, FieldErrors: fieldErrors}
	}

	stored := messages.StoredMessage{
		ID:        security.GenerateMessageID(),
		Email:     form.Email,
		Phone:     form.Phone,
		Message:   form.Message,
		Timestamp: time.Now().UTC(),
		Status:    messages.StatusReceived,
	}

	if err := s.messages.Append(stored); err != nil {
		s.logger.Messages().Error("Failed to save message", "error", err.Error())
		marker.SetError(err)
		return &MessageResult{Success: false, Error: "Failed to save message"}
	}

	if err := s.notifier.SendMessageNotification(stored.ID, stored.Email, stored.Phone, stored.Message); err != nil {
		s.logger.Messages().Warn("Failed to send message notification", "messageId", stored.ID, "error", err.Error())
	}

	s.logger.Messages().Info("Contact message stored", "messageId", stored.ID)
	return &MessageResult{Success: true, Message: &stored}
}

// All returns every stored message.
func (s *MessageService) All() ([]messages.StoredMessage, error) {
	return s.messages.All()
}

// Count returns the number of stored messages.
func (s *MessageService) Count() (int, error) {
	all, err := s.messages.All()
	if err != nil {
		return 0, err
	}
	return len(all), nil
}

// GetByID returns the message with the given id, or nil.
func (s *MessageService) GetByID(id string) (*messages.StoredMessage, error) {
	return s.messages.FindByID(id)
}

// UpdateStatus transitions a message to received, read, or responded.
func (s *MessageService) UpdateStatus(id string, status messages.Status) *MessageResult {
	if !status.Valid() {
		return &MessageResult{Success: false, Error: "Unknown message status"}
	}

	updated, err := s.messages.UpdateStatus(id, status)
	if err != nil {
		s.logger.Messages().Error("Failed to update message status", "messageId", id, "error", err.Error())
		return &MessageResult{Success: false, Error: "Failed to update message"}
	}
	if !updated {
		return &MessageResult{Success: false, Error: "Message not found"}
	}
	return &MessageResult{Success: true}
}
