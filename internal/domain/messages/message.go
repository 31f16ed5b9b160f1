// Package messages defines stored contact-form submissions and their
// repository interface. The message log is append-only apart from status
// updates.
package messages

import "time"

// Status tracks how far staff have taken a message.
type Status string

const (
	StatusReceived  Status = "received"
	StatusRead      Status = "read"
	StatusResponded Status = "responded"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusReceived, StatusRead, StatusResponded:
		return true
	}
	return false
}

// StoredMessage is one contact-form submission.
type StoredMessage struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Status    Status    `json:"status"`
}

// Repository defines the operations for persisting stored messages.
type Repository interface {
	All() ([]StoredMessage, error)
	FindByID(id string) (*StoredMessage, error)
	Append(m StoredMessage) error
	// UpdateStatus sets the status on the matching message. Returns false
	// when no message matches the id.
	UpdateStatus(id string, status Status) (bool, error)
}
