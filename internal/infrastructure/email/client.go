// Package email provides the email client for staff notifications.
package email

import (
	"fmt"
	"html"

	"github.com/GhoshCoop/membergate-go/pkg/config"
	"github.com/resendlabs/resend-go"
)

// Service defines the interface for sending notification emails, allowing for
// mock implementations in tests.
type Service interface {
	SendMessageNotification(messageID, fromEmail, fromPhone, body string) error
}

// ResendClient is the concrete implementation of the email Service using the
// Resend API.
type ResendClient struct {
	client    *resend.Client
	toEmail   string
	fromEmail string
	fromName  string
}

// NewService creates a new email service client, returning the Service
// interface. Returns an error when no API key or recipient is configured; the
// caller is expected to fall back to the no-op service.
func NewService() (Service, error) {
	if config.ResendAPIKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY is not configured")
	}
	if config.MessageEmailTo == "" {
		return nil, fmt.Errorf("MESSAGE_EMAIL_TO is not configured")
	}

	return &ResendClient{
		client:    resend.NewClient(config.ResendAPIKey),
		toEmail:   config.MessageEmailTo,
		fromEmail: config.MessageEmailFrom,
		fromName:  config.MessageEmailName,
	}, nil
}

// SendMessageNotification tells staff a new contact message arrived.
func (c *ResendClient) SendMessageNotification(messageID, fromEmail, fromPhone, body string) error {
	htmlContent := fmt.Sprintf(
		`<h2>New contact message</h2>
<p><strong>Message ID:</strong> %s</p>
<p><strong>From:</strong> %s (%s)</p>
<blockquote>%s</blockquote>`,
		html.EscapeString(messageID),
		html.EscapeString(fromEmail),
		html.EscapeString(fromPhone),
		html.EscapeString(body),
	)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:      []string{c.toEmail},
		Subject: "New contact message received",
		Html:    htmlContent,
	}

	_, err := c.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send message notification: %w", err)
	}
	return nil
}

// NoopService satisfies Service when notifications are disabled or
// unconfigured.
type NoopService struct{}

// SendMessageNotification does nothing.
func (NoopService) SendMessageNotification(messageID, fromEmail, fromPhone, body string) error {
	return nil
}
