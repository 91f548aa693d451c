// Package mailer sends transactional email. A mock sender that only logs is
// used in development and wherever no API key is configured.
package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"golang.org/x/exp/slog"
)

// Sender sends a plain-text email
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SendgridSender sends email through SendGrid
type SendgridSender struct {
	client      *sendgrid.Client
	fromName    string
	fromAddress string
}

// NewSendgridSender creates a new SendgridSender
func NewSendgridSender(apiKey, fromName, fromAddress string) *SendgridSender {
	return &SendgridSender{
		client:      sendgrid.NewSendClient(apiKey),
		fromName:    fromName,
		fromAddress: fromAddress,
	}
}

// Send sends a plain-text email through SendGrid
func (s *SendgridSender) Send(ctx context.Context, to, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromAddress)
	message := mail.NewSingleEmailPlainText(from, subject, mail.NewEmail("", to), body)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// MockSender logs email instead of sending it
type MockSender struct{}

// Send logs the email
func (MockSender) Send(ctx context.Context, to, subject, body string) error {
	slog.Info("mock email", "to", to, "subject", subject, "body", body)
	return nil
}
