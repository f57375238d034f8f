package tasks

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendMailer implements EmailSender against the real Resend API
// (SPEC_FULL §10: "teacher ships resend-go/v2 unused by any retrieved
// source file... this repo gives it a home").
type ResendMailer struct {
	client *resend.Client
}

// NewResendMailer creates a mailer bound to a Resend API key.
func NewResendMailer(apiKey string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey)}
}

// Send sends a single HTML email, passing ctx to the Resend SDK's
// SendWithContext so the request honours the caller's cancellation.
func (m *ResendMailer) Send(ctx context.Context, fromEmail, toEmail, subject, html string) error {
	_, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    fromEmail,
		To:      []string{toEmail},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("resend send: %w", err)
	}
	return nil
}
