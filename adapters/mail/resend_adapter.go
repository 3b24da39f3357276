package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/domain/contact"
)

type resendMailer struct {
	client *resend.Client
}

// NewResendMailer returns nil when no API key is configured so the contact
// use case reports itself as not configured.
func NewResendMailer(apiKey string) service.Mailer {
	if apiKey == "" {
		return nil
	}
	return &resendMailer{client: resend.NewClient(apiKey)}
}

func (m *resendMailer) Send(ctx context.Context, email contact.Email) (string, error) {
	sent, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    email.From,
		To:      []string{email.To},
		ReplyTo: email.ReplyTo,
		Subject: email.Subject,
		Text:    email.Text,
		Html:    email.HTML,
	})
	if err != nil {
		return "", &service.ProviderError{Message: err.Error(), Err: fmt.Errorf("resend send: %w", err)}
	}
	return sent.Id, nil
}
