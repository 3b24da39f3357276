package service

import (
	"context"

	"github.com/khoahotran/portfolio/internal/domain/contact"
)

// Mailer delivers a composed email and returns the provider message id.
type Mailer interface {
	Send(ctx context.Context, email contact.Email) (string, error)
}

// ProviderError is returned by mailers when the provider rejected the message.
// Its Message is safe to show to the sender.
type ProviderError struct {
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error { return e.Err }
