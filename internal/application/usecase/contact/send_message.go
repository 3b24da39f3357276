package contact

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/domain/contact"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
	"github.com/khoahotran/portfolio/pkg/metrics"
)

var tracer = otel.Tracer("contact_usecase")

type SendMessageUseCase struct {
	mailer    service.Mailer
	sender    string
	recipient string
	logger    logger.Logger
}

// NewSendMessageUseCase accepts a nil mailer; every call then fails as misconfigured.
func NewSendMessageUseCase(mailer service.Mailer, sender, recipient string, log logger.Logger) *SendMessageUseCase {
	return &SendMessageUseCase{
		mailer:    mailer,
		sender:    sender,
		recipient: recipient,
		logger:    log,
	}
}

type SendMessageOutput struct {
	ID string
}

// EnsureConfigured runs before the request body is looked at.
func (uc *SendMessageUseCase) EnsureConfigured() error {
	if uc.mailer == nil || uc.recipient == "" {
		uc.logger.Error("Contact form is missing mail provider credentials or recipient", nil)
		metrics.ContactMessages.WithLabelValues("misconfigured").Inc()
		return apperror.NewMisconfigured("Contact form not configured", "mailer or CONTACT_EMAIL unset")
	}
	return nil
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, input contact.Message) (*SendMessageOutput, error) {
	ctx, span := tracer.Start(ctx, "SendMessage")
	defer span.End()

	if err := uc.EnsureConfigured(); err != nil {
		return nil, err
	}

	msg, err := input.Normalize()
	if err != nil {
		metrics.ContactMessages.WithLabelValues("invalid").Inc()
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	id, err := uc.mailer.Send(ctx, contact.Compose(msg, uc.sender, uc.recipient))
	if err != nil {
		span.RecordError(err)
		metrics.ContactMessages.WithLabelValues("failed").Inc()

		var providerErr *service.ProviderError
		if errors.As(err, &providerErr) {
			uc.logger.Error("Mail provider rejected contact message", err)
			return nil, apperror.NewUpstream(providerErr.Message, "Failed to send email", err)
		}
		uc.logger.Error("Contact send error", err)
		return nil, apperror.NewUpstream("", "Failed to send message", err)
	}

	span.SetAttributes(attribute.String("message_id", id))
	metrics.ContactMessages.WithLabelValues("sent").Inc()
	uc.logger.Info("Contact message relayed", zap.String("message_id", id))
	return &SendMessageOutput{ID: id}, nil
}
