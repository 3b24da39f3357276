package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/domain/portfolio"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
	"github.com/khoahotran/portfolio/pkg/metrics"
)

const contentTypeJSON = "application/json"

var tracer = otel.Tracer("portfolio_usecase")

type PortfolioUseCase struct {
	store     service.BlobStore
	publisher service.EventPublisher
	path      string
	logger    logger.Logger
}

func NewPortfolioUseCase(store service.BlobStore, publisher service.EventPublisher, path string, log logger.Logger) *PortfolioUseCase {
	if publisher == nil {
		publisher = service.NoopPublisher{}
	}
	return &PortfolioUseCase{
		store:     store,
		publisher: publisher,
		path:      path,
		logger:    log,
	}
}

// ExecuteGet returns the stored document bytes exactly as they were written.
func (uc *PortfolioUseCase) ExecuteGet(ctx context.Context) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "GetPortfolio")
	defer span.End()

	data, err := uc.store.Get(ctx, uc.path)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("portfolio", uc.path)
		}
		span.RecordError(err)
		uc.logger.Error("Portfolio GET error", err, zap.String("path", uc.path))
		return nil, apperror.NewInternal("Failed to load portfolio", err)
	}
	return data, nil
}

// ExecuteSave overwrites the stored document. The body must be a JSON object; its fields are not checked.
func (uc *PortfolioUseCase) ExecuteSave(ctx context.Context, body []byte) error {
	ctx, span := tracer.Start(ctx, "SavePortfolio")
	defer span.End()
	span.SetAttributes(attribute.Int("body_bytes", len(body)))

	if !portfolio.IsObject(body) {
		metrics.PortfolioWrites.WithLabelValues("invalid").Inc()
		return apperror.NewInvalidInput("Invalid JSON body", nil)
	}

	if err := uc.store.Put(ctx, uc.path, body, contentTypeJSON); err != nil {
		span.RecordError(err)
		metrics.PortfolioWrites.WithLabelValues("failed").Inc()
		uc.logger.Error("Portfolio save error", err, zap.String("path", uc.path))
		return apperror.NewInternal("Failed to save portfolio", err)
	}
	metrics.PortfolioWrites.WithLabelValues("saved").Inc()

	event := service.PortfolioEvent{
		EventID:    uuid.NewString(),
		EventType:  service.EventTypePortfolioUpdated,
		Path:       uc.path,
		Document:   json.RawMessage(append([]byte(nil), body...)),
		OccurredAt: time.Now().UTC(),
	}
	go func() {
		if err := uc.publisher.PublishPortfolioEvent(context.Background(), event); err != nil {
			uc.logger.Error("Failed to publish portfolio event", err, zap.String("event_id", event.EventID))
		}
	}()

	return nil
}
