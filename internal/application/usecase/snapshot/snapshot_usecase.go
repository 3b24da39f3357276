package snapshot

import (
	"context"
	"fmt"
	"path"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const historyFolder = "portfolio/history"

// ProcessPortfolioEventUseCase keeps a copy of every published document revision.
type ProcessPortfolioEventUseCase struct {
	store  service.BlobStore
	logger logger.Logger
}

func NewProcessPortfolioEventUseCase(store service.BlobStore, log logger.Logger) *ProcessPortfolioEventUseCase {
	return &ProcessPortfolioEventUseCase{store: store, logger: log}
}

func (uc *ProcessPortfolioEventUseCase) Execute(ctx context.Context, event service.PortfolioEvent) (string, error) {
	if event.EventType != service.EventTypePortfolioUpdated {
		uc.logger.Warn("Skipping unknown event type", zap.String("event_type", event.EventType))
		return "", nil
	}
	if len(event.Document) == 0 {
		return "", fmt.Errorf("event %s has no document", event.EventID)
	}

	occurred := event.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}
	key := HistoryPath(occurred, event.EventID)

	if err := uc.store.Put(ctx, key, event.Document, "application/json"); err != nil {
		return "", fmt.Errorf("store snapshot %s: %w", key, err)
	}

	uc.logger.Info("Portfolio snapshot stored", zap.String("path", key), zap.String("event_id", event.EventID))
	return key, nil
}

func HistoryPath(at time.Time, eventID string) string {
	name := at.UTC().Format("2006-01-02_15-04-05")
	if eventID != "" {
		name += "-" + eventID
	}
	return path.Join(historyFolder, name+".json")
}
