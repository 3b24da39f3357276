package service

import (
	"context"
	"encoding/json"
	"time"
)

const EventTypePortfolioUpdated = "portfolio.updated"

type PortfolioEvent struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	Path       string          `json:"path"`
	Document   json.RawMessage `json:"document"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// EventPublisher announces portfolio writes to downstream consumers.
type EventPublisher interface {
	PublishPortfolioEvent(ctx context.Context, event PortfolioEvent) error
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishPortfolioEvent(context.Context, PortfolioEvent) error { return nil }
