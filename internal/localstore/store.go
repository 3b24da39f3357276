// Package localstore keeps the portfolio document, the admin flag and the sync
// token in a local key-value store.
package localstore

import (
	"context"
	_ "embed"
	"fmt"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/domain/portfolio"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const (
	KeyPortfolio = "portfolio-data"
	KeyAdmin     = "isAdmin"
	KeyToken     = "portfolio-api-secret"
)

//go:embed default_portfolio.json
var defaultDocument []byte

// Default returns a fresh copy of the bundled document.
func Default() portfolio.Document {
	doc, err := portfolio.Parse(defaultDocument)
	if err != nil {
		panic(fmt.Sprintf("localstore: bundled portfolio is invalid: %v", err))
	}
	return doc
}

type Store struct {
	kv     service.KeyValue
	logger logger.Logger
}

func New(kv service.KeyValue, log logger.Logger) *Store {
	return &Store{kv: kv, logger: log}
}

// KV exposes the backing store for other local state such as the admin flag.
func (s *Store) KV() service.KeyValue { return s.kv }

// Load never fails: unreadable or unparseable data falls back to the bundled document.
func (s *Store) Load(ctx context.Context) portfolio.Document {
	raw, ok, err := s.kv.Get(ctx, KeyPortfolio)
	if err != nil {
		s.logger.Warn("Local portfolio read failed, using default", zap.Error(err))
		return Default()
	}
	if !ok || raw == "" {
		return Default()
	}
	doc, err := portfolio.Parse([]byte(raw))
	if err != nil {
		s.logger.Warn("Local portfolio is not valid JSON, using default", zap.Error(err))
		return Default()
	}
	return doc
}

func (s *Store) Save(ctx context.Context, doc portfolio.Document) error {
	data, err := portfolio.Encode(doc)
	if err != nil {
		return fmt.Errorf("encode portfolio: %w", err)
	}
	if err := s.kv.Set(ctx, KeyPortfolio, string(data)); err != nil {
		return fmt.Errorf("save portfolio: %w", err)
	}
	return nil
}

func (s *Store) Token(ctx context.Context) string {
	token, _, err := s.kv.Get(ctx, KeyToken)
	if err != nil {
		s.logger.Warn("Local token read failed", zap.Error(err))
		return ""
	}
	return token
}

// SetToken stores token. A blank token removes it and switches to local-only mode.
func (s *Store) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return s.kv.Delete(ctx, KeyToken)
	}
	return s.kv.Set(ctx, KeyToken, token)
}
