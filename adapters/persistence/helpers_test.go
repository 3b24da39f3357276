package persistence

import (
	"context"

	"github.com/khoahotran/portfolio/internal/application/service"
)

type countingStore struct {
	inner service.BlobStore
	gets  int
}

func (s *countingStore) Get(ctx context.Context, path string) ([]byte, error) {
	s.gets++
	return s.inner.Get(ctx, path)
}

func (s *countingStore) Put(ctx context.Context, path string, data []byte, contentType string) error {
	return s.inner.Put(ctx, path, data, contentType)
}
