package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/pkg/logger"
	"github.com/khoahotran/portfolio/pkg/metrics"
)

const blobCachePrefix = "portfolio:blob:"

// cachedBlobStore puts Redis in front of a slower blob store. Writes go to the
// store first and then replace the cached copy. Redis failures only cost a miss.
type cachedBlobStore struct {
	next   service.BlobStore
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedBlobStore(next service.BlobStore, rdb *redis.Client, ttl time.Duration, log logger.Logger) service.BlobStore {
	return &cachedBlobStore{next: next, rdb: rdb, ttl: ttl, logger: log}
}

func (c *cachedBlobStore) Get(ctx context.Context, path string) ([]byte, error) {
	data, err := c.rdb.Get(ctx, blobCachePrefix+path).Bytes()
	switch {
	case err == nil:
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return data, nil
	case errors.Is(err, redis.Nil):
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	default:
		metrics.CacheLookups.WithLabelValues("error").Inc()
		c.logger.Warn("Blob cache read failed", zap.String("path", path), zap.Error(err))
	}

	data, err = c.next.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	c.store(ctx, path, data)
	return data, nil
}

func (c *cachedBlobStore) Put(ctx context.Context, path string, data []byte, contentType string) error {
	if err := c.next.Put(ctx, path, data, contentType); err != nil {
		if delErr := c.rdb.Del(ctx, blobCachePrefix+path).Err(); delErr != nil {
			c.logger.Warn("Blob cache invalidation failed", zap.String("path", path), zap.Error(delErr))
		}
		return err
	}
	c.store(ctx, path, data)
	return nil
}

func (c *cachedBlobStore) store(ctx context.Context, path string, data []byte) {
	if err := c.rdb.Set(ctx, blobCachePrefix+path, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Blob cache write failed", zap.String("path", path), zap.Error(err))
	}
}
