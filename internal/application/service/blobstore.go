package service

import "context"

// BlobStore keeps whole objects under a path. Get wraps apperror.ErrNotFound when the path is absent.
type BlobStore interface {
	Get(ctx context.Context, path string) ([]byte, error)
	Put(ctx context.Context, path string, data []byte, contentType string) error
}
