package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

var psqlBlob = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Body is BYTEA so reads return exactly what was written.
const blobSchema = `
	CREATE TABLE IF NOT EXISTS portfolio_blobs (
		path         TEXT PRIMARY KEY,
		body         BYTEA NOT NULL,
		content_type TEXT NOT NULL DEFAULT 'application/json',
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

type postgresBlobRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresBlobRepo(db *pgxpool.Pool, logger logger.Logger) service.BlobStore {
	return &postgresBlobRepo{db: db, logger: logger}
}

// EnsureBlobSchema creates the blob table when it does not exist yet.
func EnsureBlobSchema(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, blobSchema); err != nil {
		return apperror.NewInternal("failed to create portfolio_blobs table", err)
	}
	return nil
}

func (r *postgresBlobRepo) Get(ctx context.Context, path string) ([]byte, error) {
	sql, args, err := psqlBlob.Select("body").
		From("portfolio_blobs").
		Where(sq.Eq{"path": path}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build get blob query", err)
	}

	var body []byte
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&body); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("blob", path)
		}
		return nil, apperror.NewInternal("failed to query blob", err)
	}
	return body, nil
}

func (r *postgresBlobRepo) Put(ctx context.Context, path string, data []byte, contentType string) error {
	sql, args, err := psqlBlob.Insert("portfolio_blobs").
		Columns("path", "body", "content_type", "updated_at").
		Values(path, data, contentType, sq.Expr("NOW()")).
		Suffix("ON CONFLICT (path) DO UPDATE SET body = EXCLUDED.body, content_type = EXCLUDED.content_type, updated_at = NOW()").
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build put blob query", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		r.logger.Warn("Blob upsert failed", zap.String("path", path), zap.Error(err))
		return apperror.NewInternal("failed to upsert blob", err)
	}
	return nil
}
