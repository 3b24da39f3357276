package blob_storage

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/adapters/persistence"
	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const (
	DriverMemory   = "memory"
	DriverMinIO    = "minio"
	DriverPostgres = "postgres"
)

// InProcess reports whether driver keeps data inside the current process,
// invisible to any other binary.
func InProcess(driver string) bool {
	return driver == DriverMemory || driver == ""
}

// NewBlobStore opens the store selected by storage.driver. The returned close
// function is never nil, also on error.
func NewBlobStore(cfg config.Config, log logger.Logger) (service.BlobStore, func(), error) {
	log.Info("Opening blob store", zap.String("driver", cfg.Storage.Driver))
	noop := func() {}

	switch cfg.Storage.Driver {
	case DriverMemory, "":
		log.Warn("Using in-memory blob store, data is lost on restart")
		return persistence.NewMemoryBlobStore(), noop, nil
	case DriverMinIO:
		store, err := NewMinIOBlobStore(cfg, log)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil
	case DriverPostgres:
		pool, err := persistence.NewPostgresPool(cfg, log)
		if err != nil {
			return nil, noop, err
		}
		return persistence.NewPostgresBlobRepo(pool, log), pool.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
