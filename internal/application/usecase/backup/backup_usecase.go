package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const DefaultFolder = "backups/portfolio"

var ErrNoUploader = errors.New("backup uploader is not configured")

// BackupUseCase copies published documents to the media uploader, off the
// primary blob store.
type BackupUseCase struct {
	uploader service.Uploader
	folder   string
	logger   logger.Logger
}

func NewBackupUseCase(uploader service.Uploader, folder string, log logger.Logger) *BackupUseCase {
	if folder == "" {
		folder = DefaultFolder
	}
	return &BackupUseCase{uploader: uploader, folder: folder, logger: log}
}

func (uc *BackupUseCase) Enabled() bool { return uc.uploader != nil }

// Execute uploads the event's document and returns the stored URL.
func (uc *BackupUseCase) Execute(ctx context.Context, event service.PortfolioEvent) (string, error) {
	if uc.uploader == nil {
		return "", ErrNoUploader
	}
	if len(event.Document) == 0 {
		return "", fmt.Errorf("event %s has no document", event.EventID)
	}

	occurred := event.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}
	name := "backup-" + occurred.UTC().Format("2006-01-02_15-04-05")
	if event.EventID != "" {
		name += "-" + event.EventID
	}
	// Cloudinary prefixes the folder, so the id stays bare.
	url, err := uc.uploader.Upload(ctx, bytes.NewReader(event.Document), uc.folder, name)
	if err != nil {
		uc.logger.Error("Failed to upload portfolio backup", err, zap.String("public_id", name))
		return "", err
	}

	uc.logger.Info("Portfolio backup uploaded",
		zap.String("url", url),
		zap.String("folder", uc.folder),
		zap.String("public_id", name),
	)
	return url, nil
}
