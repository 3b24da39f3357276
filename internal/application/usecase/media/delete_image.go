package media

import (
	"context"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

// DeleteImageUseCase removes a project image previously returned by UploadImageUseCase.
type DeleteImageUseCase struct {
	uploader service.Uploader
	folder   string
	logger   logger.Logger
}

func NewDeleteImageUseCase(u service.Uploader, folder string, log logger.Logger) *DeleteImageUseCase {
	return &DeleteImageUseCase{uploader: u, folder: folder, logger: log}
}

// Execute takes the bare id from the upload response; the folder is added here.
func (uc *DeleteImageUseCase) Execute(ctx context.Context, publicID string) error {
	if uc.uploader == nil {
		return apperror.NewMisconfigured("Media upload not configured", "cloudinary credentials unset")
	}
	publicID = strings.TrimSpace(publicID)
	if publicID == "" || strings.ContainsAny(publicID, `/\`) || strings.Contains(publicID, "..") {
		return apperror.NewInvalidInput("Invalid image id", nil)
	}

	fullID := path.Join(uc.folder, publicID)
	if err := uc.uploader.Delete(ctx, fullID); err != nil {
		uc.logger.Error("Image delete failed", err, zap.String("public_id", fullID))
		return apperror.NewUpstream("", "Failed to delete image", err)
	}

	uc.logger.Info("Project image deleted", zap.String("public_id", fullID))
	return nil
}
