package media

import (
	"context"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

// UploadImageUseCase stores a project image and hands back the URL for the project's image field.
type UploadImageUseCase struct {
	uploader service.Uploader
	folder   string
	logger   logger.Logger
}

// NewUploadImageUseCase accepts a nil uploader when Cloudinary is not configured.
func NewUploadImageUseCase(u service.Uploader, folder string, log logger.Logger) *UploadImageUseCase {
	return &UploadImageUseCase{uploader: u, folder: folder, logger: log}
}

type UploadImageInput struct {
	File     io.Reader
	Filename string
}

type UploadImageOutput struct {
	URL      string
	PublicID string
}

func (uc *UploadImageUseCase) Execute(ctx context.Context, input UploadImageInput) (*UploadImageOutput, error) {
	if uc.uploader == nil {
		return nil, apperror.NewMisconfigured("Media upload not configured", "cloudinary credentials unset")
	}

	publicID := uuid.NewString()
	url, err := uc.uploader.Upload(ctx, input.File, uc.folder, publicID)
	if err != nil {
		uc.logger.Error("Image upload failed", err, zap.String("filename", input.Filename))
		return nil, apperror.NewUpstream("", "Failed to upload image", err)
	}

	uc.logger.Info("Project image uploaded", zap.String("public_id", publicID), zap.String("url", url))
	return &UploadImageOutput{URL: url, PublicID: publicID}, nil
}
