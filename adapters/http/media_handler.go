package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	mediaUC "github.com/khoahotran/portfolio/internal/application/usecase/media"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type MediaHandler struct {
	uploadImageUC *mediaUC.UploadImageUseCase
	deleteImageUC *mediaUC.DeleteImageUseCase
	logger        logger.Logger
}

func NewMediaHandler(upload *mediaUC.UploadImageUseCase, del *mediaUC.DeleteImageUseCase, log logger.Logger) *MediaHandler {
	return &MediaHandler{uploadImageUC: upload, deleteImageUC: del, logger: log}
}

func (h *MediaHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("'file' is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to open file", err))
		return
	}
	defer file.Close()

	output, err := h.uploadImageUC.Execute(c.Request.Context(), mediaUC.UploadImageInput{
		File:     file,
		Filename: fileHeader.Filename,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": output.URL, "public_id": output.PublicID})
}

func (h *MediaHandler) DeleteImage(c *gin.Context) {
	if err := h.deleteImageUC.Execute(c.Request.Context(), c.Param("public_id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
