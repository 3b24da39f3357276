package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	contactUC "github.com/khoahotran/portfolio/internal/application/usecase/contact"
	"github.com/khoahotran/portfolio/internal/domain/contact"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type ContactHandler struct {
	sendMessageUC *contactUC.SendMessageUseCase
	logger        logger.Logger
}

func NewContactHandler(uc *contactUC.SendMessageUseCase, log logger.Logger) *ContactHandler {
	return &ContactHandler{sendMessageUC: uc, logger: log}
}

func (h *ContactHandler) Send(c *gin.Context) {
	if err := h.sendMessageUC.EnsureConfigured(); err != nil {
		c.Error(err)
		return
	}

	var req contact.Message
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput(contact.ErrMissingFields.Error(), err))
		return
	}

	output, err := h.sendMessageUC.Execute(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": output.ID})
}
