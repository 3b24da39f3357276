package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	portfolioUC "github.com/khoahotran/portfolio/internal/application/usecase/portfolio"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const maxPortfolioBodyBytes = 5 << 20

type PortfolioHandler struct {
	portfolioUC *portfolioUC.PortfolioUseCase
	logger      logger.Logger
}

func NewPortfolioHandler(uc *portfolioUC.PortfolioUseCase, log logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{portfolioUC: uc, logger: log}
}

// Get returns the stored bytes untouched. A missing document is a bare 404.
func (h *PortfolioHandler) Get(c *gin.Context) {
	data, err := h.portfolioUC.ExecuteGet(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Error(err)
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

func (h *PortfolioHandler) Save(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxPortfolioBodyBytes))
	if err != nil {
		c.Error(apperror.NewInvalidInput("Invalid JSON body", err))
		return
	}

	if err := h.portfolioUC.ExecuteSave(c.Request.Context(), body); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
