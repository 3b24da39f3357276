package http

import (
	"github.com/gin-gonic/gin"

	portfolioUC "github.com/khoahotran/portfolio/internal/application/usecase/portfolio"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type RSSHandler struct {
	portfolioUC *portfolioUC.PortfolioUseCase
	siteURL     string
	logger      logger.Logger
}

// NewRSSHandler derives the site URL from the request host when siteURL is empty.
func NewRSSHandler(uc *portfolioUC.PortfolioUseCase, siteURL string, log logger.Logger) *RSSHandler {
	return &RSSHandler{
		portfolioUC: uc,
		siteURL:     siteURL,
		logger:      log,
	}
}

func (h *RSSHandler) ProjectsFeed(c *gin.Context) {
	siteURL := h.siteURL
	if siteURL == "" {
		scheme := "http"
		if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
			scheme = "https"
		}
		siteURL = scheme + "://" + c.Request.Host + "/"
	}

	feed, err := h.portfolioUC.ExecuteProjectsFeed(c.Request.Context(), siteURL)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	if err := feed.WriteRss(c.Writer); err != nil {
		h.logger.Error("Failed to write RSS feed to response", err)
	}
}
