package http

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio/pkg/logger"
)

type Handlers struct {
	Contact   *ContactHandler
	Portfolio *PortfolioHandler
	Media     *MediaHandler
	RSS       *RSSHandler
}

type RouterOptions struct {
	APISecret    string
	ContactRPS   float64
	ContactBurst int
	// Metrics serves /metrics when set.
	Metrics http.Handler
}

var allMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch,
	http.MethodDelete, http.MethodOptions, http.MethodConnect, http.MethodTrace,
}

func otherMethods(allowed ...string) []string {
	out := make([]string, 0, len(allMethods))
	for _, m := range allMethods {
		if !slices.Contains(allowed, m) {
			out = append(out, m)
		}
	}
	return out
}

func NewRouter(h Handlers, opts RouterOptions, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestIDMiddleware(),
		LoggingMiddleware(log),
		ErrorMiddleware(log),
	)

	requireSecret := SecretAuthMiddleware(opts.APISecret, log)
	contactLimiter := NewRateLimiter(opts.ContactRPS, opts.ContactBurst)

	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics))
	}

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		api.POST("/contact", contactLimiter.Middleware(), h.Contact.Send)
		api.Match(otherMethods(http.MethodPost), "/contact", MethodNotAllowedJSON("POST"))

		api.GET("/portfolio", h.Portfolio.Get)
		api.POST("/portfolio", requireSecret, h.Portfolio.Save)
		api.PUT("/portfolio", requireSecret, h.Portfolio.Save)
		api.Match(otherMethods(http.MethodGet, http.MethodPost, http.MethodPut), "/portfolio",
			MethodNotAllowedText("GET, POST, PUT"))

		api.GET("/projects/rss", h.RSS.ProjectsFeed)

		if h.Media != nil {
			api.POST("/media", requireSecret, h.Media.UploadImage)
			api.DELETE("/media/:public_id", requireSecret, h.Media.DeleteImage)
		}
	}

	return router
}
