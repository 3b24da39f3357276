package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/adapters/blob_storage"
	"github.com/khoahotran/portfolio/adapters/event"
	httpAdapter "github.com/khoahotran/portfolio/adapters/http"
	"github.com/khoahotran/portfolio/adapters/mail"
	"github.com/khoahotran/portfolio/adapters/media_storage"
	"github.com/khoahotran/portfolio/adapters/persistence"
	"github.com/khoahotran/portfolio/internal/application/service"
	contactUC "github.com/khoahotran/portfolio/internal/application/usecase/contact"
	mediaUC "github.com/khoahotran/portfolio/internal/application/usecase/media"
	portfolioUC "github.com/khoahotran/portfolio/internal/application/usecase/portfolio"
	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/pkg/logger"
	"github.com/khoahotran/portfolio/pkg/metrics"
	"github.com/khoahotran/portfolio/pkg/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Start Portfolio API Server...", zap.String("env", cfg.App.Env))

	tp, err := tracing.NewTracerProvider(cfg, appLogger, "portfolio-api")
	if err != nil {
		appLogger.Fatal("cannot init tracer provider", err)
	}
	if tp != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				appLogger.Error("Error shutting down tracer provider", err)
			}
		}()
	}

	// Storage
	blobStore, closeStore, err := blob_storage.NewBlobStore(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot open blob store", err)
	}
	defer closeStore()

	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot connect Redis", err)
		}
		defer redisClient.Close()
		blobStore = persistence.NewCachedBlobStore(blobStore, redisClient, cfg.Redis.TTL, appLogger)
	}

	// Events
	var publisher service.EventPublisher = service.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		publisher = kafkaClient
	}

	// Services
	mailer := newMailer(cfg, appLogger)
	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize uploader", err)
	}

	// Use Cases
	sendMessageUseCase := contactUC.NewSendMessageUseCase(mailer, cfg.Contact.Sender, cfg.Contact.Recipient, appLogger)
	portfolioUseCase := portfolioUC.NewPortfolioUseCase(blobStore, publisher, cfg.Portfolio.BlobPath, appLogger)
	uploadImageUseCase := mediaUC.NewUploadImageUseCase(uploader, cfg.Cloudinary.Folder, appLogger)
	deleteImageUseCase := mediaUC.NewDeleteImageUseCase(uploader, cfg.Cloudinary.Folder, appLogger)

	if cfg.Portfolio.APISecret == "" {
		appLogger.Warn("PORTFOLIO_API_SECRET is empty, every portfolio write will be rejected")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.RegisterCollectors(reg)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(httpAdapter.Handlers{
		Contact:   httpAdapter.NewContactHandler(sendMessageUseCase, appLogger),
		Portfolio: httpAdapter.NewPortfolioHandler(portfolioUseCase, appLogger),
		Media:     httpAdapter.NewMediaHandler(uploadImageUseCase, deleteImageUseCase, appLogger),
		RSS:       httpAdapter.NewRSSHandler(portfolioUseCase, cfg.Portfolio.SiteURL, appLogger),
	}, httpAdapter.RouterOptions{
		APISecret:    cfg.Portfolio.APISecret,
		ContactRPS:   cfg.Contact.RateLimit.RPS,
		ContactBurst: cfg.Contact.RateLimit.Burst,
		Metrics:      promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}, appLogger)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
}

func newMailer(cfg config.Config, log logger.Logger) service.Mailer {
	switch cfg.Contact.Provider {
	case "smtp":
		m := mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.Contact.SMTP.Host,
			Port:     cfg.Contact.SMTP.Port,
			User:     cfg.Contact.SMTP.User,
			Password: cfg.Contact.SMTP.Password,
		})
		if m == nil {
			log.Warn("SMTP mailer not configured, contact form disabled")
		}
		return m
	default:
		m := mail.NewResendMailer(cfg.Contact.ResendAPIKey)
		if m == nil {
			log.Warn("RESEND_API_KEY not set, contact form disabled")
		}
		return m
	}
}
