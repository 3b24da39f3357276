package main

import (
	"context"
	"encoding/json"
	"errors"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/adapters/blob_storage"
	"github.com/khoahotran/portfolio/adapters/event"
	"github.com/khoahotran/portfolio/adapters/media_storage"
	"github.com/khoahotran/portfolio/internal/application/service"
	backupUC "github.com/khoahotran/portfolio/internal/application/usecase/backup"
	snapshotUC "github.com/khoahotran/portfolio/internal/application/usecase/snapshot"
	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/pkg/logger"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Starting Portfolio Snapshot Worker...")

	if len(cfg.Kafka.Brokers) == 0 {
		appLogger.Fatal("cannot start worker", errors.New("KAFKA_BROKERS is empty"))
	}

	if blob_storage.InProcess(cfg.Storage.Driver) {
		appLogger.Fatal("cannot start worker", errors.New("storage.driver is memory, snapshots would never reach the server; use minio or postgres"))
	}

	// Storage
	blobStore, closeStore, err := blob_storage.NewBlobStore(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot open blob store", err)
	}
	defer closeStore()

	// Cloudinary Uploader
	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize uploader", err)
	}

	// Worker Use Cases
	processEventUC := snapshotUC.NewProcessPortfolioEventUseCase(blobStore, appLogger)
	backupCopyUC := backupUC.NewBackupUseCase(uploader, "", appLogger)

	// Kafka Consumer
	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicPortfolioEvents,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer consumer.Close()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicPortfolioEvents), zap.String("group_id", cfg.Kafka.GroupID))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		msg, err := consumer.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				appLogger.Info("Worker stopped")
				return
			}
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		appLogger.Debug("Received message", zap.String("topic", msg.Topic), zap.String("key", string(msg.Key)))

		var payload service.PortfolioEvent
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			appLogger.Error("Failed to unmarshal event, skipping", err, zap.Int64("offset", msg.Offset))
			commitMessage(ctx, consumer, msg, appLogger)
			continue
		}

		if _, err := processEventUC.Execute(ctx, payload); err != nil {
			appLogger.Error("Failed to process event", err, zap.String("event_id", payload.EventID))
			continue
		}

		if backupCopyUC.Enabled() && payload.EventType == service.EventTypePortfolioUpdated {
			// Off-site copy is best effort; the snapshot above is the record.
			if _, err := backupCopyUC.Execute(ctx, payload); err != nil {
				appLogger.Warn("Backup skipped", zap.String("event_id", payload.EventID), zap.Error(err))
			}
		}

		commitMessage(ctx, consumer, msg, appLogger)
	}
}

func commitMessage(ctx context.Context, consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(ctx, msg); err != nil {
		log.Error("Failed to commit message", err, zap.Int64("offset", msg.Offset))
	}
}
