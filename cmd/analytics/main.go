package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"panedelivery/internal/config"
	"panedelivery/internal/database"
	"panedelivery/internal/domain"
	"panedelivery/internal/events"
	"panedelivery/internal/logger"
	"panedelivery/internal/metrics"
	"panedelivery/internal/repository"
)

// Consumes the ad events topic and persists impressions and clicks for
// the admin statistics endpoints.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.Setup(cfg.LogLevel)

	if cfg.KafkaBroker == "" {
		log.Fatal("KAFKA_BROKER is required for the analytics consumer")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	impressionRepo := repository.NewImpressionRepository(db)

	consumer := events.NewConsumer(cfg.KafkaBroker, cfg.KafkaTopic, cfg.KafkaGroupID, log)
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.WithField("topic", cfg.KafkaTopic).Info("analytics consumer started")

	for {
		ev, err := consumer.ReadEvent(ctx)
		if err != nil {
			if errors.Is(ctx.Err(), context.Canceled) {
				log.Info("analytics consumer stopped")
				os.Exit(0)
			}
			log.WithError(err).Error("failed to read ad event")
			continue
		}

		imp := &domain.AdImpression{
			EventID:    ev.ID,
			Kind:       ev.Kind,
			AdSpaceID:  ev.AdSpaceID,
			Page:       ev.Page,
			SlotKey:    ev.SlotKey,
			Sponsored:  ev.Sponsored,
			SponsorID:  ev.SponsorID,
			OccurredAt: ev.OccurredAt,
		}
		if err := impressionRepo.Create(ctx, imp); err != nil {
			log.WithError(err).WithField("event_id", ev.ID).Error("failed to store ad event")
			continue
		}

		metrics.EventsProcessed.Inc()
	}
}
