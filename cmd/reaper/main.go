package main

import (
	"context"
	"os"
	"time"

	"panedelivery/internal/database"
	"panedelivery/internal/logger"
	"panedelivery/internal/repository"
)

// Removes reserved slot rows that outlived their hold window. Run from
// cron; reads also treat expired holds as available, so the reaper only
// keeps the table small and the agenda honest after crashes.
func main() {
	log := logger.Setup(os.Getenv("LOG_LEVEL"))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}

	slotRepo := repository.NewSlotBookingRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := slotRepo.DeleteExpiredHolds(ctx, time.Now().UTC())
	if err != nil {
		log.WithError(err).Fatal("expired hold cleanup failed")
	}

	log.WithField("removed", count).Info("expired holds reaped")
}
