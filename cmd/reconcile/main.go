// Command reconcile recomputes every offer's favorites_count from its
// membership rows and reports how many were off.
package main

import (
	"context"
	"log/slog"
	"os"

	"offerboard/internal/config"
	"offerboard/internal/database"
	"offerboard/internal/pkg/logger"
	"offerboard/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := database.Connect(cfg.DatabaseURL, database.PoolConfig{MaxOpenConns: 1})
	if err != nil {
		log.Error("db connect failed", "error", err)
		os.Exit(1)
	}

	fixed, err := repository.NewFavoriteRepository(db).Reconcile(context.Background())
	if err != nil {
		log.Error("reconcile failed", "error", err)
		os.Exit(1)
	}
	log.Info("favorites reconciled", "drifted_offers", fixed)
}
