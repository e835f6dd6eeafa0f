package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/database"
	"github.com/pageza/recipeshare/backend/internal/logging"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	logger := logging.New("recipeshare-migrate", string(config.GetEnvironment()), cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	s, err := database.Open(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to open store")
	}
	defer s.Close()

	if err := database.Migrate(ctx, s, logger); err != nil {
		logger.WithError(err).Fatal("migration failed")
	}
	logger.WithField("driver", cfg.StoreDriver).Info("all migrations applied successfully")
}
