package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/api"
	"github.com/pageza/recipeshare/backend/internal/database"
	"github.com/pageza/recipeshare/backend/internal/logging"
	"github.com/pageza/recipeshare/backend/internal/metrics"
	"github.com/pageza/recipeshare/backend/internal/router"
	"github.com/pageza/recipeshare/backend/internal/server"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/validation"
)

func main() {
	env := config.GetEnvironment()

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	logger := logging.New("recipeshare-api", string(env), cfg.LogLevel)
	validation.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := database.Open(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to open store")
	}
	defer s.Close()

	if err := database.Migrate(ctx, s, logger); err != nil {
		logger.WithError(err).Fatal("failed to migrate store")
	}

	var denylist service.TokenDenylist
	redisClient, err := database.NewRedisClient(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to redis")
	}
	if redisClient != nil {
		defer redisClient.Close()
		denylist = service.NewRedisDenylist(redisClient)
	} else {
		logger.Warn("redis not configured, logout will not revoke tokens")
	}

	m := metrics.New()
	deps := router.Deps{
		Logger:          logger,
		Metrics:         m,
		Store:           s,
		Catalog:         service.NewCatalogService(s, logger),
		Recommendations: service.NewRecommendationService(s, logger, m),
		Auth:            service.NewAuthService(s, cfg.JWTSecret, cfg.TokenTTL, denylist, logger),
		AllowedOrigins:  cfg.AllowedOrigins,
		Cookie: api.CookieOptions{
			Name:   cfg.CookieName,
			MaxAge: cfg.TokenTTL,
			Secure: config.IsProduction(),
		},
	}

	if cfg.S3Bucket != "" {
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			logger.WithError(err).Fatal("failed to initialize image storage")
		}
		deps.Images = service.NewImageService(s3cfg, logger)
	} else {
		logger.Info("no image bucket configured, uploads disabled")
	}

	srv := server.New(cfg, router.SetupRouter(deps), logger)
	if err := srv.Run(ctx); err != nil {
		logger.WithError(err).Fatal("server error")
	}
	logger.Info("server stopped")
}
