package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/store"
	"github.com/pageza/recipeshare/backend/internal/store/gormstore"
	"github.com/pageza/recipeshare/backend/internal/store/mongostore"
)

// Open connects to the backend selected by cfg.StoreDriver and returns a ready store
func Open(ctx context.Context, cfg *config.Config, log *logrus.Logger) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres, config.DriverSQLite:
		db, err := OpenGorm(cfg, log)
		if err != nil {
			return nil, err
		}
		return gormstore.New(db), nil
	case config.DriverMongo:
		client, err := OpenMongo(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return mongostore.New(client, cfg.MongoDatabase), nil
	default:
		return nil, fmt.Errorf("unknown store driver: %s", cfg.StoreDriver)
	}
}

// OpenGorm creates a new gorm connection for the postgres or sqlite driver
func OpenGorm(cfg *config.Config, log *logrus.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		// Log connection target (without password)
		log.WithFields(logrus.Fields{
			"host": cfg.DBHost,
			"port": cfg.DBPort,
			"user": cfg.DBUser,
			"db":   cfg.DBName,
		}).Info("connecting to postgres")
		dialector = postgres.Open(cfg.DSN())
	case config.DriverSQLite:
		log.WithField("path", cfg.SQLitePath).Info("opening sqlite database")
		dialector = gormstore.OpenSQLite(cfg.SQLiteDSN())
	default:
		return nil, fmt.Errorf("driver %s is not a SQL driver", cfg.StoreDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Set connection pool settings
	if cfg.StoreDriver == config.DriverSQLite {
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	log.Info("successfully connected to database")
	return db, nil
}

// OpenMongo connects to MongoDB and verifies the connection
func OpenMongo(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("error connecting to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("error pinging mongo: %w", err)
	}

	log.WithField("database", cfg.MongoDatabase).Info("successfully connected to mongo")
	return client, nil
}
