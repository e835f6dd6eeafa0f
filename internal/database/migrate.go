package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/store"
	"github.com/pageza/recipeshare/backend/internal/store/gormstore"
	"github.com/pageza/recipeshare/backend/internal/store/mongostore"
)

// RunMigrations brings the SQL schema up to date
func RunMigrations(db *gorm.DB, log *logrus.Logger) error {
	log.WithField("dialect", db.Dialector.Name()).Info("running auto-migration")
	if err := db.AutoMigrate(
		&model.User{},
		&model.Recipe{},
		&model.Recommendation{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Migrate prepares any supported store: tables for SQL backends, indexes for mongo
func Migrate(ctx context.Context, s store.Store, log *logrus.Logger) error {
	switch st := s.(type) {
	case *gormstore.Store:
		return RunMigrations(st.DB(), log)
	case *mongostore.Store:
		log.Info("ensuring mongo indexes")
		return st.EnsureIndexes(ctx)
	default:
		return fmt.Errorf("no migration available for %T", s)
	}
}
