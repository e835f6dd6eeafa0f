package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/logging"
	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/store/gormstore"
)

func TestOpenSQLite(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		StoreDriver: config.DriverSQLite,
		SQLitePath:  filepath.Join(t.TempDir(), "recipes.db"),
	}
	log := logging.Discard()

	s, err := Open(ctx, cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	assert.IsType(t, &gormstore.Store{}, s)

	require.NoError(t, Migrate(ctx, s, log))
	// Migrating an up-to-date schema is a no-op
	require.NoError(t, Migrate(ctx, s, log))
	assert.NoError(t, s.Ping(ctx))

	recipes, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestOpenSQLiteEnforcesForeignKeys(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		StoreDriver: config.DriverSQLite,
		SQLitePath:  filepath.Join(t.TempDir(), "recipes.db"),
	}
	log := logging.Discard()

	s, err := Open(ctx, cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, Migrate(ctx, s, log))
	db := s.(*gormstore.Store).DB()

	orphan := &model.Recommendation{RecipeID: uuid.New(), UserID: uuid.New()}
	assert.Error(t, db.Create(orphan).Error)

	recipe := model.NewRecipe(uuid.New(), model.RecipeFields{
		Title:        "Cassoulet",
		Ingredients:  "beans, duck, sausage",
		Instructions: "bake slowly",
		Description:  "southern French stew",
		Image:        "https://example.com/cassoulet.jpg",
	})
	require.NoError(t, s.Insert(ctx, recipe))
	_, err = s.AddRecommender(ctx, recipe.ID, uuid.New())
	require.NoError(t, err)

	// Removing the recipe row alone cascades to its recommendations
	require.NoError(t, db.Exec("DELETE FROM recipes WHERE id = ?", recipe.ID.String()).Error)
	var left int64
	require.NoError(t, db.Model(&model.Recommendation{}).Count(&left).Error)
	assert.Zero(t, left)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{StoreDriver: "oracle"}, logging.Discard())
	assert.Error(t, err)

	_, err = OpenGorm(&config.Config{StoreDriver: config.DriverMongo}, logging.Discard())
	assert.Error(t, err)
}

func TestNewRedisClientUnconfigured(t *testing.T) {
	client, err := NewRedisClient(context.Background(), &config.Config{}, logging.Discard())
	assert.NoError(t, err)
	assert.Nil(t, client)
}

func TestNewRedisClientBadURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), &config.Config{RedisURL: "://nope"}, logging.Discard())
	assert.Error(t, err)
}
