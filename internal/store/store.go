// Package store defines the persistence contracts used by the services.
// Implementations live in the gormstore and mongostore subpackages.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pageza/recipeshare/backend/internal/model"
)

// ErrNotFound is returned when the requested record does not exist
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique key is already taken
var ErrDuplicate = errors.New("duplicate record")

// RecipeStore is durable keyed storage of recipes and their recommender sets.
// Every mutation is atomic for the record it touches.
type RecipeStore interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	List(ctx context.Context) ([]*model.Recipe, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Recipe, error)
	// LastN returns up to n recipes, newest first.
	LastN(ctx context.Context, n int) ([]*model.Recipe, error)
	// MostPopular orders by recommender count descending, then newest first, then id.
	MostPopular(ctx context.Context) ([]*model.Recipe, error)
	// Search matches term case-insensitively as a substring of the indexed fields.
	Search(ctx context.Context, term string) ([]*model.Recipe, error)
	Insert(ctx context.Context, recipe *model.Recipe) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields model.RecipeFields) (*model.Recipe, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// AddRecommender adds userID to the recipe's set if absent.
	AddRecommender(ctx context.Context, recipeID, userID uuid.UUID) (added bool, err error)
	// RemoveRecommender removes userID from the recipe's set if present.
	RemoveRecommender(ctx context.Context, recipeID, userID uuid.UUID) (removed bool, err error)
	IsRecommender(ctx context.Context, recipeID, userID uuid.UUID) (bool, error)
	ListRecommendedBy(ctx context.Context, userID uuid.UUID) ([]*model.Recipe, error)
	// CountRecommendedBy counts recipes userID recommends, excluding recipes userID owns.
	CountRecommendedBy(ctx context.Context, userID uuid.UUID) (int64, error)
}

// UserStore persists accounts for the access gate
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// Store bundles both contracts, as provided by a single backend
type Store interface {
	RecipeStore
	UserStore
	Ping(ctx context.Context) error
	Close() error
}
