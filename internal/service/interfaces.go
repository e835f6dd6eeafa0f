package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/types"
)

// ICatalogService defines the interface for recipe catalog operations
type ICatalogService interface {
	Create(ctx context.Context, ownerID uuid.UUID, fields model.RecipeFields) (*model.Recipe, error)
	Update(ctx context.Context, requesterID, id uuid.UUID, fields model.RecipeFields) (*model.Recipe, error)
	Delete(ctx context.Context, requesterID, id uuid.UUID) error
	GetOne(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	GetAll(ctx context.Context) ([]*model.Recipe, error)
	GetLastThree(ctx context.Context) ([]*model.Recipe, error)
	GetMostPopular(ctx context.Context) ([]*model.Recipe, error)
	Search(ctx context.Context, term string) ([]*model.Recipe, error)
	GetUserRecipes(ctx context.Context, ownerID uuid.UUID) ([]*model.Recipe, error)
}

// IRecommendationService defines the interface for recommendation operations
type IRecommendationService interface {
	Recommend(ctx context.Context, userID, recipeID uuid.UUID) error
	Unrecommend(ctx context.Context, userID, recipeID uuid.UUID) error
	IsRecommended(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	CountForUser(ctx context.Context, userID uuid.UUID) (int64, error)
	FavoritesForUser(ctx context.Context, userID uuid.UUID) ([]*model.Recipe, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, email, password, username string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	Logout(ctx context.Context, token string) error
	GenerateToken(user *model.User) (string, error)
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// IImageService defines the interface for recipe image storage
type IImageService interface {
	UploadRecipeImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}
