package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/service"
)

var (
	_ service.ICatalogService        = (*MockCatalogService)(nil)
	_ service.IRecommendationService = (*MockRecommendationService)(nil)
)

// MockCatalogService is a mock implementation of the catalog service
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Create(ctx context.Context, ownerID uuid.UUID, fields model.RecipeFields) (*model.Recipe, error) {
	args := m.Called(ctx, ownerID, fields)
	return recipeOrNil(args.Get(0)), args.Error(1)
}

func (m *MockCatalogService) Update(ctx context.Context, requesterID, id uuid.UUID, fields model.RecipeFields) (*model.Recipe, error) {
	args := m.Called(ctx, requesterID, id, fields)
	return recipeOrNil(args.Get(0)), args.Error(1)
}

func (m *MockCatalogService) Delete(ctx context.Context, requesterID, id uuid.UUID) error {
	args := m.Called(ctx, requesterID, id)
	return args.Error(0)
}

func (m *MockCatalogService) GetOne(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	args := m.Called(ctx, id)
	return recipeOrNil(args.Get(0)), args.Error(1)
}

func (m *MockCatalogService) GetAll(ctx context.Context) ([]*model.Recipe, error) {
	args := m.Called(ctx)
	return recipesOrNil(args.Get(0)), args.Error(1)
}

func (m *MockCatalogService) GetLastThree(ctx context.Context) ([]*model.Recipe, error) {
	args := m.Called(ctx)
	return recipesOrNil(args.Get(0)), args.Error(1)
}

func (m *MockCatalogService) GetMostPopular(ctx context.Context) ([]*model.Recipe, error) {
	args := m.Called(ctx)
	return recipesOrNil(args.Get(0)), args.Error(1)
}

func (m *MockCatalogService) Search(ctx context.Context, term string) ([]*model.Recipe, error) {
	args := m.Called(ctx, term)
	return recipesOrNil(args.Get(0)), args.Error(1)
}

func (m *MockCatalogService) GetUserRecipes(ctx context.Context, ownerID uuid.UUID) ([]*model.Recipe, error) {
	args := m.Called(ctx, ownerID)
	return recipesOrNil(args.Get(0)), args.Error(1)
}

// MockRecommendationService is a mock implementation of the recommendation service
type MockRecommendationService struct {
	mock.Mock
}

func (m *MockRecommendationService) Recommend(ctx context.Context, userID, recipeID uuid.UUID) error {
	args := m.Called(ctx, userID, recipeID)
	return args.Error(0)
}

func (m *MockRecommendationService) Unrecommend(ctx context.Context, userID, recipeID uuid.UUID) error {
	args := m.Called(ctx, userID, recipeID)
	return args.Error(0)
}

func (m *MockRecommendationService) IsRecommended(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, recipeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecommendationService) CountForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecommendationService) FavoritesForUser(ctx context.Context, userID uuid.UUID) ([]*model.Recipe, error) {
	args := m.Called(ctx, userID)
	return recipesOrNil(args.Get(0)), args.Error(1)
}

func recipeOrNil(v interface{}) *model.Recipe {
	if v == nil {
		return nil
	}
	return v.(*model.Recipe)
}

func recipesOrNil(v interface{}) []*model.Recipe {
	if v == nil {
		return nil
	}
	return v.([]*model.Recipe)
}
