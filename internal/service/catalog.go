package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/store"
	"github.com/pageza/recipeshare/backend/internal/validation"
)

// lastRecipesCount is the size of the "latest recipes" view
const lastRecipesCount = 3

// CatalogService validates and applies recipe mutations and serves the read views
type CatalogService struct {
	store  store.RecipeStore
	logger *logrus.Logger
}

// Ensure CatalogService implements ICatalogService
var _ ICatalogService = (*CatalogService)(nil)

// NewCatalogService creates a new CatalogService instance
func NewCatalogService(recipes store.RecipeStore, logger *logrus.Logger) *CatalogService {
	return &CatalogService{
		store:  recipes,
		logger: logger,
	}
}

// Create stores a new recipe owned by ownerID with an empty recommend list
func (s *CatalogService) Create(ctx context.Context, ownerID uuid.UUID, fields model.RecipeFields) (*model.Recipe, error) {
	if err := validateFields(fields); err != nil {
		return nil, err
	}

	recipe := model.NewRecipe(ownerID, fields)
	if err := s.store.Insert(ctx, recipe); err != nil {
		return nil, s.storageFailure("failed to create recipe", err)
	}

	s.logger.WithFields(logrus.Fields{
		"recipe_id": recipe.ID,
		"owner_id":  ownerID,
	}).Info("recipe created")
	return recipe, nil
}

// Update replaces the content fields of a recipe owned by requesterID
func (s *CatalogService) Update(ctx context.Context, requesterID, id uuid.UUID, fields model.RecipeFields) (*model.Recipe, error) {
	if _, err := s.ownedRecipe(ctx, requesterID, id, "edit"); err != nil {
		return nil, err
	}
	if err := validateFields(fields); err != nil {
		return nil, err
	}

	recipe, err := s.store.UpdateFields(ctx, id, fields)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, recipeNotFound(id)
		}
		return nil, s.storageFailure("failed to update recipe", err)
	}

	s.logger.WithField("recipe_id", id).Info("recipe updated")
	return recipe, nil
}

// Delete removes a recipe owned by requesterID together with its recommendations
func (s *CatalogService) Delete(ctx context.Context, requesterID, id uuid.UUID) error {
	if _, err := s.ownedRecipe(ctx, requesterID, id, "delete"); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return recipeNotFound(id)
		}
		return s.storageFailure("failed to delete recipe", err)
	}

	s.logger.WithField("recipe_id", id).Info("recipe deleted")
	return nil
}

// GetOne returns a single recipe including its owner and recommend list
func (s *CatalogService) GetOne(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	return s.getRecipe(ctx, id)
}

// GetAll returns every recipe, oldest first
func (s *CatalogService) GetAll(ctx context.Context) ([]*model.Recipe, error) {
	recipes, err := s.store.List(ctx)
	if err != nil {
		return nil, s.storageFailure("failed to fetch recipes", err)
	}
	return recipes, nil
}

// GetLastThree returns up to three recipes, newest first
func (s *CatalogService) GetLastThree(ctx context.Context) ([]*model.Recipe, error) {
	recipes, err := s.store.LastN(ctx, lastRecipesCount)
	if err != nil {
		return nil, s.storageFailure("failed to fetch latest recipes", err)
	}
	return recipes, nil
}

// GetMostPopular returns all recipes ordered by recommendation count, highest first
func (s *CatalogService) GetMostPopular(ctx context.Context) ([]*model.Recipe, error) {
	recipes, err := s.store.MostPopular(ctx)
	if err != nil {
		return nil, s.storageFailure("failed to fetch most popular recipes", err)
	}
	return recipes, nil
}

// Search matches term against the indexed recipe fields. A blank term
// yields an empty result without touching the store.
func (s *CatalogService) Search(ctx context.Context, term string) ([]*model.Recipe, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []*model.Recipe{}, nil
	}

	recipes, err := s.store.Search(ctx, term)
	if err != nil {
		return nil, s.storageFailure("failed to search recipes", err)
	}
	return recipes, nil
}

// GetUserRecipes returns the recipes owned by ownerID
func (s *CatalogService) GetUserRecipes(ctx context.Context, ownerID uuid.UUID) ([]*model.Recipe, error) {
	recipes, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, s.storageFailure("failed to fetch user recipes", err)
	}
	return recipes, nil
}

// ownedRecipe loads a recipe and checks that requesterID may perform action on it
func (s *CatalogService) ownedRecipe(ctx context.Context, requesterID, id uuid.UUID, action string) (*model.Recipe, error) {
	recipe, err := s.getRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if !recipe.IsOwnedBy(requesterID) {
		s.logger.WithFields(logrus.Fields{
			"recipe_id": id,
			"user_id":   requesterID,
			"action":    action,
		}).Warn("non-owner attempted to modify recipe")
		return nil, forbiddenError(fmt.Sprintf("only the owner can %s this recipe", action))
	}
	return recipe, nil
}

func (s *CatalogService) getRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	recipe, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, recipeNotFound(id)
		}
		return nil, s.storageFailure("failed to fetch recipe", err)
	}
	return recipe, nil
}

func (s *CatalogService) storageFailure(msg string, err error) error {
	s.logger.WithError(err).Error(msg)
	return storageError(msg, err)
}

func validateFields(fields model.RecipeFields) error {
	missing, err := validation.Struct(fields)
	if err != nil {
		return validationError(err.Error())
	}
	if len(missing) > 0 {
		return validationError("all fields are required: missing " + strings.Join(missing, ", "))
	}
	return nil
}

func recipeNotFound(id uuid.UUID) error {
	return notFoundError(fmt.Sprintf("recipe %s not found", id))
}
