package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pageza/recipeshare/backend/internal/metrics"
	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/store"
)

// RecommendationService manages the per-recipe set of recommending users.
// Recommend and Unrecommend are idempotent: repeating either leaves the
// set as a single call would.
type RecommendationService struct {
	store   store.RecipeStore
	logger  *logrus.Logger
	metrics *metrics.Metrics
}

// Ensure RecommendationService implements IRecommendationService
var _ IRecommendationService = (*RecommendationService)(nil)

// NewRecommendationService creates a new RecommendationService. m may be nil.
func NewRecommendationService(recipes store.RecipeStore, logger *logrus.Logger, m *metrics.Metrics) *RecommendationService {
	return &RecommendationService{
		store:   recipes,
		logger:  logger,
		metrics: m,
	}
}

// Recommend adds userID to the recipe's recommenders. Owners cannot recommend their own recipe.
func (s *RecommendationService) Recommend(ctx context.Context, userID, recipeID uuid.UUID) error {
	recipe, err := s.store.Get(ctx, recipeID)
	if err != nil {
		return s.translate(err, recipeID, "failed to fetch recipe")
	}
	if recipe.IsOwnedBy(userID) {
		return forbiddenError("owners cannot recommend their own recipe")
	}

	added, err := s.store.AddRecommender(ctx, recipeID, userID)
	if err != nil {
		return s.translate(err, recipeID, "failed to recommend recipe")
	}

	s.metrics.ObserveRecommendation("recommend", added)
	s.logger.WithFields(logrus.Fields{
		"recipe_id": recipeID,
		"user_id":   userID,
		"changed":   added,
	}).Debug("recipe recommended")
	return nil
}

// Unrecommend removes userID from the recipe's recommenders
func (s *RecommendationService) Unrecommend(ctx context.Context, userID, recipeID uuid.UUID) error {
	if _, err := s.store.Get(ctx, recipeID); err != nil {
		return s.translate(err, recipeID, "failed to fetch recipe")
	}

	removed, err := s.store.RemoveRecommender(ctx, recipeID, userID)
	if err != nil {
		return s.translate(err, recipeID, "failed to unrecommend recipe")
	}

	s.metrics.ObserveRecommendation("unrecommend", removed)
	s.logger.WithFields(logrus.Fields{
		"recipe_id": recipeID,
		"user_id":   userID,
		"changed":   removed,
	}).Debug("recipe unrecommended")
	return nil
}

// IsRecommended reports whether userID currently recommends the recipe
func (s *RecommendationService) IsRecommended(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	ok, err := s.store.IsRecommender(ctx, recipeID, userID)
	if err != nil {
		return false, s.translate(err, recipeID, "failed to check recommendation")
	}
	return ok, nil
}

// CountForUser counts the recipes userID recommends, not counting recipes userID owns
func (s *RecommendationService) CountForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := s.store.CountRecommendedBy(ctx, userID)
	if err != nil {
		return 0, s.storageFailure("failed to count recommendations", err)
	}
	return n, nil
}

// FavoritesForUser returns every recipe userID recommends
func (s *RecommendationService) FavoritesForUser(ctx context.Context, userID uuid.UUID) ([]*model.Recipe, error) {
	recipes, err := s.store.ListRecommendedBy(ctx, userID)
	if err != nil {
		return nil, s.storageFailure("failed to fetch favorites", err)
	}
	return recipes, nil
}

func (s *RecommendationService) translate(err error, recipeID uuid.UUID, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return recipeNotFound(recipeID)
	}
	return s.storageFailure(msg, err)
}

func (s *RecommendationService) storageFailure(msg string, err error) error {
	s.logger.WithError(err).Error(msg)
	return storageError(msg, err)
}
