package gormstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/store"
)

// Store implements store.Store on top of gorm (postgres or sqlite)
type Store struct {
	db *gorm.DB
	// SQL function used to fold case on both sides of a search
	lower string
}

var _ store.Store = (*Store)(nil)

// New wraps an open gorm connection
func New(db *gorm.DB) *Store {
	lower := "LOWER"
	if db.Dialector.Name() == "sqlite" {
		lower = sqliteLower
	}
	return &Store{db: db, lower: lower}
}

// DB exposes the underlying connection for migrations and tests
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Ping checks if the database is accessible
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// recipes returns a query that loads the recommender set alongside each recipe
func (s *Store) recipes(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&model.Recipe{}).
		Preload("Recommendations", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC").Order("user_id ASC")
		})
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.recipes(ctx).Where("recipes.id = ?", id).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	fillRecommendList(&recipe)
	return &recipe, nil
}

func (s *Store) List(ctx context.Context) ([]*model.Recipe, error) {
	return s.find(s.recipes(ctx).Order("recipes.created_at ASC").Order("recipes.id ASC"))
}

func (s *Store) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Recipe, error) {
	return s.find(s.recipes(ctx).
		Where("recipes.owner_id = ?", ownerID).
		Order("recipes.created_at DESC").Order("recipes.id ASC"))
}

func (s *Store) LastN(ctx context.Context, n int) ([]*model.Recipe, error) {
	if n <= 0 {
		return []*model.Recipe{}, nil
	}
	return s.find(s.recipes(ctx).
		Order("recipes.created_at DESC").Order("recipes.id DESC").
		Limit(n))
}

func (s *Store) MostPopular(ctx context.Context) ([]*model.Recipe, error) {
	counts := s.db.WithContext(ctx).Model(&model.Recommendation{}).
		Select("recipe_id, COUNT(*) AS recommend_count").
		Group("recipe_id")

	return s.find(s.recipes(ctx).
		Joins("LEFT JOIN (?) AS popularity ON popularity.recipe_id = recipes.id", counts).
		Order("COALESCE(popularity.recommend_count, 0) DESC").
		Order("recipes.created_at DESC").
		Order("recipes.id ASC"))
}

var searchColumns = []string{"recipes.title", "recipes.ingredients", "recipes.instructions", "recipes.description"}

func (s *Store) Search(ctx context.Context, term string) ([]*model.Recipe, error) {
	like := "%" + escapeLike(term) + "%"
	match := make([]string, 0, len(searchColumns))
	for _, col := range searchColumns {
		match = append(match, fmt.Sprintf(`%[1]s(%[2]s) LIKE %[1]s(?) ESCAPE '\'`, s.lower, col))
	}
	cond := strings.Join(match, " OR ")
	return s.find(s.recipes(ctx).
		Where(cond, like, like, like, like).
		Order("recipes.created_at DESC").Order("recipes.id ASC"))
}

func (s *Store) Insert(ctx context.Context, recipe *model.Recipe) error {
	if recipe.ID == uuid.Nil {
		recipe.ID = uuid.New()
	}
	// The recommender set always starts empty
	recipe.Recommendations = nil
	if err := s.db.WithContext(ctx).Omit("Recommendations").Create(recipe).Error; err != nil {
		return err
	}
	recipe.RecommendList = []uuid.UUID{}
	return nil
}

func (s *Store) UpdateFields(ctx context.Context, id uuid.UUID, fields model.RecipeFields) (*model.Recipe, error) {
	result := s.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":        fields.Title,
			"ingredients":  fields.Ingredients,
			"instructions": fields.Instructions,
			"description":  fields.Description,
			"image":        fields.Image,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&model.Recommendation{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Recipe{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return store.ErrNotFound
		}
		return nil
	})
}

// AddRecommender relies on the (recipe_id, user_id) primary key: a second
// insert for the same pair is ignored by the database.
func (s *Store) AddRecommender(ctx context.Context, recipeID, userID uuid.UUID) (bool, error) {
	exists, err := s.exists(ctx, recipeID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, store.ErrNotFound
	}

	rec := model.Recommendation{RecipeID: recipeID, UserID: userID}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rec)
	if result.Error != nil {
		// The recipe may have been deleted since the existence check
		if exists, checkErr := s.exists(ctx, recipeID); checkErr == nil && !exists {
			return false, store.ErrNotFound
		}
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *Store) RemoveRecommender(ctx context.Context, recipeID, userID uuid.UUID) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Delete(&model.Recommendation{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *Store) IsRecommender(ctx context.Context, recipeID, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Recommendation{}).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) ListRecommendedBy(ctx context.Context, userID uuid.UUID) ([]*model.Recipe, error) {
	recommended := s.db.WithContext(ctx).Model(&model.Recommendation{}).
		Select("recipe_id").
		Where("user_id = ?", userID)

	return s.find(s.recipes(ctx).
		Where("recipes.id IN (?)", recommended).
		Order("recipes.created_at DESC").Order("recipes.id ASC"))
}

func (s *Store) CountRecommendedBy(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Recommendation{}).
		Joins("JOIN recipes ON recipes.id = recipe_recommendations.recipe_id").
		Where("recipe_recommendations.user_id = ? AND recipes.owner_id <> ?", userID, userID).
		Count(&count).Error
	return count, err
}

func (s *Store) exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (s *Store) find(query *gorm.DB) ([]*model.Recipe, error) {
	var recipes []model.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}

	result := make([]*model.Recipe, len(recipes))
	for i := range recipes {
		fillRecommendList(&recipes[i])
		result[i] = &recipes[i]
	}
	return result, nil
}

func fillRecommendList(recipe *model.Recipe) {
	recipe.RecommendList = make([]uuid.UUID, 0, len(recipe.Recommendations))
	for _, rec := range recipe.Recommendations {
		recipe.RecommendList = append(recipe.RecommendList, rec.UserID)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
