package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/internal/logging"
	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/store"
	"github.com/pageza/recipeshare/backend/internal/store/gormstore"
	"github.com/pageza/recipeshare/backend/internal/testhelpers"
)

func setupCatalog(t *testing.T) (*service.CatalogService, *gormstore.Store) {
	s := testhelpers.SetupSQLiteStore(t)
	return service.NewCatalogService(s, logging.Discard()), s
}

func TestCreateRecipe(t *testing.T) {
	catalog, _ := setupCatalog(t)
	ctx := context.Background()
	owner := uuid.New()

	recipe, err := catalog.Create(ctx, owner, testhelpers.SampleFields("Pancakes"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, recipe.ID)
	assert.Equal(t, owner, recipe.OwnerID)
	assert.Equal(t, "Pancakes", recipe.Title)
	assert.Empty(t, recipe.RecommendList)

	got, err := catalog.GetOne(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.Fields(), got.Fields())
	assert.Equal(t, owner, got.OwnerID)
}

func TestCreateRecipeValidation(t *testing.T) {
	catalog, _ := setupCatalog(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(f *model.RecipeFields)
		missing string
	}{
		{"empty title", func(f *model.RecipeFields) { f.Title = "" }, "title"},
		{"whitespace ingredients", func(f *model.RecipeFields) { f.Ingredients = "  \t" }, "ingredients"},
		{"empty instructions", func(f *model.RecipeFields) { f.Instructions = "" }, "instructions"},
		{"empty description", func(f *model.RecipeFields) { f.Description = "" }, "description"},
		{"empty image", func(f *model.RecipeFields) { f.Image = "" }, "image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := testhelpers.SampleFields("Soup")
			tt.mutate(&fields)

			_, err := catalog.Create(ctx, uuid.New(), fields)
			require.Error(t, err)
			assert.True(t, errors.Is(err, service.ErrValidation))
			assert.Contains(t, err.Error(), tt.missing)
		})
	}

	all, err := catalog.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUpdateRecipe(t *testing.T) {
	catalog, s := setupCatalog(t)
	ctx := context.Background()
	owner, stranger := uuid.New(), uuid.New()

	recipe, err := catalog.Create(ctx, owner, testhelpers.SampleFields("Stew"))
	require.NoError(t, err)

	t.Run("owner can edit", func(t *testing.T) {
		fields := testhelpers.SampleFields("Better Stew")
		updated, err := catalog.Update(ctx, owner, recipe.ID, fields)
		require.NoError(t, err)
		assert.Equal(t, fields, updated.Fields())
		assert.Equal(t, owner, updated.OwnerID)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		_, err := s.AddRecommender(ctx, recipe.ID, stranger)
		require.NoError(t, err)
		before, err := catalog.GetOne(ctx, recipe.ID)
		require.NoError(t, err)

		_, err = catalog.Update(ctx, stranger, recipe.ID, testhelpers.SampleFields("Hijacked"))
		assert.ErrorIs(t, err, service.ErrForbidden)

		got, err := catalog.GetOne(ctx, recipe.ID)
		require.NoError(t, err)
		assert.Equal(t, before.Fields(), got.Fields())
		assert.Equal(t, before.OwnerID, got.OwnerID)
		assert.Equal(t, before.RecommendList, got.RecommendList)
		assert.True(t, before.UpdatedAt.Equal(got.UpdatedAt))
		assert.True(t, before.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("missing recipe", func(t *testing.T) {
		_, err := catalog.Update(ctx, owner, uuid.New(), testhelpers.SampleFields("Ghost"))
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("ownership is checked before validation", func(t *testing.T) {
		_, err := catalog.Update(ctx, stranger, recipe.ID, model.RecipeFields{})
		assert.ErrorIs(t, err, service.ErrForbidden)
	})

	t.Run("blank field rejected", func(t *testing.T) {
		fields := testhelpers.SampleFields("Stew")
		fields.Description = " "
		_, err := catalog.Update(ctx, owner, recipe.ID, fields)
		assert.ErrorIs(t, err, service.ErrValidation)
	})
}

func TestDeleteRecipe(t *testing.T) {
	catalog, s := setupCatalog(t)
	ctx := context.Background()
	owner, fan := uuid.New(), uuid.New()

	recipe, err := catalog.Create(ctx, owner, testhelpers.SampleFields("Tart"))
	require.NoError(t, err)
	_, err = s.AddRecommender(ctx, recipe.ID, fan)
	require.NoError(t, err)

	err = catalog.Delete(ctx, fan, recipe.ID)
	assert.ErrorIs(t, err, service.ErrForbidden)

	require.NoError(t, catalog.Delete(ctx, owner, recipe.ID))

	_, err = catalog.GetOne(ctx, recipe.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	count, err := s.CountRecommendedBy(ctx, fan)
	require.NoError(t, err)
	assert.Zero(t, count)

	err = catalog.Delete(ctx, owner, recipe.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestListViews(t *testing.T) {
	catalog, s := setupCatalog(t)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	base := time.Now().Add(-time.Hour)
	var created []*model.Recipe
	for i, title := range []string{"Alpha", "Bravo", "Charlie", "Delta"} {
		owner := alice
		if i%2 == 1 {
			owner = bob
		}
		recipe := model.NewRecipe(owner, testhelpers.SampleFields(title))
		recipe.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, s.Insert(ctx, recipe))
		created = append(created, recipe)
	}

	all, err := catalog.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	last, err := catalog.GetLastThree(ctx)
	require.NoError(t, err)
	require.Len(t, last, 3)
	assert.Equal(t, created[3].ID, last[0].ID)
	assert.Equal(t, created[2].ID, last[1].ID)
	assert.Equal(t, created[1].ID, last[2].ID)

	mine, err := catalog.GetUserRecipes(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, r := range mine {
		assert.Equal(t, alice, r.OwnerID)
	}

	_, err = s.AddRecommender(ctx, created[0].ID, bob)
	require.NoError(t, err)
	popular, err := catalog.GetMostPopular(ctx)
	require.NoError(t, err)
	require.Len(t, popular, 4)
	assert.Equal(t, created[0].ID, popular[0].ID)
}

func TestLastThreeWithFewRecipes(t *testing.T) {
	catalog, _ := setupCatalog(t)
	ctx := context.Background()

	last, err := catalog.GetLastThree(ctx)
	require.NoError(t, err)
	assert.Empty(t, last)

	_, err = catalog.Create(ctx, uuid.New(), testhelpers.SampleFields("Only"))
	require.NoError(t, err)

	last, err = catalog.GetLastThree(ctx)
	require.NoError(t, err)
	assert.Len(t, last, 1)
}

func TestSearchRecipes(t *testing.T) {
	catalog, _ := setupCatalog(t)
	ctx := context.Background()
	owner := uuid.New()

	_, err := catalog.Create(ctx, owner, testhelpers.SampleFields("Lemon Tart"))
	require.NoError(t, err)
	_, err = catalog.Create(ctx, owner, testhelpers.SampleFields("Onion Soup"))
	require.NoError(t, err)

	results, err := catalog.Search(ctx, "lemon")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Lemon Tart", results[0].Title)

	// Every sample shares its ingredients
	results, err = catalog.Search(ctx, "FLOUR")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	_, err = catalog.Create(ctx, owner, testhelpers.SampleFields("CRÈME BRÛLÉE"))
	require.NoError(t, err)
	for _, term := range []string{"CRÈME", "crème", "brûlée"} {
		results, err = catalog.Search(ctx, term)
		require.NoError(t, err)
		require.Len(t, results, 1, "term %q", term)
		assert.Equal(t, "CRÈME BRÛLÉE", results[0].Title)
	}

	results, err = catalog.Search(ctx, "   ")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

type failingStore struct {
	store.RecipeStore
}

func (failingStore) Get(context.Context, uuid.UUID) (*model.Recipe, error) {
	return nil, errors.New("connection reset")
}

func (failingStore) List(context.Context) ([]*model.Recipe, error) {
	return nil, errors.New("connection reset")
}

func TestStorageFailure(t *testing.T) {
	catalog := service.NewCatalogService(failingStore{}, logging.Discard())

	_, err := catalog.GetAll(context.Background())
	assert.ErrorIs(t, err, service.ErrStorage)
	assert.Equal(t, service.KindStorage, service.KindOf(err))

	_, err = catalog.GetOne(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrStorage)
	assert.NotErrorIs(t, err, service.ErrNotFound)
}
