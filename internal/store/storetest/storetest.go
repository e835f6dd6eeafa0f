// Package storetest holds the behavioural tests every store.Store implementation must pass.
package storetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/store"
)

// Factory returns an empty store for one subtest
type Factory func(t *testing.T) store.Store

// Run exercises s against the store contract
func Run(t *testing.T, newStore Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s store.Store)
	}{
		{"InsertAndGet", testInsertAndGet},
		{"GetMissing", testGetMissing},
		{"ListOrdering", testListOrdering},
		{"LastN", testLastN},
		{"ListByOwner", testListByOwner},
		{"UpdateFields", testUpdateFields},
		{"Delete", testDelete},
		{"RecommenderSet", testRecommenderSet},
		{"RecommendMissingRecipe", testRecommendMissingRecipe},
		{"MostPopular", testMostPopular},
		{"Search", testSearch},
		{"RecommendedByUser", testRecommendedByUser},
		{"ConcurrentRecommend", testConcurrentRecommend},
		{"Users", testUsers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newStore(t))
		})
	}
}

var base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func insertAt(t *testing.T, s store.Store, owner uuid.UUID, title string, offset int) *model.Recipe {
	t.Helper()

	recipe := model.NewRecipe(owner, model.RecipeFields{
		Title:        title,
		Ingredients:  "flour, water",
		Instructions: "mix and bake",
		Description:  "about " + title,
		Image:        "https://example.com/" + title + ".jpg",
	})
	recipe.CreatedAt = base.Add(time.Duration(offset) * time.Minute)
	require.NoError(t, s.Insert(context.Background(), recipe))
	return recipe
}

func ids(recipes []*model.Recipe) []uuid.UUID {
	out := make([]uuid.UUID, len(recipes))
	for i, r := range recipes {
		out[i] = r.ID
	}
	return out
}

func testInsertAndGet(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner := uuid.New()
	created := insertAt(t, s, owner, "bread", 0)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, owner, got.OwnerID)
	assert.Equal(t, created.Fields(), got.Fields())
	assert.NotNil(t, got.RecommendList)
	assert.Empty(t, got.RecommendList)
}

func testGetMissing(t *testing.T, s store.Store) {
	_, err := s.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testListOrdering(t *testing.T, s store.Store) {
	owner := uuid.New()
	second := insertAt(t, s, owner, "second", 2)
	first := insertAt(t, s, owner, "first", 1)
	third := insertAt(t, s, owner, "third", 3)

	recipes, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first.ID, second.ID, third.ID}, ids(recipes))
}

func testLastN(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner := uuid.New()

	empty, err := s.LastN(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, empty)

	var created []*model.Recipe
	for i := 0; i < 5; i++ {
		created = append(created, insertAt(t, s, owner, "recipe", i))
	}

	recipes, err := s.LastN(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{created[4].ID, created[3].ID, created[2].ID}, ids(recipes))

	none, err := s.LastN(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testListByOwner(t *testing.T, s store.Store) {
	alice, bob := uuid.New(), uuid.New()
	a1 := insertAt(t, s, alice, "a1", 1)
	insertAt(t, s, bob, "b1", 2)
	a2 := insertAt(t, s, alice, "a2", 3)

	recipes, err := s.ListByOwner(context.Background(), alice)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{a1.ID, a2.ID}, ids(recipes))

	none, err := s.ListByOwner(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testUpdateFields(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner, fan := uuid.New(), uuid.New()
	recipe := insertAt(t, s, owner, "soup", 0)
	_, err := s.AddRecommender(ctx, recipe.ID, fan)
	require.NoError(t, err)

	fields := model.RecipeFields{
		Title:        "better soup",
		Ingredients:  "leeks, potatoes",
		Instructions: "simmer",
		Description:  "thicker",
		Image:        "https://example.com/soup2.jpg",
	}
	updated, err := s.UpdateFields(ctx, recipe.ID, fields)
	require.NoError(t, err)
	assert.Equal(t, fields, updated.Fields())
	assert.Equal(t, owner, updated.OwnerID)
	assert.Equal(t, []uuid.UUID{fan}, updated.RecommendList)

	_, err = s.UpdateFields(ctx, uuid.New(), fields)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testDelete(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner, fan := uuid.New(), uuid.New()
	recipe := insertAt(t, s, owner, "cake", 0)
	_, err := s.AddRecommender(ctx, recipe.ID, fan)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, recipe.ID))

	_, err = s.Get(ctx, recipe.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	favorites, err := s.ListRecommendedBy(ctx, fan)
	require.NoError(t, err)
	assert.Empty(t, favorites)

	count, err := s.CountRecommendedBy(ctx, fan)
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.ErrorIs(t, s.Delete(ctx, recipe.ID), store.ErrNotFound)
}

func testRecommenderSet(t *testing.T, s store.Store) {
	ctx := context.Background()
	recipe := insertAt(t, s, uuid.New(), "pie", 0)
	fan := uuid.New()

	added, err := s.AddRecommender(ctx, recipe.ID, fan)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.AddRecommender(ctx, recipe.ID, fan)
	require.NoError(t, err)
	assert.False(t, added)

	got, err := s.Get(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{fan}, got.RecommendList)

	ok, err := s.IsRecommender(ctx, recipe.ID, fan)
	require.NoError(t, err)
	assert.True(t, ok)

	removed, err := s.RemoveRecommender(ctx, recipe.ID, fan)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.RemoveRecommender(ctx, recipe.ID, fan)
	require.NoError(t, err)
	assert.False(t, removed)

	ok, err = s.IsRecommender(ctx, recipe.ID, fan)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err = s.Get(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Empty(t, got.RecommendList)
}

func testRecommendMissingRecipe(t *testing.T, s store.Store) {
	ctx := context.Background()

	_, err := s.AddRecommender(ctx, uuid.New(), uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)

	ok, err := s.IsRecommender(ctx, uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}

func testMostPopular(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner := uuid.New()
	quiet := insertAt(t, s, owner, "quiet", 1)
	loved := insertAt(t, s, owner, "loved", 2)
	liked := insertAt(t, s, owner, "liked", 3)
	newest := insertAt(t, s, owner, "newest", 4)

	for i := 0; i < 3; i++ {
		_, err := s.AddRecommender(ctx, loved.ID, uuid.New())
		require.NoError(t, err)
	}
	_, err := s.AddRecommender(ctx, liked.ID, uuid.New())
	require.NoError(t, err)

	recipes, err := s.MostPopular(ctx)
	require.NoError(t, err)
	// Equal counts fall back to newest first
	assert.Equal(t, []uuid.UUID{loved.ID, liked.ID, newest.ID, quiet.ID}, ids(recipes))
	assert.Len(t, recipes[0].RecommendList, 3)
	assert.Equal(t, 3, recipes[0].Popularity())
}

func testSearch(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner := uuid.New()

	curry := model.NewRecipe(owner, model.RecipeFields{
		Title:        "Green Curry",
		Ingredients:  "coconut milk, basil",
		Instructions: "simmer gently",
		Description:  "Thai classic",
		Image:        "https://example.com/curry.jpg",
	})
	salad := model.NewRecipe(owner, model.RecipeFields{
		Title:        "Summer Salad",
		Ingredients:  "tomatoes, BASIL",
		Instructions: "toss",
		Description:  "100% fresh",
		Image:        "https://example.com/salad.jpg",
	})
	require.NoError(t, s.Insert(ctx, curry))
	require.NoError(t, s.Insert(ctx, salad))

	byTitle, err := s.Search(ctx, "curry")
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{curry.ID}, ids(byTitle))

	byIngredient, err := s.Search(ctx, "Basil")
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{curry.ID, salad.ID}, ids(byIngredient))

	byInstructions, err := s.Search(ctx, "SIMMER")
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{curry.ID}, ids(byInstructions))

	literal, err := s.Search(ctx, "100%")
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{salad.ID}, ids(literal))

	wildcard, err := s.Search(ctx, "%")
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{salad.ID}, ids(wildcard))

	none, err := s.Search(ctx, "lasagne")
	require.NoError(t, err)
	assert.Empty(t, none)

	dessert := model.NewRecipe(owner, model.RecipeFields{
		Title:        "CRÈME BRÛLÉE",
		Ingredients:  "cream, sugar, vanilla",
		Instructions: "bake in a water bath",
		Description:  "Torched custard",
		Image:        "https://example.com/creme.jpg",
	})
	require.NoError(t, s.Insert(ctx, dessert))

	for _, term := range []string{"CRÈME", "crème", "Brûlée", "ÈME BRÛ"} {
		found, err := s.Search(ctx, term)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{dessert.ID}, ids(found), "term %q", term)
	}
}

func testRecommendedByUser(t *testing.T, s store.Store) {
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()
	own := insertAt(t, s, alice, "own", 1)
	other := insertAt(t, s, bob, "other", 2)
	insertAt(t, s, bob, "unliked", 3)

	// The store does not enforce ownership rules
	_, err := s.AddRecommender(ctx, own.ID, alice)
	require.NoError(t, err)
	_, err = s.AddRecommender(ctx, other.ID, alice)
	require.NoError(t, err)

	favorites, err := s.ListRecommendedBy(ctx, alice)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{own.ID, other.ID}, ids(favorites))

	count, err := s.CountRecommendedBy(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = s.CountRecommendedBy(ctx, bob)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func testConcurrentRecommend(t *testing.T, s store.Store) {
	ctx := context.Background()
	recipe := insertAt(t, s, uuid.New(), "popular", 0)

	const workers = 10
	fan := uuid.New()
	others := make([]uuid.UUID, workers)
	for i := range others {
		others[i] = uuid.New()
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		adds int
		errs []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			added, err := s.AddRecommender(ctx, recipe.ID, fan)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
			}
			if added {
				adds++
			}
		}()
		go func(user uuid.UUID) {
			defer wg.Done()
			if _, err := s.AddRecommender(ctx, recipe.ID, user); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(others[i])
	}
	wg.Wait()

	require.Empty(t, errs)
	assert.Equal(t, 1, adds)

	got, err := s.Get(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Len(t, got.RecommendList, workers+1)
	assert.ElementsMatch(t, append([]uuid.UUID{fan}, others...), got.RecommendList)
}

func testUsers(t *testing.T, s store.Store) {
	ctx := context.Background()
	user := &model.User{
		ID:           uuid.New(),
		Email:        "cook@example.com",
		Username:     "cook",
		PasswordHash: "hash",
	}
	require.NoError(t, s.CreateUser(ctx, user))

	dup := &model.User{ID: uuid.New(), Email: "cook@example.com", Username: "copy", PasswordHash: "hash"}
	assert.ErrorIs(t, s.CreateUser(ctx, dup), store.ErrDuplicate)

	byEmail, err := s.GetUserByEmail(ctx, "cook@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	byID, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "cook", byID.Username)

	_, err = s.GetUserByID(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
