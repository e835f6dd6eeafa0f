package testhelpers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/internal/logging"
	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/store"
)

// TestJWTSecret signs tokens issued by NewTestAuthService
const TestJWTSecret = "test-jwt-secret"

// NewTestAuthService returns an AuthService over users without a denylist
func NewTestAuthService(users store.UserStore) *service.AuthService {
	return service.NewAuthService(users, TestJWTSecret, time.Hour, nil, logging.Discard())
}

// CreateTestUser registers a user with a unique email and returns it with a session token
func CreateTestUser(t *testing.T, auth *service.AuthService) (*model.User, string) {
	t.Helper()

	suffix := uuid.NewString()[:8]
	user, err := auth.Register(context.Background(),
		fmt.Sprintf("user-%s@example.com", suffix), "password123", "user-"+suffix)
	require.NoError(t, err)

	token, err := auth.GenerateToken(user)
	require.NoError(t, err)
	return user, token
}

// SampleFields returns complete recipe contents with title
func SampleFields(title string) model.RecipeFields {
	return model.RecipeFields{
		Title:        title,
		Ingredients:  "2 eggs, 100g flour, 200ml milk",
		Instructions: "Whisk everything and fry in a hot pan.",
		Description:  "A simple " + title,
		Image:        "https://example.com/images/" + uuid.NewString() + ".jpg",
	}
}

// CreateTestRecipe inserts a recipe owned by ownerID directly through the store
func CreateTestRecipe(t *testing.T, recipes store.RecipeStore, ownerID uuid.UUID, title string) *model.Recipe {
	t.Helper()

	recipe := model.NewRecipe(ownerID, SampleFields(title))
	require.NoError(t, recipes.Insert(context.Background(), recipe))
	return recipe
}
