package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipeshare/backend/internal/mocks"
	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

func setupAuthRouter() (*gin.Engine, *mocks.MockAuthService) {
	gin.SetMode(gin.TestMode)
	auth := &mocks.MockAuthService{}

	router := gin.New()
	NewAuthHandler(auth, CookieOptions{Name: "auth", MaxAge: time.Hour}).RegisterRoutes(router.Group("/api/v1"), testAuth())
	return router, auth
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestRegisterHandler(t *testing.T) {
	router, auth := setupAuthRouter()
	user := &model.User{ID: uuid.New(), Email: "cook@example.com", Username: "cook"}
	auth.On("Register", mock.Anything, "cook@example.com", "password123", "cook").Return(user, nil)
	auth.On("GenerateToken", user).Return("signed-token", nil)

	w := performRequest(t, router, http.MethodPost, "/api/v1/auth/register", types.RegisterRequest{
		Email:    "cook@example.com",
		Password: "password123",
		Username: "cook",
	}, nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	var body types.AuthResponse
	decodeBody(t, w, &body)
	assert.Equal(t, "signed-token", body.Token)
	assert.Equal(t, user.ID, body.User.ID)
	assert.NotContains(t, w.Body.String(), "password")

	cookie := findCookie(w.Result().Cookies(), "auth")
	if assert.NotNil(t, cookie) {
		assert.Equal(t, "signed-token", cookie.Value)
		assert.True(t, cookie.HttpOnly)
	}
}

func TestRegisterHandlerRejects(t *testing.T) {
	router, auth := setupAuthRouter()
	auth.On("Register", mock.Anything, "taken@example.com", "password123", "cook").Return(nil, service.ErrEmailTaken)

	w := performRequest(t, router, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "not-an-email", "password": "password123", "username": "cook",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(t, router, http.MethodPost, "/api/v1/auth/register", types.RegisterRequest{
		Email: "taken@example.com", Password: "password123", Username: "cook",
	}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"email already registered"}`, w.Body.String())
}

func TestLoginHandler(t *testing.T) {
	router, auth := setupAuthRouter()
	user := &model.User{ID: uuid.New(), Email: "cook@example.com", Username: "cook"}
	auth.On("Login", mock.Anything, "cook@example.com", "password123").Return(user, nil)
	auth.On("Login", mock.Anything, "cook@example.com", "wrong").Return(nil, service.ErrInvalidCredentials)
	auth.On("GenerateToken", user).Return("signed-token", nil)

	w := performRequest(t, router, http.MethodPost, "/api/v1/auth/login", types.LoginRequest{
		Email: "cook@example.com", Password: "password123",
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "signed-token")

	w = performRequest(t, router, http.MethodPost, "/api/v1/auth/login", types.LoginRequest{
		Email: "cook@example.com", Password: "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid credentials"}`, w.Body.String())
}

func TestLogoutHandler(t *testing.T) {
	router, auth := setupAuthRouter()
	user := uuid.New()
	auth.On("Logout", mock.Anything, "token-"+user.String()).Return(nil)

	w := performRequest(t, router, http.MethodPost, "/api/v1/auth/logout", nil, &user)

	assert.Equal(t, http.StatusOK, w.Code)
	cookie := findCookie(w.Result().Cookies(), "auth")
	if assert.NotNil(t, cookie) {
		assert.Empty(t, cookie.Value)
		assert.Less(t, cookie.MaxAge, 0)
	}
	auth.AssertExpectations(t)

	w = performRequest(t, router, http.MethodPost, "/api/v1/auth/logout", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
