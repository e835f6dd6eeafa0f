package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/recipeshare/backend/internal/types"
)

type stubValidator struct {
	tokens map[string]uuid.UUID
}

func (v stubValidator) ValidateToken(_ context.Context, token string) (*types.TokenClaims, error) {
	id, ok := v.tokens[token]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return &types.TokenClaims{UserID: id, Username: "cook"}, nil
}

func setupAuthRouter() (*gin.Engine, uuid.UUID) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	validator := stubValidator{tokens: map[string]uuid.UUID{"good": userID}}

	router := gin.New()
	router.GET("/me", AuthMiddleware(validator, "auth"), func(c *gin.Context) {
		id, ok := UserID(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"user_id": ""})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": id.String()})
	})
	return router, userID
}

func TestAuthMiddleware(t *testing.T) {
	router, userID := setupAuthRouter()

	tests := []struct {
		name       string
		prepare    func(r *http.Request)
		wantStatus int
	}{
		{"bearer header", func(r *http.Request) { r.Header.Set("Authorization", "Bearer good") }, http.StatusOK},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "auth", Value: "good"}) }, http.StatusOK},
		{"missing", func(r *http.Request) {}, http.StatusUnauthorized},
		{"bad scheme", func(r *http.Request) { r.Header.Set("Authorization", "Basic good") }, http.StatusUnauthorized},
		{"unknown token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer bad") }, http.StatusUnauthorized},
		{"wrong cookie name", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "session", Value: "good"}) }, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tt.prepare(req)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, rr.Body.String(), userID.String())
			} else {
				assert.Contains(t, rr.Body.String(), "error")
			}
		})
	}
}
