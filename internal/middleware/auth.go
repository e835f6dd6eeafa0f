package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipeshare/backend/internal/types"
)

// Context keys set by the auth middleware
const (
	UserIDKey   = "user_id"
	UsernameKey = "username"
	TokenKey    = "token"
)

// TokenValidator is an interface for validating session tokens
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
}

var errMissingToken = errors.New("missing authorization token")

// AuthMiddleware rejects requests without a valid session token. The token is
// read from the Authorization header or, failing that, from the named cookie.
func AuthMiddleware(validator TokenValidator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authenticate(c, validator, cookieName); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, validator TokenValidator, cookieName string) error {
	token, err := TokenFromRequest(c, cookieName)
	if err != nil {
		return err
	}

	claims, err := validator.ValidateToken(c.Request.Context(), token)
	if err != nil {
		return err
	}

	// Store user info in context
	c.Set(UserIDKey, claims.UserID)
	c.Set(UsernameKey, claims.Username)
	c.Set(TokenKey, token)
	return nil
}

// TokenFromRequest extracts the bearer token from the header or cookie
func TokenFromRequest(c *gin.Context, cookieName string) (string, error) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", errors.New("invalid authorization header format")
		}
		return strings.TrimSpace(parts[1]), nil
	}

	if cookieName != "" {
		if token, err := c.Cookie(cookieName); err == nil && token != "" {
			return token, nil
		}
	}
	return "", errMissingToken
}

// UserID returns the authenticated caller, if any
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}
