package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/store"
	"github.com/pageza/recipeshare/backend/internal/types"
)

// TokenDenylist records revoked token ids until they would have expired anyway
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisDenylist stores revoked token ids as expiring redis keys
type RedisDenylist struct {
	client *redis.Client
	prefix string
}

// NewRedisDenylist creates a denylist on client
func NewRedisDenylist(client *redis.Client) *RedisDenylist {
	return &RedisDenylist{client: client, prefix: "revoked_token:"}
}

func (d *RedisDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, d.prefix+tokenID, "1", ttl).Err()
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.prefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AuthService registers users and issues and validates their session tokens
type AuthService struct {
	users     store.UserStore
	jwtSecret string
	tokenTTL  time.Duration
	denylist  TokenDenylist
	logger    *logrus.Logger
}

// Ensure AuthService implements IAuthService
var _ IAuthService = (*AuthService)(nil)

// NewAuthService creates a new AuthService. denylist may be nil, in which
// case logout cannot revoke tokens before they expire.
func NewAuthService(users store.UserStore, jwtSecret string, tokenTTL time.Duration, denylist TokenDenylist, logger *logrus.Logger) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		denylist:  denylist,
		logger:    logger,
	}
}

// Register creates an account with a bcrypt-hashed password
func (s *AuthService) Register(ctx context.Context, email, password, username string) (*model.User, error) {
	email = normalizeEmail(email)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     strings.TrimSpace(username),
		PasswordHash: string(hashedPassword),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.WithField("user_id", user.ID).Info("user registered")
	return user, nil
}

// Login checks the credentials and returns the matching user
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GenerateToken signs a session token for user
func (s *AuthService) GenerateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		UserID:   user.ID,
		Username: user.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses a session token and rejects expired or revoked ones
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == uuid.Nil {
		return nil, ErrInvalidToken
	}

	if s.denylist != nil && claims.ID != "" {
		revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			// Fail open while the denylist is unreachable
			s.logger.WithError(err).Warn("failed to check token denylist")
		} else if revoked {
			return nil, ErrTokenRevoked
		}
	}
	return claims, nil
}

// Logout revokes the token for the remainder of its lifetime
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.ValidateToken(ctx, tokenString)
	if err != nil {
		return err
	}
	if s.denylist == nil {
		return nil
	}

	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if err := s.denylist.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	s.logger.WithField("user_id", claims.UserID).Info("user logged out")
	return nil
}

// GetUserByID returns the account with the given id
func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundError(fmt.Sprintf("user %s not found", id))
		}
		return nil, storageError("failed to fetch user", err)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
