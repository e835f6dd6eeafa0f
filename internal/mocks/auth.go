package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

var _ service.IAuthService = (*MockAuthService)(nil)

// MockAuthService is a mock implementation of the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, email, password, username string) (*model.User, error) {
	args := m.Called(ctx, email, password, username)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	args := m.Called(ctx, email, password)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) GenerateToken(user *model.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	return userOrNil(args.Get(0)), args.Error(1)
}

func userOrNil(v interface{}) *model.User {
	if v == nil {
		return nil
	}
	return v.(*model.User)
}
