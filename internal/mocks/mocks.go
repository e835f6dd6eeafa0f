package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipeshare/backend/internal/service"
)

var _ service.IImageService = (*MockImageService)(nil)

// MockImageService is a mock implementation of the image service
type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) UploadRecipeImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, filename, contentType, body)
	return args.String(0), args.Error(1)
}
