package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ObjectUploader stores a blob and returns its public URL. config.S3Config implements it.
type ObjectUploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageService stores recipe images as-is in object storage
type ImageService struct {
	uploader ObjectUploader
	logger   *logrus.Logger
}

// Ensure ImageService implements IImageService
var _ IImageService = (*ImageService)(nil)

// NewImageService creates a new ImageService instance
func NewImageService(uploader ObjectUploader, logger *logrus.Logger) *ImageService {
	return &ImageService{
		uploader: uploader,
		logger:   logger,
	}
}

// UploadRecipeImage stores body under recipes/<uuid><ext> and returns its URL
func (s *ImageService) UploadRecipeImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	contentType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", validationError(fmt.Sprintf("unsupported image type %q", contentType))
	}
	if ext == ".jpg" && strings.EqualFold(filepath.Ext(filename), ".jpeg") {
		ext = ".jpeg"
	}

	key := fmt.Sprintf("recipes/%s%s", uuid.New(), ext)
	url, err := s.uploader.Upload(ctx, key, contentType, body)
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Error("failed to upload image")
		return "", storageError("failed to upload image", err)
	}

	s.logger.WithField("key", key).Info("recipe image uploaded")
	return url, nil
}
