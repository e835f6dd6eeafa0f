package service_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/internal/logging"
	"github.com/pageza/recipeshare/backend/internal/service"
)

type fakeUploader struct {
	key         string
	contentType string
	body        string
	err         error
}

func (u *fakeUploader) Upload(_ context.Context, key, contentType string, body io.Reader) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	u.key, u.contentType, u.body = key, contentType, string(data)
	return "https://bucket.example.com/" + key, nil
}

func TestUploadRecipeImage(t *testing.T) {
	uploader := &fakeUploader{}
	images := service.NewImageService(uploader, logging.Discard())

	url, err := images.UploadRecipeImage(context.Background(), "dish.PNG", "image/png", strings.NewReader("pixels"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(uploader.key, "recipes/"))
	assert.True(t, strings.HasSuffix(uploader.key, ".png"))
	assert.Equal(t, "image/png", uploader.contentType)
	assert.Equal(t, "pixels", uploader.body)
	assert.Equal(t, "https://bucket.example.com/"+uploader.key, url)
}

func TestUploadRecipeImageJPEGExtension(t *testing.T) {
	uploader := &fakeUploader{}
	images := service.NewImageService(uploader, logging.Discard())

	_, err := images.UploadRecipeImage(context.Background(), "photo.jpeg", "image/jpeg; charset=binary", strings.NewReader("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(uploader.key, ".jpeg"))
	assert.Equal(t, "image/jpeg", uploader.contentType)
}

func TestUploadRecipeImageRejectsType(t *testing.T) {
	uploader := &fakeUploader{}
	images := service.NewImageService(uploader, logging.Discard())

	_, err := images.UploadRecipeImage(context.Background(), "notes.txt", "text/plain", strings.NewReader("x"))
	assert.ErrorIs(t, err, service.ErrValidation)
	assert.Empty(t, uploader.key)
}

func TestUploadRecipeImageStorageError(t *testing.T) {
	images := service.NewImageService(&fakeUploader{err: errors.New("access denied")}, logging.Discard())

	_, err := images.UploadRecipeImage(context.Background(), "dish.gif", "image/gif", strings.NewReader("x"))
	assert.ErrorIs(t, err, service.ErrStorage)
}
