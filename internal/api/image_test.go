package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/internal/mocks"
	"github.com/pageza/recipeshare/backend/internal/service"
)

func imageRequest(t *testing.T, field, filename, contentType string, data []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(testUserHeader, uuid.NewString())
	return req
}

func setupImageRouter() (*gin.Engine, *mocks.MockImageService) {
	gin.SetMode(gin.TestMode)
	images := &mocks.MockImageService{}

	router := gin.New()
	NewImageHandler(images).RegisterRoutes(router.Group("/api/v1"), testAuth())
	return router, images
}

func TestUploadImageHandler(t *testing.T) {
	router, images := setupImageRouter()
	images.On("UploadRecipeImage", mock.Anything, "dish.png", "image/png", mock.Anything).
		Return("https://bucket.s3.eu-west-1.amazonaws.com/recipes/abc.png", nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, imageRequest(t, "image", "dish.png", "image/png", []byte("pixels")))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"image":"https://bucket.s3.eu-west-1.amazonaws.com/recipes/abc.png"}`, w.Body.String())
	images.AssertExpectations(t)
}

func TestUploadImageHandlerErrors(t *testing.T) {
	router, images := setupImageRouter()
	images.On("UploadRecipeImage", mock.Anything, "notes.txt", "text/plain", mock.Anything).
		Return("", &service.Error{Kind: service.KindValidation, Message: `unsupported image type "text/plain"`})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, imageRequest(t, "file", "dish.png", "image/png", []byte("pixels")))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, imageRequest(t, "image", "notes.txt", "text/plain", []byte("hello")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unsupported image type")
}
