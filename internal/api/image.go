package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

const maxImageSize = 10 << 20

// ImageHandler accepts recipe image uploads
type ImageHandler struct {
	images service.IImageService
}

func NewImageHandler(images service.IImageService) *ImageHandler {
	return &ImageHandler{images: images}
}

func (h *ImageHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	router.POST("/catalog/images", requireAuth, h.Upload)
}

// Upload stores the multipart "image" file and returns its URL
func (h *ImageHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageSize)

	header, err := c.FormFile("image")
	if err != nil {
		badRequest(c, "an image file is required")
		return
	}
	if header.Size > maxImageSize {
		badRequest(c, "image is too large")
		return
	}

	file, err := header.Open()
	if err != nil {
		badRequest(c, "unreadable image file")
		return
	}
	defer file.Close()

	url, err := h.images.UploadRecipeImage(c.Request.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, types.ImageUploadResponse{URL: url})
}
