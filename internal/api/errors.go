package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/service"
)

// statusFor maps a service error to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrTokenRevoked):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict
	}

	switch service.KindOf(err) {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": message}. Internal failures never leak their cause.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)

	message := err.Error()
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		message = svcErr.Message
	}
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	c.JSON(status, gin.H{"error": message})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
}
