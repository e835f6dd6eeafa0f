package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var logs bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&logs)

	router := gin.New()
	router.Use(RequestID(), Recovery(logger))
	router.GET("/boom", func(c *gin.Context) {
		panic("kaboom")
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rr.Body.String())
	assert.Contains(t, logs.String(), "kaboom")
	assert.Contains(t, logs.String(), "recovered from panic")
}
