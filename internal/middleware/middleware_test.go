package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/recipeshare/backend/internal/metrics"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rr.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, rr.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var logs bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&logs)
	logger.SetFormatter(&logrus.JSONFormatter{})

	router := gin.New()
	router.Use(RequestID(), RequestLogger(logger))
	router.GET("/missing", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))

	out := logs.String()
	assert.Contains(t, out, `"status":404`)
	assert.Contains(t, out, `"path":"/missing"`)
	assert.Contains(t, out, `"level":"warning"`)
	assert.Contains(t, out, rr.Header().Get(RequestIDHeader))
}

func TestMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := metrics.New()

	router := gin.New()
	router.Use(Metrics(m))
	router.GET("/catalog/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/catalog/123", nil))
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/catalog/:id", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("unmatched", "GET", "404")))
}
