package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/metrics"
)

// Metrics records request counts and latency by route template
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}
