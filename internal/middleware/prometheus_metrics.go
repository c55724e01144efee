package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/conectapro/backend/internal/metrics"
)

// Metrics records request counts and latency per route. The route template
// (c.FullPath) is used instead of the raw path to keep label cardinality
// bounded.
func Metrics() gin.HandlerFunc {
	m := metrics.Get()

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
	}
}
