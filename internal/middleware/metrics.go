package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"rfpcred/internal/pkg/metrics"
)

// Instrument records request counts and latency by matched route.
func Instrument(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, route, c.Writer.Status(), time.Since(start).Seconds())
	}
}
