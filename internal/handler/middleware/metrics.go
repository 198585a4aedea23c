package middleware

import (
	"time"

	"court-booking-engine/internal/infra/metrics"

	"github.com/gin-gonic/gin"
)

// HTTPMetrics records every request under its route template, or "unmatched".
func HTTPMetrics(m *metrics.BookingMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
