package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestRecorder receives one observation per finished request
type RequestRecorder interface {
	RecordRequest(ctx context.Context, method, route string, status int, d time.Duration)
}

// HTTPMetrics records request count and latency keyed by route pattern.
// Unmatched routes are grouped under "unmatched" to bound cardinality.
func HTTPMetrics(rec RequestRecorder) gin.HandlerFunc {
	if rec == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		rec.RecordRequest(c.Request.Context(), c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
