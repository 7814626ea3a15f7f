package middleware

import (
	"net/http"

	coreport "github.com/columbia6/time/internal/domain/port/core"
	"github.com/gin-gonic/gin"
)

// Logger returns a middleware that logs each request once it completes.
// Server errors are promoted to the error level so they stand out from
// ordinary traffic.
func Logger(logger coreport.Logger, clock coreport.Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := clock.Now()

		c.Next()

		status := c.Writer.Status()
		fields := map[string]any{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency_ms": float64(clock.Since(start).Microseconds()) / 1000.0,
			"ip":         c.ClientIP(),
		}
		if query := c.Request.URL.RawQuery; query != "" {
			fields["query"] = query
		}
		if requestID := c.GetHeader("X-Request-ID"); requestID != "" {
			fields["request_id"] = requestID
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.Errors()
		}

		if status >= http.StatusInternalServerError {
			logger.Error("Request failed", fields)
			return
		}
		logger.Info("Request processed", fields)
	}
}
