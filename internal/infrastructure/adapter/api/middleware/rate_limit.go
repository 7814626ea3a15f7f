package middleware

import (
	"net/http"
	"sync"

	domainerr "github.com/columbia6/time/internal/domain/error"
	coreport "github.com/columbia6/time/internal/domain/port/core"
	"github.com/columbia6/time/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter applies a token bucket limit across all API requests. Its
// settings can be updated at runtime when the configuration file changes.
type RateLimiter struct {
	mu      sync.RWMutex
	limiter *rate.Limiter
	enabled bool
	logger  coreport.Logger
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(enabled bool, requestsPerSecond float64, burst int, logger coreport.Logger) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		enabled: enabled,
		logger:  logger,
	}
}

// Update applies new rate limit settings without losing bucket state
func (r *RateLimiter) Update(enabled bool, requestsPerSecond float64, burst int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.enabled = enabled
	r.limiter.SetLimit(rate.Limit(requestsPerSecond))
	r.limiter.SetBurst(burst)

	r.logger.Info("Rate limit settings updated", map[string]any{
		"enabled":             enabled,
		"requests_per_second": requestsPerSecond,
		"burst":               burst,
	})
}

// Handler returns the gin middleware enforcing the limit
func (r *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		r.mu.RLock()
		enabled := r.enabled
		limiter := r.limiter
		r.mu.RUnlock()

		if enabled && !limiter.Allow() {
			r.logger.Warn("Request rejected by rate limiter", map[string]any{
				"path":      c.Request.URL.Path,
				"client_ip": c.ClientIP(),
			})
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Code:  domainerr.ErrorCode(domainerr.ErrRateLimited),
				Error: domainerr.ErrRateLimited.Error(),
			})
			return
		}

		c.Next()
	}
}
