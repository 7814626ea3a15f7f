package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/columbia6/time/internal/infrastructure/adapter/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(limiter *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(limiter.Handler())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return router
}

func ping(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiterHandler(t *testing.T) {
	t.Run("should reject requests beyond the burst", func(t *testing.T) {
		limiter := NewRateLimiter(true, 1, 2, logger.NewNoopLogger())
		router := newLimitedRouter(limiter)

		assert.Equal(t, http.StatusOK, ping(router).Code)
		assert.Equal(t, http.StatusOK, ping(router).Code)

		w := ping(router)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, float64(4290), body["code"])
		assert.Equal(t, "too many requests", body["error"])
	})

	t.Run("should pass everything through when disabled", func(t *testing.T) {
		limiter := NewRateLimiter(false, 1, 1, logger.NewNoopLogger())
		router := newLimitedRouter(limiter)

		for i := 0; i < 10; i++ {
			assert.Equal(t, http.StatusOK, ping(router).Code)
		}
	})

	t.Run("should honor a runtime disable", func(t *testing.T) {
		limiter := NewRateLimiter(true, 1, 1, logger.NewNoopLogger())
		router := newLimitedRouter(limiter)

		assert.Equal(t, http.StatusOK, ping(router).Code)
		assert.Equal(t, http.StatusTooManyRequests, ping(router).Code)

		limiter.Update(false, 1, 1)

		assert.Equal(t, http.StatusOK, ping(router).Code)
	})
}
