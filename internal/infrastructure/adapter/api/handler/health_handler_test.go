package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/columbia6/time/internal/infrastructure/adapter/logger"
	coremocks "github.com/columbia6/time/mocks/port/core"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newHealthRouter(activeTimers func() int, pingDB func(ctx context.Context) error) *gin.Engine {
	gin.SetMode(gin.TestMode)

	clock := &coremocks.MockClock{}
	clock.On("Now").Return(time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC))

	h := NewHealthHandler(clock, logger.NewNoopLogger(), activeTimers, pingDB)

	router := gin.New()
	router.GET("/health", h.Check)
	return router
}

func TestHealthHandlerCheck(t *testing.T) {
	t.Run("should report ok when the database responds", func(t *testing.T) {
		router := newHealthRouter(
			func() int { return 3 },
			func(ctx context.Context) error { return nil },
		)

		w := performRequest(router, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, "up", body["database"])
		assert.Equal(t, float64(3), body["activeTimers"])
		assert.Equal(t, "2026-01-15 12:00:00.000", body["time"])
	})

	t.Run("should degrade when the database ping fails", func(t *testing.T) {
		router := newHealthRouter(
			func() int { return 0 },
			func(ctx context.Context) error { return errors.New("connection refused") },
		)

		w := performRequest(router, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "degraded", body["status"])
		assert.Equal(t, "down", body["database"])
	})
}
