package handler

import (
	"context"
	"net/http"

	"github.com/columbia6/time/internal/domain/entity"
	coreport "github.com/columbia6/time/internal/domain/port/core"
	"github.com/columbia6/time/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// HealthHandler handles the service health endpoint
type HealthHandler struct {
	clock        coreport.Clock
	logger       coreport.Logger
	activeTimers func() int
	pingDB       func(ctx context.Context) error
}

// NewHealthHandler creates a new health handler instance
func NewHealthHandler(
	clock coreport.Clock,
	logger coreport.Logger,
	activeTimers func() int,
	pingDB func(ctx context.Context) error,
) *HealthHandler {
	return &HealthHandler{
		clock:        clock,
		logger:       logger,
		activeTimers: activeTimers,
		pingDB:       pingDB,
	}
}

// Check handles the GET /health endpoint
func (h *HealthHandler) Check(c *gin.Context) {
	resp := dto.HealthResponse{
		Status:       "ok",
		Time:         entity.FormatDate(entity.MomentFromTime(h.clock.Now()), "yyyy-MM-dd HH:mm:ss.SSS"),
		ActiveTimers: h.activeTimers(),
		Database:     "up",
	}

	status := http.StatusOK
	if err := h.pingDB(c.Request.Context()); err != nil {
		h.logger.Warn("Health check database ping failed", map[string]any{
			"error": err.Error(),
		})
		resp.Status = "degraded"
		resp.Database = "down"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, resp)
}
