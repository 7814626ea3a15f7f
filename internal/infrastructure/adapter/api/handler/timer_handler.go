package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/columbia6/time/internal/domain/entity"
	domainerr "github.com/columbia6/time/internal/domain/error"
	coreport "github.com/columbia6/time/internal/domain/port/core"
	"github.com/columbia6/time/internal/domain/port/usecase"
	"github.com/columbia6/time/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// TimerHandler handles delay and timer-related HTTP requests
type TimerHandler struct {
	timerUseCase usecase.TimerUseCase
	logger       coreport.Logger
}

// NewTimerHandler creates a new timer handler instance
func NewTimerHandler(
	timerUseCase usecase.TimerUseCase,
	logger coreport.Logger,
) *TimerHandler {
	return &TimerHandler{
		timerUseCase: timerUseCase,
		logger:       logger,
	}
}

// Delay handles the POST /delay endpoint. The request is held open until
// the delay resolves; a client disconnect cancels it through the request
// context.
func (h *TimerHandler) Delay(c *gin.Context) {
	var req dto.DelayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.timerUseCase.Delay(c.Request.Context(), usecase.DelayRequest{
		Milliseconds: *req.Milliseconds,
		Silent:       req.Silent,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DelayResponse{
		Cancelled: result.Cancelled,
		Reason:    result.Reason,
		WaitedMs:  result.WaitedMs,
	})
}

// Schedule handles the POST /timers endpoint
func (h *TimerHandler) Schedule(c *gin.Context) {
	var req dto.ScheduleTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	timer, err := h.timerUseCase.Schedule(c.Request.Context(), usecase.ScheduleTimerRequest{
		Milliseconds: *req.Milliseconds,
		Label:        req.Label,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, timer.ToResponse())
}

// Get handles the GET /timers/:id endpoint
func (h *TimerHandler) Get(c *gin.Context) {
	timer, err := h.timerUseCase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, timer.ToResponse())
}

// List handles the GET /timers endpoint
func (h *TimerHandler) List(c *gin.Context) {
	limitParam := c.DefaultQuery("limit", "0")
	limit, err := strconv.Atoi(limitParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:  domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Error: "Invalid limit parameter",
		})
		return
	}

	timers, err := h.timerUseCase.List(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]entity.TimerResponse, 0, len(timers))
	for _, timer := range timers {
		responses = append(responses, timer.ToResponse())
	}

	c.JSON(http.StatusOK, dto.TimerListResponse{Timers: responses})
}

// Cancel handles the DELETE /timers/:id endpoint. The body is optional
// and may carry a cancellation reason.
func (h *TimerHandler) Cancel(c *gin.Context) {
	var req dto.CancelTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return
	}

	timer, err := h.timerUseCase.Cancel(c.Request.Context(), usecase.CancelTimerRequest{
		ID:     c.Param("id"),
		Reason: req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, timer.ToResponse())
}

// Events handles the GET /timers/:id/events endpoint
func (h *TimerHandler) Events(c *gin.Context) {
	events, err := h.timerUseCase.Events(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]entity.TimerEventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, event.ToResponse())
	}

	c.JSON(http.StatusOK, dto.TimerEventListResponse{Events: responses})
}
