package handler

import (
	"net/http"

	coreport "github.com/columbia6/time/internal/domain/port/core"
	"github.com/columbia6/time/internal/domain/port/usecase"
	"github.com/columbia6/time/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// DurationHandler handles duration-related HTTP requests
type DurationHandler struct {
	durationUseCase usecase.DurationUseCase
	logger          coreport.Logger
}

// NewDurationHandler creates a new duration handler instance
func NewDurationHandler(
	durationUseCase usecase.DurationUseCase,
	logger coreport.Logger,
) *DurationHandler {
	return &DurationHandler{
		durationUseCase: durationUseCase,
		logger:          logger,
	}
}

// Format handles the POST /duration/format endpoint
func (h *DurationHandler) Format(c *gin.Context) {
	var req dto.FormatDurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.durationUseCase.FormatDuration(c.Request.Context(), usecase.FormatDurationRequest{
		Milliseconds: *req.Milliseconds,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FormatDurationResponse{
		Result: result.Result,
	})
}

// Parse handles the POST /duration/parse endpoint
func (h *DurationHandler) Parse(c *gin.Context) {
	var req dto.ParseDurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.durationUseCase.ParseDuration(c.Request.Context(), usecase.ParseDurationRequest{
		Input:  req.Input,
		Silent: req.Silent,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ParseDurationResponse{
		Milliseconds: result.Milliseconds,
	})
}
