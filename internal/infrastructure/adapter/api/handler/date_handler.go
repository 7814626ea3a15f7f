package handler

import (
	"net/http"

	coreport "github.com/columbia6/time/internal/domain/port/core"
	"github.com/columbia6/time/internal/domain/port/usecase"
	"github.com/columbia6/time/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// DateHandler handles date-related HTTP requests
type DateHandler struct {
	dateUseCase usecase.DateUseCase
	logger      coreport.Logger
}

// NewDateHandler creates a new date handler instance
func NewDateHandler(
	dateUseCase usecase.DateUseCase,
	logger coreport.Logger,
) *DateHandler {
	return &DateHandler{
		dateUseCase: dateUseCase,
		logger:      logger,
	}
}

// Format handles the POST /date/format endpoint
func (h *DateHandler) Format(c *gin.Context) {
	var req dto.FormatDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	domainReq := usecase.FormatDateRequest{
		UnixMillis: req.UnixMillis,
		Pattern:    req.Pattern,
	}
	if req.Moment != nil {
		domainReq.Moment = &usecase.MomentFields{
			Year:        req.Moment.Year,
			Month:       req.Moment.Month,
			Day:         req.Moment.Day,
			Hour:        req.Moment.Hour,
			Minute:      req.Moment.Minute,
			Second:      req.Moment.Second,
			Millisecond: req.Moment.Millisecond,
		}
	}

	result, err := h.dateUseCase.FormatDate(c.Request.Context(), domainReq)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FormatDateResponse{
		Result: result.Result,
	})
}

// Parse handles the POST /date/parse endpoint
func (h *DateHandler) Parse(c *gin.Context) {
	var req dto.ParseDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.dateUseCase.ParseDate(c.Request.Context(), usecase.ParseDateRequest{
		Input:   req.Input,
		Pattern: req.Pattern,
		Silent:  req.Silent,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.ParseDateResponse{UnixMillis: result.UnixMillis}
	if result.Moment != nil {
		resp.Moment = &dto.MomentPayload{
			Year:        result.Moment.Year,
			Month:       result.Moment.Month,
			Day:         result.Moment.Day,
			Hour:        result.Moment.Hour,
			Minute:      result.Moment.Minute,
			Second:      result.Moment.Second,
			Millisecond: result.Moment.Millisecond,
		}
	}

	c.JSON(http.StatusOK, resp)
}
