package handler

import (
	"errors"
	"net/http"

	domainerr "github.com/columbia6/time/internal/domain/error"
	"github.com/columbia6/time/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// statusForError maps domain errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, domainerr.ErrInvalidFormat),
		errors.Is(err, domainerr.ErrDateOverflow),
		errors.Is(err, domainerr.ErrInvalidTimerDuration),
		errors.Is(err, domainerr.ErrTimerDurationTooLong),
		errors.Is(err, domainerr.ErrInvalidTimerID),
		errors.Is(err, domainerr.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domainerr.ErrTimerNotFound),
		errors.Is(err, domainerr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainerr.ErrTimerCompleted),
		errors.Is(err, domainerr.ErrConstraintViolation):
		return http.StatusConflict
	case errors.Is(err, domainerr.ErrTooManyTimers),
		errors.Is(err, domainerr.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domainerr.ErrShuttingDown),
		errors.Is(err, domainerr.ErrCancelled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the standardized error body for a domain error
func respondError(c *gin.Context, err error) {
	c.JSON(statusForError(err), dto.ErrorResponse{
		Code:  domainerr.ErrorCode(err),
		Error: err.Error(),
	})
}

// respondBindError writes the standardized error body for a malformed
// request payload
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:  domainerr.ErrorCode(domainerr.ErrInvalidRequest),
		Error: "Invalid request format: " + err.Error(),
	})
}
