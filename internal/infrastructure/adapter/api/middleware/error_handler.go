package middleware

import (
	"net/http"
	"runtime/debug"

	domainerr "github.com/columbia6/time/internal/domain/error"
	coreport "github.com/columbia6/time/internal/domain/port/core"
	"github.com/columbia6/time/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// ErrorHandler returns a middleware that converts handler panics into a
// generic 500 response, keeping the details in the log instead of the body
func ErrorHandler(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			logger.Error("Panic recovered in API request", map[string]any{
				"panic":  recovered,
				"stack":  string(debug.Stack()),
				"method": c.Request.Method,
				"path":   c.Request.URL.Path,
				"ip":     c.ClientIP(),
			})

			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
				Code:  domainerr.ErrorCode(domainerr.ErrInternalServer),
				Error: "Internal server error",
			})
		}()

		c.Next()
	}
}
