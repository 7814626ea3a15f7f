package routes

import (
	coreport "github.com/columbia6/time/internal/domain/port/core"
	"github.com/columbia6/time/internal/infrastructure/adapter/api/handler"
	"github.com/columbia6/time/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	durationHandler *handler.DurationHandler,
	dateHandler *handler.DateHandler,
	timerHandler *handler.TimerHandler,
	healthHandler *handler.HealthHandler,
) {
	// GET /health
	router.GET("/health", healthHandler.Check)

	v1 := router.Group("/api/v1")
	{
		// Duration routes
		durationRoutes := v1.Group("/duration")
		{
			// POST /api/v1/duration/format
			durationRoutes.POST("/format", durationHandler.Format)

			// POST /api/v1/duration/parse
			durationRoutes.POST("/parse", durationHandler.Parse)
		}

		// Date routes
		dateRoutes := v1.Group("/date")
		{
			// POST /api/v1/date/format
			dateRoutes.POST("/format", dateHandler.Format)

			// POST /api/v1/date/parse
			dateRoutes.POST("/parse", dateHandler.Parse)
		}

		// POST /api/v1/delay
		v1.POST("/delay", timerHandler.Delay)

		// Timer routes
		timerRoutes := v1.Group("/timers")
		{
			// POST /api/v1/timers
			timerRoutes.POST("", timerHandler.Schedule)

			// GET /api/v1/timers
			timerRoutes.GET("", timerHandler.List)

			// GET /api/v1/timers/:id
			timerRoutes.GET("/:id", timerHandler.Get)

			// DELETE /api/v1/timers/:id
			timerRoutes.DELETE("/:id", timerHandler.Cancel)

			// GET /api/v1/timers/:id/events
			timerRoutes.GET("/:id/events", timerHandler.Events)
		}
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(
	router *gin.Engine,
	logger coreport.Logger,
	clock coreport.Clock,
	rateLimiter *middleware.RateLimiter,
) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger, clock))
	router.Use(middleware.CORS())
	router.Use(rateLimiter.Handler())
}
