package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	domainerr "github.com/columbia6/time/internal/domain/error"
	dateUseCase "github.com/columbia6/time/internal/domain/usecase/date"
	durationUseCase "github.com/columbia6/time/internal/domain/usecase/duration"
	timerUseCase "github.com/columbia6/time/internal/domain/usecase/timer"

	"github.com/columbia6/time/internal/infrastructure/adapter/api/handler"
	"github.com/columbia6/time/internal/infrastructure/adapter/api/middleware"
	"github.com/columbia6/time/internal/infrastructure/adapter/api/routes"
	"github.com/columbia6/time/internal/infrastructure/adapter/clock"
	"github.com/columbia6/time/internal/infrastructure/adapter/database"
	"github.com/columbia6/time/internal/infrastructure/adapter/discovery"
	"github.com/columbia6/time/internal/infrastructure/adapter/logger"
	"github.com/columbia6/time/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration, keeping the loader around for hot reload
	cfgLoader := config.NewLoader()
	cfg, err := cfgLoader.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	appLogger.SetLevel(logger.LevelFromString(cfg.Logger.Level))

	// System clock drives every time read in the process
	systemClock := clock.NewSystemClock()

	// Connect to the database
	dbConfig := database.FromAppConfig(cfg)
	dbManager := database.NewManager(dbConfig, appLogger, systemClock)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Unit of work (transaction manager)
	uow := dbManager.CreateUnitOfWork()

	// Initialize use cases
	durationUseCaseImpl := durationUseCase.NewDurationUseCase(appLogger)
	dateUseCaseImpl := dateUseCase.NewDateUseCase(appLogger)
	timerService := timerUseCase.NewTimerService(uow, systemClock, appLogger, timerUseCase.Limits{
		MaxDurationMs:    cfg.Timers.MaxDurationMs,
		MaxActive:        cfg.Timers.MaxActive,
		DefaultListLimit: cfg.Timers.DefaultListLimit,
		MaxListLimit:     cfg.Timers.MaxListLimit,
	})

	// Sweep timers orphaned by a previous process
	if err := timerService.RecoverOrphans(context.Background()); err != nil {
		appLogger.Error("Failed to recover orphaned timers", map[string]any{
			"error": err.Error(),
		})
	}

	// Initialize API handlers
	durationHandler := handler.NewDurationHandler(durationUseCaseImpl, appLogger)
	dateHandler := handler.NewDateHandler(dateUseCaseImpl, appLogger)
	timerHandler := handler.NewTimerHandler(timerService, appLogger)
	healthHandler := handler.NewHealthHandler(
		systemClock,
		appLogger,
		timerService.GetManager().ActiveCount,
		dbManager.Ping,
	)

	// Rate limiter is shared with the config watcher for hot reload
	rateLimiter := middleware.NewRateLimiter(
		cfg.RateLimit.Enabled,
		cfg.RateLimit.RequestsPerSecond,
		cfg.RateLimit.Burst,
		appLogger,
	)

	// Initialize Gin router
	router := gin.New()

	// Setup middlewares
	routes.SetupMiddlewares(router, appLogger, systemClock, rateLimiter)

	// Setup routes
	routes.SetupRoutes(router, durationHandler, dateHandler, timerHandler, healthHandler)

	// Cancelling the base context aborts in-flight delay requests during
	// shutdown instead of waiting out their full durations
	baseCtx, stopRequests := context.WithCancelCause(context.Background())

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		BaseContext: func(net.Listener) context.Context {
			return baseCtx
		},
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Advertise on the local network when enabled
	var advertiser *discovery.Advertiser
	if cfg.Discovery.Enabled {
		advertiser, err = discovery.NewAdvertiser(
			cfg.Discovery.Instance,
			cfg.Discovery.Domain,
			cfg.Server.Port,
			appLogger,
		)
		if err != nil {
			appLogger.Warn("Continuing without service discovery", map[string]any{
				"error": err.Error(),
			})
		}
	}

	// Apply config file changes at runtime
	cfgLoader.Watch(func(updated *config.Config) {
		appLogger.SetLevel(logger.LevelFromString(updated.Logger.Level))
		rateLimiter.Update(
			updated.RateLimit.Enabled,
			updated.RateLimit.RequestsPerSecond,
			updated.RateLimit.Burst,
		)
	})

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	// Create a deadline to wait for
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if advertiser != nil {
		advertiser.Shutdown()
	}

	// Release held delay requests, then drain the HTTP server
	stopRequests(domainerr.ErrShuttingDown)
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	// Cancel scheduled timers and wait for their workers
	appLogger.Info("Shutting down timer service...", nil)
	if err := timerService.Shutdown(ctx); err != nil {
		appLogger.Error("Timer service forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
	appLogger.Flush()
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	// Validate server configuration
	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}

	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}

	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}

	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	// Validate database configuration per driver
	switch cfg.Database.Driver {
	case database.DriverSQLite:
		if cfg.Database.Path == "" {
			missingConfigs = append(missingConfigs, "database.path")
		}
	case database.DriverPostgres:
		if cfg.Database.Host == "" {
			// In production, check if environment variable exists
			if cfg.Environment == config.Production && os.Getenv("TK_DB_HOST") == "" {
				missingConfigs = append(missingConfigs, "database.host (or TK_DB_HOST environment variable)")
			} else if cfg.Environment != config.Production {
				missingConfigs = append(missingConfigs, "database.host")
			}
		}

		if cfg.Database.Port == "" {
			if cfg.Environment == config.Production && os.Getenv("TK_DB_PORT") == "" {
				missingConfigs = append(missingConfigs, "database.port (or TK_DB_PORT environment variable)")
			} else if cfg.Environment != config.Production {
				missingConfigs = append(missingConfigs, "database.port")
			}
		}

		if cfg.Database.Username == "" {
			if cfg.Environment == config.Production && os.Getenv("TK_DB_USERNAME") == "" {
				missingConfigs = append(missingConfigs, "database.username (or TK_DB_USERNAME environment variable)")
			} else if cfg.Environment != config.Production {
				missingConfigs = append(missingConfigs, "database.username")
			}
		}

		if cfg.Database.Password == "" {
			if cfg.Environment == config.Production && os.Getenv("TK_DB_PASSWORD") == "" {
				missingConfigs = append(missingConfigs, "database.password (or TK_DB_PASSWORD environment variable)")
			} else if cfg.Environment != config.Production {
				missingConfigs = append(missingConfigs, "database.password")
			}
		}

		if cfg.Database.Database == "" {
			if cfg.Environment == config.Production && os.Getenv("TK_DB_NAME") == "" {
				missingConfigs = append(missingConfigs, "database.database (or TK_DB_NAME environment variable)")
			} else if cfg.Environment != config.Production {
				missingConfigs = append(missingConfigs, "database.database")
			}
		}
	default:
		return fmt.Errorf("invalid database driver: %s, must be %s or %s",
			cfg.Database.Driver, database.DriverPostgres, database.DriverSQLite)
	}

	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	// Validate timer configuration
	if cfg.Timers.MaxActive == 0 {
		missingConfigs = append(missingConfigs, "timers.maxActive")
	}

	if cfg.Timers.MaxDurationMs == 0 {
		missingConfigs = append(missingConfigs, "timers.maxDurationMs")
	}

	if cfg.Timers.MaxListLimit == 0 {
		missingConfigs = append(missingConfigs, "timers.maxListLimit")
	}

	// Environment should be set with a valid value
	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	// Logger configuration
	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	// Return error with list of missing configurations
	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	// If we're in production, do additional validation for sensitive settings
	if cfg.Environment == config.Production {
		var warnings []string

		// Check database security settings
		if cfg.Database.Driver == database.DriverPostgres {
			sslMode := strings.ToLower(cfg.Database.SSLMode)
			if sslMode != "require" && sslMode != "verify-ca" && sslMode != "verify-full" {
				warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
			}
		}

		// Check timeout settings
		if cfg.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}

		// Delay requests stay open for their full duration, so the write
		// timeout bounds the longest serviceable delay
		if cfg.Server.WriteTimeout < 30*time.Second {
			warnings = append(warnings, "server.writeTimeout limits how long delay requests can be held open")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential issues in production configuration: %v", warnings)
		}
	}

	return nil
}
