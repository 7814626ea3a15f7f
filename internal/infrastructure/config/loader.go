package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"./.env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
	"../../configs/.env",
}

// Loader reads the configuration and keeps the viper instance around so the
// config file can be watched for changes after the initial load
type Loader struct {
	v  *viper.Viper
	mu sync.Mutex
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{v: viper.New()}
}

// LoadConfig loads configuration once, without watching
func LoadConfig() (*Config, error) {
	return NewLoader().Load()
}

// Load loads configuration from file and environment
func (l *Loader) Load() (*Config, error) {
	// Load environment variables from .env file first
	if err := loadDotEnvFile(); err != nil {
		// Don't return error, just log it or continue
		fmt.Println("Warning: Could not load .env file:", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	v := l.v
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Add config paths
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	// Set default values for non-critical settings
	setDefaults(v)

	// A missing config file is fine; defaults and environment cover it
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Set environment variables to override config
	v.SetEnvPrefix("TK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Process environment variable overrides for sensitive values
	processEnvOverrides(v)

	return l.unmarshalLocked()
}

// Watch re-reads the config whenever the file changes and hands the fresh
// snapshot to onChange. Only call after a successful Load with a config
// file present.
func (l *Loader) Watch(onChange func(*Config)) {
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}
		l.mu.Lock()
		cfg, err := l.unmarshalLocked()
		l.mu.Unlock()
		if err != nil {
			fmt.Println("Warning: ignoring invalid config change:", err)
			return
		}
		onChange(cfg)
	})
	l.v.WatchConfig()
}

// unmarshalLocked decodes the current viper state into a Config.
// Callers must hold l.mu.
func (l *Loader) unmarshalLocked() (*Config, error) {
	var config Config
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// Set the environment in the config
	config.Environment = getEnvironment()

	// Convert time.Duration fields from their raw values
	processDurations(&config)

	return &config, nil
}

// loadDotEnvFile loads the first readable .env file from the search paths
func loadDotEnvFile() error {
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return godotenv.Load(path)
	}

	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	// Non-critical server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080) // Default port but can be overridden
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 30)      // seconds - delays can be held open this long
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds

	// Database defaults for non-sensitive settings
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/timekit.db")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 10)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1) // seconds

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.callerInfo", true)

	// Timer defaults
	v.SetDefault("timers.maxActive", 1000)
	v.SetDefault("timers.maxDurationMs", 86400000) // one day
	v.SetDefault("timers.defaultListLimit", 50)
	v.SetDefault("timers.maxListLimit", 200)

	// Rate limit defaults
	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerSecond", 100)
	v.SetDefault("rateLimit.burst", 200)

	// Discovery defaults; off unless explicitly enabled
	v.SetDefault("discovery.enabled", false)
	v.SetDefault("discovery.instance", "timekit")
	v.SetDefault("discovery.domain", "local.")
}

// getEnvironment determines the environment to use based on TK_ENV environment variable
func getEnvironment() string {
	env := os.Getenv("TK_ENV")
	if env == "" {
		// Default to development if not specified
		env = Development
	}
	return strings.ToLower(env)
}

// envOverrides maps environment variables onto the config keys they force.
// Sensitive values never live in the config file, so the environment takes
// priority over anything viper read from disk.
var envOverrides = map[string]string{
	"TK_DB_DRIVER":    "database.driver",
	"TK_DB_HOST":      "database.host",
	"TK_DB_PORT":      "database.port",
	"TK_DB_USERNAME":  "database.username",
	"TK_DB_PASSWORD":  "database.password",
	"TK_DB_NAME":      "database.database",
	"TK_DB_PATH":      "database.path",
	"TK_DB_SSL_MODE":  "database.sslMode",
	"TK_SERVER_HOST":  "server.host",
	"TK_SERVER_PORT":  "server.port",
	"TK_LOGGER_LEVEL": "logger.level",
}

// envIntOverrides are the numeric overrides; non-positive values are ignored
var envIntOverrides = map[string]string{
	"TK_TIMERS_MAX_ACTIVE":      "timers.maxActive",
	"TK_TIMERS_MAX_DURATION_MS": "timers.maxDurationMs",
	"TK_RATE_LIMIT_RPS":         "rateLimit.requestsPerSecond",
	"TK_RATE_LIMIT_BURST":       "rateLimit.burst",
}

// processEnvOverrides applies the environment overrides onto the viper state
func processEnvOverrides(v *viper.Viper) {
	for name, key := range envOverrides {
		if value := os.Getenv(name); value != "" {
			v.Set(key, value)
		}
	}
	for name, key := range envIntOverrides {
		if value := getEnvInt(name); value > 0 {
			v.Set(key, value)
		}
	}
	if discovery := os.Getenv("TK_DISCOVERY_ENABLED"); discovery != "" {
		v.Set("discovery.enabled", discovery == "true" || discovery == "1")
	}
}

// getEnvInt reads an integer environment variable, zero when unset or bad
func getEnvInt(name string) int {
	value, err := strconv.Atoi(os.Getenv(name))
	if err != nil {
		return 0
	}
	return value
}

// processDurations converts time.Duration fields from their raw values to actual durations
func processDurations(config *Config) {
	// Convert seconds to time.Duration
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	// Convert minutes to time.Duration
	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute

	// Convert seconds to time.Duration
	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second
	config.Database.RetryDelay = time.Duration(config.Database.RetryDelay) * time.Second
}
