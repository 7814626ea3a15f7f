package database

import (
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	coreport "github.com/columbia6/time/internal/domain/port/core"
	"github.com/columbia6/time/internal/infrastructure/adapter/clock"
	"github.com/columbia6/time/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// testTables lists the tables in deletion order; events reference timers,
// so they go first
var testTables = []string{"timer_events", "timer_records"}

// TestDBManager provides utilities for testing with a database
type TestDBManager struct {
	Manager *Manager
	Config  *Config
	Logger  coreport.Logger
	Clock   coreport.Clock
}

// NewTestDBManager creates a new test database manager. Tests run against
// an in-memory SQLite database by default; set TEST_DB_DRIVER=postgres to
// run them against a real server instead.
func NewTestDBManager(t *testing.T, logger coreport.Logger) *TestDBManager {
	t.Helper()

	systemClock := clock.NewSystemClock()

	config := &Config{
		Driver:          getEnvOrDefault("TEST_DB_DRIVER", DriverSQLite),
		Host:            getEnvOrDefault("TEST_DB_HOST", "localhost"),
		Port:            getEnvIntOrDefault("TEST_DB_PORT", 5432),
		Username:        getEnvOrDefault("TEST_DB_USERNAME", "postgres"),
		Password:        getEnvOrDefault("TEST_DB_PASSWORD", "postgres"),
		Database:        getEnvOrDefault("TEST_DB_DATABASE", "timekit_test"),
		Path:            getEnvOrDefault("TEST_DB_PATH", ":memory:"),
		SSLMode:         getEnvOrDefault("TEST_DB_SSL_MODE", "disable"),
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
		QueryTimeout:    5 * time.Second,
		LogLevel:        "silent", // Silent logging in tests by default
		RetryAttempts:   1,        // One attempt for tests to fail fast
		RetryDelay:      1,        // 1 second delay
	}

	manager := NewManager(config, logger, systemClock)

	return &TestDBManager{
		Manager: manager,
		Config:  config,
		Logger:  logger,
		Clock:   systemClock,
	}
}

// Connect connects to the test database
func (m *TestDBManager) Connect(t *testing.T) error {
	t.Helper()

	if _, err := m.Manager.Connect(); err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
		return err
	}

	return nil
}

// Close closes the test database connection
func (m *TestDBManager) Close(t *testing.T) {
	t.Helper()

	if err := m.Manager.Close(); err != nil {
		t.Logf("Warning: Failed to close test database connection: %v", err)
	}
}

// SetupTestDB sets up the test database with required tables
func (m *TestDBManager) SetupTestDB(t *testing.T) {
	t.Helper()

	db := m.Manager.DB()

	// Drop all tables to ensure clean state
	if err := m.dropAllTables(db); err != nil {
		t.Fatalf("Failed to drop tables: %v", err)
	}

	// Create tables
	if err := db.AutoMigrate(
		&model.TimerRecord{},
		&model.TimerEventRecord{},
	); err != nil {
		t.Fatalf("Failed to create tables: %v", err)
	}

	// Create basic indexes
	if err := createTestIndexes(db); err != nil {
		t.Fatalf("Failed to create indexes: %v", err)
	}
}

// dropAllTables drops all tables in the test database
func (m *TestDBManager) dropAllTables(db *gorm.DB) error {
	if m.Config.Driver == DriverPostgres {
		return db.Exec(`
			DO $$ DECLARE
				r RECORD;
			BEGIN
				FOR r IN (SELECT tablename FROM pg_tables WHERE schemaname = current_schema()) LOOP
					EXECUTE 'DROP TABLE IF EXISTS ' || quote_ident(r.tablename) || ' CASCADE';
				END LOOP;
			END $$;
		`).Error
	}

	for _, table := range append(testTables, "schema_migrations") {
		if err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)).Error; err != nil {
			return err
		}
	}
	return nil
}

// createTestIndexes creates basic indexes for testing
func createTestIndexes(db *gorm.DB) error {
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_timer_records_status ON timer_records (status)").Error; err != nil {
		return err
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_timer_records_created_at ON timer_records (created_at)").Error; err != nil {
		return err
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_timer_events_timer_created ON timer_events (timer_id, created_at)").Error; err != nil {
		return err
	}

	return nil
}

// TruncateAllTables truncates all tables in the test database
func (m *TestDBManager) TruncateAllTables(t *testing.T) {
	t.Helper()

	db := m.Manager.DB()

	if m.Config.Driver == DriverPostgres {
		if err := db.Exec(`
			DO $$ DECLARE
				r RECORD;
			BEGIN
				FOR r IN (SELECT tablename FROM pg_tables WHERE schemaname = current_schema()) LOOP
					EXECUTE 'TRUNCATE TABLE ' || quote_ident(r.tablename) || ' CASCADE';
				END LOOP;
			END $$;
		`).Error; err != nil {
			t.Fatalf("Failed to truncate tables: %v", err)
		}
		return
	}

	for _, table := range testTables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Fatalf("Failed to truncate tables: %v", err)
		}
	}
}

// CreateTestTimer creates a timer row with the specified ID and status
func (m *TestDBManager) CreateTestTimer(t *testing.T, id string, status string, durationMs float64) {
	t.Helper()

	db := m.Manager.DB()
	now := m.Clock.Now()

	record := model.TimerRecord{
		ID:         id,
		Label:      "test timer",
		DurationMs: durationMs,
		Status:     status,
		CreatedAt:  now,
		FiresAt:    now.Add(time.Duration(durationMs) * time.Millisecond),
	}

	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("Failed to create test timer: %v", err)
	}
}

// Helper functions to get environment variables or defaults
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if result, err := strconv.Atoi(value); err == nil {
			return result
		}
	}
	return defaultValue
}
