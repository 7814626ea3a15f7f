package migration

import (
	coreport "github.com/columbia6/time/internal/domain/port/core"
	"gorm.io/gorm"
)

// IndexManager manages database indexes for the timer tables
type IndexManager struct {
	db     *gorm.DB
	driver string
	logger coreport.Logger
}

// NewIndexManager creates a new index manager
func NewIndexManager(db *gorm.DB, driver string, logger coreport.Logger) *IndexManager {
	return &IndexManager{
		db:     db,
		driver: driver,
		logger: logger,
	}
}

// CreateIndexes creates indexes shared by all supported drivers, then
// applies PostgreSQL-specific ones when that driver is in use
func (m *IndexManager) CreateIndexes() error {
	m.logger.Info("Creating database indexes", nil)

	// Index on status for active timer counting and recovery sweeps
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_timer_records_status
		ON timer_records (status)
	`).Error; err != nil {
		m.logger.Error("Failed to create index on timer_records.status", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Index on created_at for recency-ordered listing
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_timer_records_created_at
		ON timer_records (created_at)
	`).Error; err != nil {
		m.logger.Error("Failed to create index on timer_records.created_at", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Composite index for per-timer event history in insertion order
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_timer_events_timer_created
		ON timer_events (timer_id, created_at)
	`).Error; err != nil {
		m.logger.Error("Failed to create composite index on timer_events", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if m.driver == "postgres" {
		if err := m.createPostgresIndexes(); err != nil {
			return err
		}
		m.applyPostgresTweaks()
	}

	m.logger.Info("Database indexes created successfully", nil)
	return nil
}

// createPostgresIndexes creates PostgreSQL-specific advanced indexes for better performance
func (m *IndexManager) createPostgresIndexes() error {
	m.logger.Info("Creating advanced PostgreSQL indexes", nil)

	// Partial index on pending timers to speed up capacity checks and
	// startup recovery, which only ever look at pending rows
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_timer_records_pending
		ON timer_records (fires_at)
		WHERE status = 'pending'
	`).Error; err != nil {
		m.logger.Error("Failed to create pending timers partial index", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// BRIN index for created_at (more efficient for temporal data)
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_timer_events_created_at_brin
		ON timer_events USING BRIN (created_at)
		WITH (pages_per_range = 32)
	`).Error; err != nil {
		m.logger.Error("Failed to create BRIN index on timer_events.created_at", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	m.logger.Info("Advanced PostgreSQL indexes created successfully", nil)
	return nil
}

// applyPostgresTweaks applies PostgreSQL performance tweaks
func (m *IndexManager) applyPostgresTweaks() {
	m.logger.Info("Applying PostgreSQL performance tweaks", nil)

	// Set fillfactor for the event table to reduce page splits; events
	// are append-only so a high fillfactor is safe
	if err := m.db.Exec(`
		ALTER TABLE timer_events SET (fillfactor = 95)
	`).Error; err != nil {
		m.logger.Warn("Failed to set fillfactor for timer_events table", map[string]any{
			"error": err.Error(),
		})
		// Don't return error as this is not critical
	}

	// Set statistics target for better query planning
	if err := m.db.Exec(`
		ALTER TABLE timer_events ALTER COLUMN timer_id SET STATISTICS 1000
	`).Error; err != nil {
		m.logger.Warn("Failed to set statistics target for timer_id", map[string]any{
			"error": err.Error(),
		})
		// Don't return error as this is not critical
	}

	m.logger.Info("PostgreSQL performance tweaks applied successfully", nil)
}
