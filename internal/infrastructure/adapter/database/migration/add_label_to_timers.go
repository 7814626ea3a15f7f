package migration

import (
	"context"

	coreport "github.com/columbia6/time/internal/domain/port/core"
	"gorm.io/gorm"
)

// AddLabelToTimers is a migration to add the label column to the timer_records table
type AddLabelToTimers struct {
	db     *gorm.DB
	driver string
	logger coreport.Logger
}

// NewAddLabelToTimers creates a new migration instance
func NewAddLabelToTimers(db *gorm.DB, driver string, logger coreport.Logger) *AddLabelToTimers {
	return &AddLabelToTimers{
		db:     db,
		driver: driver,
		logger: logger,
	}
}

// Run executes the migration
func (m *AddLabelToTimers) Run(ctx context.Context) error {
	m.logger.Info("Adding label column to timer_records table", nil)

	// Check if the column already exists
	var hasLabel bool
	if err := m.checkColumnExists(&hasLabel); err != nil {
		return err
	}

	// Add label column if it doesn't exist
	if !hasLabel {
		if err := m.db.WithContext(ctx).Exec(`ALTER TABLE timer_records ADD COLUMN label VARCHAR(255) NOT NULL DEFAULT ''`).Error; err != nil {
			m.logger.Error("Failed to add label column", map[string]any{"error": err.Error()})
			return err
		}
	}

	m.logger.Info("Successfully added label column to timer_records table", nil)
	return nil
}

// checkColumnExists checks if the label column already exists in the table
func (m *AddLabelToTimers) checkColumnExists(hasLabel *bool) error {
	var columns []struct {
		ColumnName string `gorm:"column:column_name"`
	}

	// SQLite has no information_schema, so each driver gets its own probe
	query := `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = 'timer_records' AND column_name = 'label'
	`
	if m.driver == "sqlite" {
		query = `
			SELECT name AS column_name
			FROM pragma_table_info('timer_records')
			WHERE name = 'label'
		`
	}

	err := m.db.Raw(query).Scan(&columns).Error
	if err != nil {
		m.logger.Error("Failed to check column existence", map[string]any{"error": err.Error()})
		return err
	}

	for _, column := range columns {
		if column.ColumnName == "label" {
			*hasLabel = true
		}
	}

	return nil
}
