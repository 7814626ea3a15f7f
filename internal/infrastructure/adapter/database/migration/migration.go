package migration

import (
	"context"
	"errors"
	"fmt"

	coreport "github.com/columbia6/time/internal/domain/port/core"
	"github.com/columbia6/time/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// CurrentSchemaVersion is the version a fully migrated database reports
const CurrentSchemaVersion = "1.1.0"

// MigrationManager brings the schema up to the current version
type MigrationManager struct {
	db       *gorm.DB
	driver   string
	logger   coreport.Logger
	clock    coreport.Clock
	indexMgr *IndexManager
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *gorm.DB, driver string, logger coreport.Logger, clock coreport.Clock) *MigrationManager {
	return &MigrationManager{
		db:       db,
		driver:   driver,
		logger:   logger,
		clock:    clock,
		indexMgr: NewIndexManager(db, driver, logger),
	}
}

// MigrateAll migrates the schema from whatever version is recorded up to
// CurrentSchemaVersion. Running it against an up-to-date database is a no-op.
func (m *MigrationManager) MigrateAll() error {
	if err := m.db.AutoMigrate(&model.MigrationVersion{}); err != nil {
		return fmt.Errorf("failed to prepare version table: %w", err)
	}

	current, err := m.GetCurrentVersion(context.Background())
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current == CurrentSchemaVersion {
		m.logger.Info("Database already at target version, skipping migration", map[string]any{
			"version": current,
		})
		return nil
	}

	m.logger.Info("Starting database migrations", map[string]any{
		"from": current,
		"to":   CurrentSchemaVersion,
	})

	steps := []struct {
		name string
		run  func() error
	}{
		{"auto-migrate models", m.autoMigrateModels},
		{"versioned migrations", func() error { return m.upgradeFrom(current) }},
		{"indexes", m.indexMgr.CreateIndexes},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			m.logger.Error("Migration step failed", map[string]any{
				"step":  step.name,
				"error": err.Error(),
			})
			return err
		}
	}

	if err := m.setVersion(context.Background(), CurrentSchemaVersion, "Full schema migration"); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	m.logger.Info("Database migrations completed successfully", map[string]any{
		"version": CurrentSchemaVersion,
	})
	return nil
}

// GetCurrentVersion returns the most recently recorded schema version, or
// an empty string for a fresh database
func (m *MigrationManager) GetCurrentVersion(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var version model.MigrationVersion
	result := m.db.WithContext(ctx).Order("applied_at desc").First(&version)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", result.Error
	}

	return version.Version, nil
}

// setVersion records a new migration version
func (m *MigrationManager) setVersion(ctx context.Context, version string, details string) error {
	record := model.MigrationVersion{
		Version:   version,
		AppliedAt: m.clock.Now(),
		Details:   details,
	}
	return m.db.WithContext(ctx).Create(&record).Error
}

// autoMigrateModels lets GORM reconcile the table definitions
func (m *MigrationManager) autoMigrateModels() error {
	return m.db.AutoMigrate(
		&model.TimerRecord{},
		&model.TimerEventRecord{},
	)
}

// upgradeFrom applies the hand-written migrations between the recorded
// version and the current one. A fresh database needs none; AutoMigrate
// already created the full schema.
func (m *MigrationManager) upgradeFrom(current string) error {
	switch current {
	case "":
		return nil
	case "1.0.0":
		// v1.1.0 introduced caller-supplied timer labels
		return NewAddLabelToTimers(m.db, m.driver, m.logger).Run(context.Background())
	default:
		m.logger.Warn("No migration path from recorded version, relying on auto-migration", map[string]any{
			"recorded": current,
		})
		return nil
	}
}
