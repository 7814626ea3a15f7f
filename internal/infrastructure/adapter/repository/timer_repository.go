package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/columbia6/time/internal/domain/entity"
	errs "github.com/columbia6/time/internal/domain/error"
	coreport "github.com/columbia6/time/internal/domain/port/core"
	"github.com/columbia6/time/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// TimerRepository implements the TimerRepository interface using GORM
type TimerRepository struct {
	db              *gorm.DB
	clock           coreport.Clock
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTimerRepository creates a new TimerRepository instance
func NewTimerRepository(db *gorm.DB, clock coreport.Clock, logger coreport.Logger) *TimerRepository {
	return &TimerRepository{
		db:              db,
		clock:           clock,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// entityToModel converts a timer entity to a database model
func (r *TimerRepository) entityToModel(timer *entity.Timer) model.TimerRecord {
	return model.TimerRecord{
		ID:           timer.ID,
		Label:        timer.Label,
		DurationMs:   timer.DurationMs,
		Status:       string(timer.Status),
		CancelReason: timer.CancelReason,
		CreatedAt:    timer.CreatedAt,
		FiresAt:      timer.FiresAt,
		CompletedAt:  timer.CompletedAt,
	}
}

// modelToEntity converts a timer model to an entity
func (r *TimerRepository) modelToEntity(record *model.TimerRecord) *entity.Timer {
	return &entity.Timer{
		ID:           record.ID,
		Label:        record.Label,
		DurationMs:   record.DurationMs,
		Status:       entity.TimerStatus(record.Status),
		CancelReason: record.CancelReason,
		CreatedAt:    record.CreatedAt,
		FiresAt:      record.FiresAt,
		CompletedAt:  record.CompletedAt,
	}
}

// Create saves a new timer record in the pending state
func (r *TimerRepository) Create(ctx context.Context, timer *entity.Timer) error {
	r.logger.Debug("Creating timer record", map[string]any{
		"timer_id":    timer.ID,
		"duration_ms": timer.DurationMs,
	})

	record := r.entityToModel(timer)

	result := r.db.WithContext(ctx).Create(&record)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			r.logger.Warn("Duplicate timer ID detected", map[string]any{
				"timer_id": timer.ID,
			})
			return fmt.Errorf("%w: timer %s already exists", errs.ErrConstraintViolation, timer.ID)
		}

		r.logger.Error("Failed to create timer record", map[string]any{
			"timer_id": timer.ID,
			"error":    result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return nil
}

// Update persists the final state of an existing timer
func (r *TimerRepository) Update(ctx context.Context, timer *entity.Timer) error {
	r.logger.Debug("Updating timer record", map[string]any{
		"timer_id": timer.ID,
		"status":   string(timer.Status),
	})

	record := r.entityToModel(timer)

	result := r.db.WithContext(ctx).Model(&model.TimerRecord{}).
		Where("id = ?", timer.ID).
		Updates(map[string]interface{}{
			"status":        record.Status,
			"cancel_reason": record.CancelReason,
			"completed_at":  record.CompletedAt,
		})

	if result.Error != nil {
		r.logger.Error("Failed to update timer record", map[string]any{
			"timer_id": timer.ID,
			"error":    result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("Timer not found during update", map[string]any{
			"timer_id": timer.ID,
		})
		return errs.ErrTimerNotFound
	}

	return nil
}

// GetByID retrieves a timer by its identifier
func (r *TimerRepository) GetByID(ctx context.Context, id string) (*entity.Timer, error) {
	var record model.TimerRecord
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&record)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			r.logger.Warn("Timer not found", map[string]any{
				"timer_id": id,
			})
			return nil, errs.ErrTimerNotFound
		}
		r.logger.Error("Failed to get timer record", map[string]any{
			"timer_id": id,
			"error":    result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return r.modelToEntity(&record), nil
}

// List returns the most recently created timers, newest first
func (r *TimerRepository) List(ctx context.Context, limit int) ([]*entity.Timer, error) {
	var records []model.TimerRecord
	result := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&records)

	if result.Error != nil {
		r.logger.Error("Failed to list timer records", map[string]any{
			"limit": limit,
			"error": result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	timers := make([]*entity.Timer, 0, len(records))
	for i := range records {
		timers = append(timers, r.modelToEntity(&records[i]))
	}
	return timers, nil
}

// CountActive returns the number of timers still in the pending state
func (r *TimerRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.TimerRecord{}).
		Where("status = ?", string(entity.TimerPending)).
		Count(&count)

	if result.Error != nil {
		r.logger.Error("Failed to count active timers", map[string]any{
			"error": result.Error.Error(),
		})
		return 0, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return count, nil
}

// CancelAllPending marks every pending timer as cancelled with the given
// reason
func (r *TimerRepository) CancelAllPending(ctx context.Context, reason string) (int64, error) {
	now := r.clock.Now()
	result := r.db.WithContext(ctx).Model(&model.TimerRecord{}).
		Where("status = ?", string(entity.TimerPending)).
		Updates(map[string]interface{}{
			"status":        string(entity.TimerCancelled),
			"cancel_reason": reason,
			"completed_at":  &now,
		})

	if result.Error != nil {
		r.logger.Error("Failed to cancel pending timers", map[string]any{
			"error": result.Error.Error(),
		})
		return 0, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return result.RowsAffected, nil
}
