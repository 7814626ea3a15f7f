package repository

import (
	"context"
	"fmt"

	"github.com/columbia6/time/internal/domain/entity"
	errs "github.com/columbia6/time/internal/domain/error"
	coreport "github.com/columbia6/time/internal/domain/port/core"
	"github.com/columbia6/time/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// TimerEventRepository implements the TimerEventRepository interface using GORM
type TimerEventRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTimerEventRepository creates a new TimerEventRepository instance
func NewTimerEventRepository(db *gorm.DB, logger coreport.Logger) *TimerEventRepository {
	return &TimerEventRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// Append stores a new event for a timer
func (r *TimerEventRepository) Append(ctx context.Context, event *entity.TimerEvent) error {
	payload, err := model.TimerEventPayload{
		DurationMs: event.Detail.DurationMs,
		ElapsedMs:  event.Detail.ElapsedMs,
		Reason:     event.Detail.Reason,
	}.Encode()
	if err != nil {
		r.logger.Error("Failed to encode event payload", map[string]any{
			"timer_id": event.TimerID,
			"kind":     string(event.Kind),
			"error":    err.Error(),
		})
		return fmt.Errorf("%w: encode event payload: %s", errs.ErrInternalServer, err.Error())
	}

	record := model.TimerEventRecord{
		TimerID:   event.TimerID,
		Kind:      string(event.Kind),
		Payload:   payload,
		CreatedAt: event.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&record)
	if result.Error != nil {
		if r.errorClassifier.IsForeignKeyError(result.Error) {
			r.logger.Warn("Appending event for unknown timer", map[string]any{
				"timer_id": event.TimerID,
				"kind":     string(event.Kind),
			})
			return errs.ErrTimerNotFound
		}

		r.logger.Error("Failed to append timer event", map[string]any{
			"timer_id": event.TimerID,
			"kind":     string(event.Kind),
			"error":    result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	event.ID = record.ID

	r.logger.Debug("Timer event appended", map[string]any{
		"timer_id": event.TimerID,
		"kind":     string(event.Kind),
		"event_id": record.ID,
	})
	return nil
}

// ListByTimerID returns all events recorded for a timer, oldest first
func (r *TimerEventRepository) ListByTimerID(ctx context.Context, timerID string) ([]*entity.TimerEvent, error) {
	// The history of an unknown timer is an error, not an empty list
	var timerCount int64
	if err := r.db.WithContext(ctx).Model(&model.TimerRecord{}).
		Where("id = ?", timerID).
		Count(&timerCount).Error; err != nil {
		r.logger.Error("Failed to check timer existence", map[string]any{
			"timer_id": timerID,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
	if timerCount == 0 {
		return nil, errs.ErrTimerNotFound
	}

	var records []model.TimerEventRecord
	result := r.db.WithContext(ctx).
		Where("timer_id = ?", timerID).
		Order("created_at ASC, id ASC").
		Find(&records)

	if result.Error != nil {
		r.logger.Error("Failed to list timer events", map[string]any{
			"timer_id": timerID,
			"error":    result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	events := make([]*entity.TimerEvent, 0, len(records))
	for i := range records {
		event, err := r.modelToEntity(&records[i])
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// modelToEntity converts an event model to an entity, decoding its payload
func (r *TimerEventRepository) modelToEntity(record *model.TimerEventRecord) (*entity.TimerEvent, error) {
	payload, err := model.DecodeTimerEventPayload(record.Payload)
	if err != nil {
		r.logger.Error("Failed to decode event payload", map[string]any{
			"timer_id": record.TimerID,
			"event_id": record.ID,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("%w: decode event payload: %s", errs.ErrInternalServer, err.Error())
	}

	return &entity.TimerEvent{
		ID:      record.ID,
		TimerID: record.TimerID,
		Kind:    entity.TimerEventKind(record.Kind),
		Detail: entity.TimerEventDetail{
			DurationMs: payload.DurationMs,
			ElapsedMs:  payload.ElapsedMs,
			Reason:     payload.Reason,
		},
		CreatedAt: record.CreatedAt,
	}, nil
}
