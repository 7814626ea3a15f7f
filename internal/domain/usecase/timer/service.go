package timer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/columbia6/time/internal/domain/entity"
	errs "github.com/columbia6/time/internal/domain/error"
	coreport "github.com/columbia6/time/internal/domain/port/core"
	"github.com/columbia6/time/internal/domain/port/persistence"
	"github.com/columbia6/time/internal/domain/port/usecase"
)

// persistTimeout bounds the background write that records a timer's final
// state. The scheduling request is long gone by then.
const persistTimeout = 5 * time.Second

// Service is the main timer service implementation that ties together the
// manager, validator, and repositories for timer processing
type Service struct {
	manager   *TimerManager
	validator *TimerValidator
	uow       persistence.UnitOfWork
	timerRepo persistence.TimerRepository
	eventRepo persistence.TimerEventRepository
	clock     coreport.Clock
	logger    coreport.Logger
}

// NewTimerService creates a new timer service
func NewTimerService(
	uow persistence.UnitOfWork,
	clock coreport.Clock,
	logger coreport.Logger,
	limits Limits,
) *Service {
	s := &Service{
		uow:       uow,
		timerRepo: uow.GetTimerRepository(context.Background()),
		eventRepo: uow.GetTimerEventRepository(context.Background()),
		clock:     clock,
		logger:    logger,
		validator: NewTimerValidator(limits),
	}
	s.manager = NewTimerManager(logger, clock, s.completeTimer)
	return s
}

// Delay waits inline until the requested duration elapses or the context is
// cancelled. In silent mode a cancellation resolves successfully with the
// reason wrapped in the result.
func (s *Service) Delay(ctx context.Context, req usecase.DelayRequest) (*usecase.DelayResult, error) {
	if err := s.validator.ValidateDelay(req.Milliseconds); err != nil {
		return nil, err
	}

	start := s.clock.Now()
	err := entity.Delay(ctx, req.Milliseconds, nil)
	waited := entity.DurationToMillis(s.clock.Since(start))

	if err != nil {
		var cancelErr *errs.CancellationError
		if errors.As(err, &cancelErr) && req.Silent {
			s.logger.Debug("Delay cancelled silently", map[string]any{
				"requested_ms": req.Milliseconds,
				"waited_ms":    waited,
			})
			return &usecase.DelayResult{
				Cancelled: true,
				Reason:    reasonText(cancelErr.Reason),
				WaitedMs:  waited,
			}, nil
		}
		return nil, err
	}

	s.logger.Debug("Delay completed", map[string]any{
		"requested_ms": req.Milliseconds,
		"waited_ms":    waited,
	})
	return &usecase.DelayResult{WaitedMs: waited}, nil
}

// Schedule validates, persists, and arms a new one-shot timer
func (s *Service) Schedule(ctx context.Context, req usecase.ScheduleTimerRequest) (*entity.Timer, error) {
	if !s.manager.Accepting() {
		return nil, errs.ErrShuttingDown
	}
	if err := s.validator.ValidateSchedule(req.Milliseconds, s.manager.ActiveCount()); err != nil {
		return nil, err
	}

	timer, err := entity.NewTimer(uuid.NewString(), req.Label, req.Milliseconds, s.clock)
	if err != nil {
		return nil, err
	}

	if err := s.persistScheduled(ctx, timer); err != nil {
		s.logger.Error("Failed to persist scheduled timer", map[string]any{
			"timer_id": timer.ID,
			"error":    err.Error(),
		})
		return nil, err
	}

	// The manager takes ownership of its own copy; the caller's copy stays
	// untouched for the response.
	armed := *timer
	if err := s.manager.Start(&armed); err != nil {
		s.completeTimer(timer, errs.NewCancellationError("failed to arm timer"))
		return nil, err
	}

	s.logger.Info("Timer scheduled", map[string]any{
		"timer_id":    timer.ID,
		"label":       timer.Label,
		"duration_ms": timer.DurationMs,
	})
	return timer, nil
}

// Cancel cancels a pending timer and returns its recorded final state
func (s *Service) Cancel(ctx context.Context, req usecase.CancelTimerRequest) (*entity.Timer, error) {
	if req.ID == "" {
		return nil, errs.ErrInvalidTimerID
	}

	reason := req.Reason
	if reason == "" {
		reason = "cancelled by request"
	}

	if err := s.manager.Cancel(ctx, req.ID, reason); err != nil {
		if errors.Is(err, errs.ErrTimerNotFound) {
			// Not armed in this process: either unknown or already done
			timer, getErr := s.timerRepo.GetByID(ctx, req.ID)
			if getErr != nil {
				return nil, getErr
			}
			return nil, errs.NewTimerError(timer.ID, string(timer.Status), "timer already completed", errs.ErrTimerCompleted)
		}
		return nil, err
	}

	s.logger.Info("Timer cancelled", map[string]any{
		"timer_id": req.ID,
		"reason":   reason,
	})
	return s.timerRepo.GetByID(ctx, req.ID)
}

// Get returns a timer by ID
func (s *Service) Get(ctx context.Context, id string) (*entity.Timer, error) {
	if id == "" {
		return nil, errs.ErrInvalidTimerID
	}
	return s.timerRepo.GetByID(ctx, id)
}

// List returns the most recent timers, newest first
func (s *Service) List(ctx context.Context, limit int) ([]*entity.Timer, error) {
	return s.timerRepo.List(ctx, s.validator.ClampListLimit(limit))
}

// Events returns the recorded history for a timer, oldest first
func (s *Service) Events(ctx context.Context, id string) ([]*entity.TimerEvent, error) {
	if id == "" {
		return nil, errs.ErrInvalidTimerID
	}
	return s.eventRepo.ListByTimerID(ctx, id)
}

// RecoverOrphans closes out pending timers left behind by a previous
// process. Their goroutines died with it, so they can never fire.
func (s *Service) RecoverOrphans(ctx context.Context) error {
	swept, err := s.timerRepo.CancelAllPending(ctx, "server restart")
	if err != nil {
		s.logger.Error("Failed to sweep orphaned timers", map[string]any{
			"error": err.Error(),
		})
		return err
	}
	if swept > 0 {
		s.logger.Warn("Cancelled orphaned timers from previous run", map[string]any{
			"count": swept,
		})
	}
	return nil
}

// GetManager returns the underlying timer manager
// Used for graceful shutdown
func (s *Service) GetManager() *TimerManager {
	return s.manager
}

// Shutdown cancels all active timers and waits for their final states to be
// recorded or the context to expire
func (s *Service) Shutdown(ctx context.Context) error {
	return s.manager.Shutdown(ctx)
}

// completeTimer records a timer's final state. It runs on the timer's own
// goroutine, so failures are logged rather than returned.
func (s *Service) completeTimer(timer *entity.Timer, cancelErr *errs.CancellationError) {
	ctx, cancel := s.clock.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	detail := entity.TimerEventDetail{
		DurationMs: timer.DurationMs,
		ElapsedMs:  entity.DurationToMillis(s.clock.Since(timer.CreatedAt)),
	}

	var kind entity.TimerEventKind
	var err error
	if cancelErr == nil {
		kind = entity.EventFired
		err = timer.MarkFired(s.clock)
	} else {
		kind = entity.EventCancelled
		detail.Reason = reasonText(cancelErr.Reason)
		err = timer.MarkCancelled(s.clock, detail.Reason)
	}
	if err != nil {
		s.logger.Error("Timer state transition failed", map[string]any{
			"timer_id": timer.ID,
			"status":   string(timer.Status),
			"error":    err.Error(),
		})
		return
	}

	if err := s.persistCompletion(ctx, timer, kind, detail); err != nil {
		s.logger.Error("Failed to record timer completion", map[string]any{
			"timer_id": timer.ID,
			"kind":     string(kind),
			"error":    err.Error(),
		})
	}
}

// persistScheduled stores a new timer and its scheduled event atomically
func (s *Service) persistScheduled(ctx context.Context, timer *entity.Timer) error {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}

	if err := s.uow.GetTimerRepository(txCtx).Create(txCtx, timer); err != nil {
		s.rollbackTx(txCtx, timer.ID)
		return err
	}

	event := entity.NewTimerEvent(timer.ID, entity.EventScheduled, entity.TimerEventDetail{
		DurationMs: timer.DurationMs,
	}, s.clock)
	if err := s.uow.GetTimerEventRepository(txCtx).Append(txCtx, event); err != nil {
		s.rollbackTx(txCtx, timer.ID)
		return err
	}

	return s.uow.Commit(txCtx)
}

// persistCompletion stores a timer's final state and its history entry
// atomically
func (s *Service) persistCompletion(ctx context.Context, timer *entity.Timer, kind entity.TimerEventKind, detail entity.TimerEventDetail) error {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}

	if err := s.uow.GetTimerRepository(txCtx).Update(txCtx, timer); err != nil {
		s.rollbackTx(txCtx, timer.ID)
		return err
	}

	event := entity.NewTimerEvent(timer.ID, kind, detail, s.clock)
	if err := s.uow.GetTimerEventRepository(txCtx).Append(txCtx, event); err != nil {
		s.rollbackTx(txCtx, timer.ID)
		return err
	}

	return s.uow.Commit(txCtx)
}

// rollbackTx rolls back a transaction, logging any rollback failure
func (s *Service) rollbackTx(txCtx context.Context, timerID string) {
	if err := s.uow.Rollback(txCtx); err != nil {
		s.logger.Error("Failed to rollback transaction", map[string]any{
			"timer_id": timerID,
			"error":    err.Error(),
		})
	}
}

// reasonText renders an opaque cancellation reason for storage and display
func reasonText(reason any) string {
	switch v := reason.(type) {
	case nil:
		return ""
	case string:
		return v
	case error:
		return v.Error()
	default:
		return fmt.Sprintf("%v", v)
	}
}
