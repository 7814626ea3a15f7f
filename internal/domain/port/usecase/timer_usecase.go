package usecase

import (
	"context"

	"github.com/columbia6/time/internal/domain/entity"
)

// DelayRequest represents a request to wait inline for a number of
// milliseconds. Silent selects the failure-handling mode for cancellation:
// when true, cancellation resolves successfully with the reason wrapped in
// the result instead of surfacing as an error.
type DelayRequest struct {
	Milliseconds float64 `json:"milliseconds"`
	Silent       bool    `json:"silent"`
}

// DelayResult reports how a delay completed. Ordinary completion carries an
// empty payload in both modes: Cancelled false and no reason.
type DelayResult struct {
	Cancelled bool
	Reason    string
	WaitedMs  float64
}

// ScheduleTimerRequest represents a request to create a named one-shot timer
type ScheduleTimerRequest struct {
	Milliseconds float64 `json:"milliseconds"`
	Label        string  `json:"label"`
}

// CancelTimerRequest represents a request to cancel a pending timer
type CancelTimerRequest struct {
	ID     string `json:"-"`
	Reason string `json:"reason"`
}

// TimerUseCase defines the delay primitive and named timer operations
type TimerUseCase interface {
	// Delay waits inline until the duration elapses or the context is
	// cancelled, honoring the request's failure-handling mode
	Delay(ctx context.Context, req DelayRequest) (*DelayResult, error)

	// Schedule validates, persists, and starts a named one-shot timer
	Schedule(ctx context.Context, req ScheduleTimerRequest) (*entity.Timer, error)

	// Cancel cancels a pending timer, recording the caller's reason
	Cancel(ctx context.Context, req CancelTimerRequest) (*entity.Timer, error)

	// Get returns a timer by ID
	Get(ctx context.Context, id string) (*entity.Timer, error)

	// List returns the most recent timers, newest first
	List(ctx context.Context, limit int) ([]*entity.Timer, error)

	// Events returns the recorded history for a timer, oldest first
	Events(ctx context.Context, id string) ([]*entity.TimerEvent, error)
}
