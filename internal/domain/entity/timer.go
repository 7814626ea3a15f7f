package entity

import (
	"time"

	errs "github.com/columbia6/time/internal/domain/error"
	tport "github.com/columbia6/time/internal/domain/port/core"
)

// TimerStatus defines possible lifecycle states for a scheduled timer
type TimerStatus string

// TimerStatus constants. A timer is one-shot: it leaves pending exactly
// once, either by firing or by being cancelled.
const (
	TimerPending   TimerStatus = "pending"
	TimerFired     TimerStatus = "fired"
	TimerCancelled TimerStatus = "cancelled"
)

// TimerResponse represents the simplified API response for a timer
type TimerResponse struct {
	ID          string  `json:"id"`
	Label       string  `json:"label,omitempty"`
	DurationMs  float64 `json:"durationMs"`
	Duration    string  `json:"duration"`
	Status      string  `json:"status"`
	Reason      string  `json:"reason,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	FiresAt     string  `json:"firesAt"`
	CompletedAt string  `json:"completedAt,omitempty"`
}

// timestampFormat renders timer timestamps with millisecond precision
const timestampFormat = "yyyy-MM-dd HH:mm:ss.SSS"

// Timer represents a one-shot scheduled timer
type Timer struct {
	ID           string      // Identifier assigned at scheduling time
	Label        string      // Optional caller-supplied label
	DurationMs   float64     // Requested duration in milliseconds
	Status       TimerStatus // Current lifecycle state
	CancelReason string      // Reason supplied by the cancelling caller
	CreatedAt    time.Time   // When the timer was scheduled
	FiresAt      time.Time   // When the timer is due to fire
	CompletedAt  *time.Time  // When the timer fired or was cancelled (nullable)
}

// NewTimer creates a pending timer with basic validation
func NewTimer(id, label string, durationMs float64, clock tport.Clock) (*Timer, error) {
	if id == "" {
		return nil, errs.ErrInvalidTimerID
	}
	if durationMs <= 0 {
		return nil, errs.ErrInvalidTimerDuration
	}

	now := clock.Now()
	return &Timer{
		ID:         id,
		Label:      label,
		DurationMs: durationMs,
		Status:     TimerPending,
		CreatedAt:  now,
		FiresAt:    now.Add(MillisToDuration(durationMs)),
	}, nil
}

// MarkFired records that the timer's duration elapsed
func (t *Timer) MarkFired(clock tport.Clock) error {
	if t.Status != TimerPending {
		return errs.NewTimerError(t.ID, string(t.Status), "timer can only fire from pending", errs.ErrTimerCompleted)
	}
	now := clock.Now()
	t.CompletedAt = &now
	t.Status = TimerFired
	return nil
}

// MarkCancelled records that the timer was cancelled before firing
func (t *Timer) MarkCancelled(clock tport.Clock, reason string) error {
	if t.Status != TimerPending {
		return errs.NewTimerError(t.ID, string(t.Status), "timer can only be cancelled from pending", errs.ErrTimerCompleted)
	}
	now := clock.Now()
	t.CompletedAt = &now
	t.Status = TimerCancelled
	t.CancelReason = reason
	return nil
}

// IsComplete returns true once the timer has fired or been cancelled
func (t *Timer) IsComplete() bool {
	return t.Status != TimerPending
}

// RemainingMs returns the milliseconds left until the timer is due, never
// below zero
func (t *Timer) RemainingMs(clock tport.Clock) float64 {
	remaining := DurationToMillis(t.FiresAt.Sub(clock.Now()))
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ToResponse converts the timer to a response object for API
func (t *Timer) ToResponse() TimerResponse {
	resp := TimerResponse{
		ID:         t.ID,
		Label:      t.Label,
		DurationMs: t.DurationMs,
		Duration:   FormatDuration(t.DurationMs),
		Status:     string(t.Status),
		Reason:     t.CancelReason,
		CreatedAt:  FormatDate(MomentFromTime(t.CreatedAt), timestampFormat),
		FiresAt:    FormatDate(MomentFromTime(t.FiresAt), timestampFormat),
	}
	if t.CompletedAt != nil {
		resp.CompletedAt = FormatDate(MomentFromTime(*t.CompletedAt), timestampFormat)
	}
	return resp
}
