package entity

import (
	"time"

	tport "github.com/columbia6/time/internal/domain/port/core"
)

// TimerEventKind identifies what happened to a timer
type TimerEventKind string

// Timer event kinds
const (
	EventScheduled TimerEventKind = "scheduled"
	EventFired     TimerEventKind = "fired"
	EventCancelled TimerEventKind = "cancelled"
)

// TimerEventDetail is the structured payload attached to a timer event.
// ElapsedMs is how long the timer had been running when the event occurred,
// Reason is only set for cancellations.
type TimerEventDetail struct {
	DurationMs float64
	ElapsedMs  float64
	Reason     string
}

// TimerEvent is one entry in a timer's append-only history
type TimerEvent struct {
	ID        uint64
	TimerID   string
	Kind      TimerEventKind
	Detail    TimerEventDetail
	CreatedAt time.Time
}

// TimerEventResponse represents the API response for a timer event
type TimerEventResponse struct {
	Kind       string  `json:"kind"`
	DurationMs float64 `json:"durationMs,omitempty"`
	ElapsedMs  float64 `json:"elapsedMs,omitempty"`
	Reason     string  `json:"reason,omitempty"`
	CreatedAt  string  `json:"createdAt"`
}

// NewTimerEvent creates an event for the given timer
func NewTimerEvent(timerID string, kind TimerEventKind, detail TimerEventDetail, clock tport.Clock) *TimerEvent {
	return &TimerEvent{
		TimerID:   timerID,
		Kind:      kind,
		Detail:    detail,
		CreatedAt: clock.Now(),
	}
}

// ToResponse converts the event to a response object for API
func (e *TimerEvent) ToResponse() TimerEventResponse {
	return TimerEventResponse{
		Kind:       string(e.Kind),
		DurationMs: e.Detail.DurationMs,
		ElapsedMs:  e.Detail.ElapsedMs,
		Reason:     e.Detail.Reason,
		CreatedAt:  FormatDate(MomentFromTime(e.CreatedAt), timestampFormat),
	}
}
