package dto

import "github.com/columbia6/time/internal/domain/entity"

// DelayRequest represents the API request for an inline delay
type DelayRequest struct {
	Milliseconds *float64 `json:"milliseconds" binding:"required"`
	Silent       bool     `json:"silent"`
}

// DelayResponse represents the API response after a delay resolves
type DelayResponse struct {
	Cancelled bool    `json:"cancelled"`
	Reason    string  `json:"reason,omitempty"`
	WaitedMs  float64 `json:"waitedMs"`
}

// ScheduleTimerRequest represents the API request for scheduling a timer
type ScheduleTimerRequest struct {
	Milliseconds *float64 `json:"milliseconds" binding:"required"`
	Label        string   `json:"label"`
}

// CancelTimerRequest represents the API request for cancelling a timer.
// The body is optional; an empty reason gets a server-side default.
type CancelTimerRequest struct {
	Reason string `json:"reason"`
}

// TimerListResponse represents the API response for a timer listing
type TimerListResponse struct {
	Timers []entity.TimerResponse `json:"timers"`
}

// TimerEventListResponse represents the API response for a timer's event
// history
type TimerEventListResponse struct {
	Events []entity.TimerEventResponse `json:"events"`
}

// HealthResponse represents the API response for the health endpoint
type HealthResponse struct {
	Status       string `json:"status"`
	Time         string `json:"time"`
	ActiveTimers int    `json:"activeTimers"`
	Database     string `json:"database"`
}
