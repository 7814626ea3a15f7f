package entity

import (
	"testing"
	"time"

	coremocks "github.com/columbia6/time/mocks/port/core"
	"github.com/stretchr/testify/assert"
)

func TestNewTimerEvent(t *testing.T) {
	fixedTime := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	t.Run("should stamp the event with the clock time", func(t *testing.T) {
		mockClock := new(coremocks.MockClock)
		mockClock.On("Now").Return(fixedTime)

		event := NewTimerEvent("timer-1", EventScheduled, TimerEventDetail{DurationMs: 5000}, mockClock)

		assert.Equal(t, "timer-1", event.TimerID)
		assert.Equal(t, EventScheduled, event.Kind)
		assert.Equal(t, float64(5000), event.Detail.DurationMs)
		assert.Equal(t, fixedTime, event.CreatedAt)
		assert.Zero(t, event.ID)
	})
}

func TestTimerEventToResponse(t *testing.T) {
	fixedTime := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	t.Run("should render a cancellation event", func(t *testing.T) {
		mockClock := new(coremocks.MockClock)
		mockClock.On("Now").Return(fixedTime)

		event := NewTimerEvent("timer-1", EventCancelled, TimerEventDetail{
			DurationMs: 5000,
			ElapsedMs:  1200,
			Reason:     "no longer needed",
		}, mockClock)

		resp := event.ToResponse()

		assert.Equal(t, "cancelled", resp.Kind)
		assert.Equal(t, float64(5000), resp.DurationMs)
		assert.Equal(t, float64(1200), resp.ElapsedMs)
		assert.Equal(t, "no longer needed", resp.Reason)
		assert.Equal(t, "2026-01-15 12:00:00.000", resp.CreatedAt)
	})
}
