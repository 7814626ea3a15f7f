package entity

import (
	"errors"
	"testing"
	"time"

	errs "github.com/columbia6/time/internal/domain/error"
	coremocks "github.com/columbia6/time/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimer(t *testing.T) {
	fixedTime := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	t.Run("should create a pending timer", func(t *testing.T) {
		mockClock := new(coremocks.MockClock)
		mockClock.On("Now").Return(fixedTime)

		timer, err := NewTimer("timer-1", "coffee break", 300000, mockClock)

		require.NoError(t, err)
		assert.Equal(t, "timer-1", timer.ID)
		assert.Equal(t, "coffee break", timer.Label)
		assert.Equal(t, float64(300000), timer.DurationMs)
		assert.Equal(t, TimerPending, timer.Status)
		assert.Equal(t, fixedTime, timer.CreatedAt)
		assert.Equal(t, fixedTime.Add(5*time.Minute), timer.FiresAt)
		assert.Nil(t, timer.CompletedAt)
		assert.False(t, timer.IsComplete())
	})

	t.Run("should reject an empty identifier", func(t *testing.T) {
		mockClock := new(coremocks.MockClock)

		timer, err := NewTimer("", "", 1000, mockClock)

		assert.Nil(t, timer)
		assert.ErrorIs(t, err, errs.ErrInvalidTimerID)
	})

	t.Run("should reject non-positive durations", func(t *testing.T) {
		mockClock := new(coremocks.MockClock)

		for _, durationMs := range []float64{0, -1, -5000} {
			timer, err := NewTimer("timer-1", "", durationMs, mockClock)

			assert.Nil(t, timer)
			assert.ErrorIs(t, err, errs.ErrInvalidTimerDuration)
		}
	})
}

func TestTimerTransitions(t *testing.T) {
	createdAt := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	completedAt := createdAt.Add(2 * time.Second)

	newPendingTimer := func(t *testing.T) (*Timer, *coremocks.MockClock) {
		mockClock := new(coremocks.MockClock)
		mockClock.On("Now").Return(createdAt).Once()
		timer, err := NewTimer("timer-1", "", 5000, mockClock)
		require.NoError(t, err)
		return timer, mockClock
	}

	t.Run("should mark a pending timer as fired", func(t *testing.T) {
		timer, mockClock := newPendingTimer(t)
		mockClock.On("Now").Return(completedAt).Once()

		err := timer.MarkFired(mockClock)

		require.NoError(t, err)
		assert.Equal(t, TimerFired, timer.Status)
		require.NotNil(t, timer.CompletedAt)
		assert.Equal(t, completedAt, *timer.CompletedAt)
		assert.True(t, timer.IsComplete())
	})

	t.Run("should mark a pending timer as cancelled with a reason", func(t *testing.T) {
		timer, mockClock := newPendingTimer(t)
		mockClock.On("Now").Return(completedAt).Once()

		err := timer.MarkCancelled(mockClock, "changed my mind")

		require.NoError(t, err)
		assert.Equal(t, TimerCancelled, timer.Status)
		assert.Equal(t, "changed my mind", timer.CancelReason)
		require.NotNil(t, timer.CompletedAt)
		assert.True(t, timer.IsComplete())
	})

	t.Run("should refuse to fire a completed timer", func(t *testing.T) {
		timer, mockClock := newPendingTimer(t)
		mockClock.On("Now").Return(completedAt)
		require.NoError(t, timer.MarkFired(mockClock))

		err := timer.MarkFired(mockClock)

		assert.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrTimerCompleted)

		var timerErr *errs.TimerError
		require.True(t, errors.As(err, &timerErr))
		assert.Equal(t, "timer-1", timerErr.TimerID)
		assert.Equal(t, string(TimerFired), timerErr.Status)
	})

	t.Run("should refuse to cancel a completed timer", func(t *testing.T) {
		timer, mockClock := newPendingTimer(t)
		mockClock.On("Now").Return(completedAt)
		require.NoError(t, timer.MarkCancelled(mockClock, "first"))

		err := timer.MarkCancelled(mockClock, "second")

		assert.ErrorIs(t, err, errs.ErrTimerCompleted)
		assert.Equal(t, "first", timer.CancelReason)
	})
}

func TestTimerRemainingMs(t *testing.T) {
	createdAt := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	newTimerAt := func(t *testing.T, durationMs float64) (*Timer, *coremocks.MockClock) {
		mockClock := new(coremocks.MockClock)
		mockClock.On("Now").Return(createdAt).Once()
		timer, err := NewTimer("timer-1", "", durationMs, mockClock)
		require.NoError(t, err)
		return timer, mockClock
	}

	t.Run("should report the time left until the timer is due", func(t *testing.T) {
		timer, mockClock := newTimerAt(t, 10000)
		mockClock.On("Now").Return(createdAt.Add(4 * time.Second)).Once()

		assert.Equal(t, float64(6000), timer.RemainingMs(mockClock))
	})

	t.Run("should clamp at zero once the timer is overdue", func(t *testing.T) {
		timer, mockClock := newTimerAt(t, 10000)
		mockClock.On("Now").Return(createdAt.Add(15 * time.Second)).Once()

		assert.Equal(t, float64(0), timer.RemainingMs(mockClock))
	})
}

func TestTimerToResponse(t *testing.T) {
	createdAt := time.Date(2026, 1, 15, 12, 0, 0, 500*int(time.Millisecond), time.UTC)

	t.Run("should render durations and timestamps for the API", func(t *testing.T) {
		mockClock := new(coremocks.MockClock)
		mockClock.On("Now").Return(createdAt)

		timer, err := NewTimer("timer-1", "standup", 5400000, mockClock)
		require.NoError(t, err)

		resp := timer.ToResponse()

		assert.Equal(t, "timer-1", resp.ID)
		assert.Equal(t, "standup", resp.Label)
		assert.Equal(t, float64(5400000), resp.DurationMs)
		assert.Equal(t, "1h30m", resp.Duration)
		assert.Equal(t, string(TimerPending), resp.Status)
		assert.Equal(t, "2026-01-15 12:00:00.500", resp.CreatedAt)
		assert.Equal(t, "2026-01-15 13:30:00.500", resp.FiresAt)
		assert.Empty(t, resp.CompletedAt)
		assert.Empty(t, resp.Reason)
	})

	t.Run("should include completion details once cancelled", func(t *testing.T) {
		mockClock := new(coremocks.MockClock)
		mockClock.On("Now").Return(createdAt)

		timer, err := NewTimer("timer-1", "", 5000, mockClock)
		require.NoError(t, err)
		require.NoError(t, timer.MarkCancelled(mockClock, "no longer needed"))

		resp := timer.ToResponse()

		assert.Equal(t, string(TimerCancelled), resp.Status)
		assert.Equal(t, "no longer needed", resp.Reason)
		assert.Equal(t, "2026-01-15 12:00:00.500", resp.CompletedAt)
	})
}
