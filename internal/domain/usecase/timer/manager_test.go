package timer

import (
	"context"
	"testing"
	"time"

	"github.com/columbia6/time/internal/domain/entity"
	errs "github.com/columbia6/time/internal/domain/error"
	coremocks "github.com/columbia6/time/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type completion struct {
	timer     *entity.Timer
	cancelErr *errs.CancellationError
}

type managerFixture struct {
	manager     *TimerManager
	clock       *coremocks.MockClock
	completions chan completion
}

func newManagerFixture() *managerFixture {
	f := &managerFixture{
		clock:       new(coremocks.MockClock),
		completions: make(chan completion, 8),
	}
	f.clock.On("Now").Return(time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC))
	f.manager = NewTimerManager(newQuietLogger(), f.clock, func(timer *entity.Timer, cancelErr *errs.CancellationError) {
		f.completions <- completion{timer: timer, cancelErr: cancelErr}
	})
	return f
}

func (f *managerFixture) newTimer(t *testing.T, id string, durationMs float64) *entity.Timer {
	timer, err := entity.NewTimer(id, "", durationMs, f.clock)
	require.NoError(t, err)
	return timer
}

func (f *managerFixture) waitCompletion(t *testing.T) completion {
	select {
	case c := <-f.completions:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for timer completion")
		return completion{}
	}
}

func TestTimerManagerFire(t *testing.T) {
	t.Run("should invoke the completion handler when the duration elapses", func(t *testing.T) {
		f := newManagerFixture()

		err := f.manager.Start(f.newTimer(t, "timer-1", 20))
		require.NoError(t, err)
		assert.Equal(t, 1, f.manager.ActiveCount())

		c := f.waitCompletion(t)
		assert.Equal(t, "timer-1", c.timer.ID)
		assert.Nil(t, c.cancelErr)

		require.Eventually(t, func() bool {
			return f.manager.ActiveCount() == 0
		}, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("should refuse a duplicate timer ID", func(t *testing.T) {
		f := newManagerFixture()

		require.NoError(t, f.manager.Start(f.newTimer(t, "timer-1", 60000)))
		err := f.manager.Start(f.newTimer(t, "timer-1", 60000))

		assert.ErrorIs(t, err, errs.ErrInternalServer)
		assert.Equal(t, 1, f.manager.ActiveCount())

		require.NoError(t, f.manager.Shutdown(context.Background()))
	})
}

func TestTimerManagerCancel(t *testing.T) {
	t.Run("should hand the cancellation reason to the completion handler", func(t *testing.T) {
		f := newManagerFixture()
		require.NoError(t, f.manager.Start(f.newTimer(t, "timer-1", 60000)))

		err := f.manager.Cancel(context.Background(), "timer-1", "changed plans")

		require.NoError(t, err)
		// Cancel returning means the final state is already recorded
		assert.Equal(t, 0, f.manager.ActiveCount())

		c := f.waitCompletion(t)
		require.NotNil(t, c.cancelErr)
		assert.Equal(t, "changed plans", c.cancelErr.Reason)
	})

	t.Run("should report an unknown timer", func(t *testing.T) {
		f := newManagerFixture()

		err := f.manager.Cancel(context.Background(), "no-such-timer", "reason")

		assert.ErrorIs(t, err, errs.ErrTimerNotFound)
	})

	t.Run("should report a timer that already fired", func(t *testing.T) {
		f := newManagerFixture()
		require.NoError(t, f.manager.Start(f.newTimer(t, "timer-1", 20)))
		f.waitCompletion(t)
		require.Eventually(t, func() bool {
			return f.manager.ActiveCount() == 0
		}, 2*time.Second, 10*time.Millisecond)

		err := f.manager.Cancel(context.Background(), "timer-1", "too late")

		assert.ErrorIs(t, err, errs.ErrTimerNotFound)
	})
}

func TestTimerManagerShutdown(t *testing.T) {
	t.Run("should cancel active timers and stop accepting new ones", func(t *testing.T) {
		f := newManagerFixture()
		require.NoError(t, f.manager.Start(f.newTimer(t, "timer-1", 60000)))
		require.NoError(t, f.manager.Start(f.newTimer(t, "timer-2", 60000)))
		assert.True(t, f.manager.Accepting())

		err := f.manager.Shutdown(context.Background())

		require.NoError(t, err)
		assert.False(t, f.manager.Accepting())
		assert.Equal(t, 0, f.manager.ActiveCount())

		for i := 0; i < 2; i++ {
			c := f.waitCompletion(t)
			require.NotNil(t, c.cancelErr)
			assert.Equal(t, ShutdownReason, c.cancelErr.Reason)
		}

		assert.ErrorIs(t, f.manager.Start(f.newTimer(t, "timer-3", 60000)), errs.ErrShuttingDown)
	})

	t.Run("should be safe with no active timers", func(t *testing.T) {
		f := newManagerFixture()

		assert.NoError(t, f.manager.Shutdown(context.Background()))
	})
}

func TestNewTimerManagerRequiresHandler(t *testing.T) {
	assert.Panics(t, func() {
		NewTimerManager(newQuietLogger(), new(coremocks.MockClock), nil)
	})
}
