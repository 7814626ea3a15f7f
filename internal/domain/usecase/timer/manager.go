package timer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/columbia6/time/internal/domain/entity"
	errs "github.com/columbia6/time/internal/domain/error"
	coreport "github.com/columbia6/time/internal/domain/port/core"
)

// ShutdownReason is recorded on timers cancelled because the service is
// draining
const ShutdownReason = "server shutting down"

// CompletionHandler is invoked exactly once per timer, from the timer's own
// goroutine, after it fires or is cancelled. cancelErr is nil for a fired
// timer.
type CompletionHandler func(timer *entity.Timer, cancelErr *errs.CancellationError)

// activeTimer pairs a running timer with its cancellation signal. done is
// closed after the completion handler has run and the timer left the
// registry, so cancellers can wait for the final state to be visible.
type activeTimer struct {
	timer *entity.Timer
	sig   *entity.Signal
	done  chan struct{}
}

// TimerManager owns the goroutine and cancellation signal of every active
// timer
type TimerManager struct {
	logger     coreport.Logger
	clock      coreport.Clock
	onComplete CompletionHandler

	// Registry of active timers by ID
	active  sync.Map // map[string]*activeTimer
	workers sync.WaitGroup

	mu       sync.Mutex
	count    int
	draining bool
}

// NewTimerManager creates a new timer manager
func NewTimerManager(
	logger coreport.Logger,
	clock coreport.Clock,
	onComplete CompletionHandler,
) *TimerManager {
	if onComplete == nil {
		panic("Timer completion handler cannot be nil")
	}

	return &TimerManager{
		logger:     logger,
		clock:      clock,
		onComplete: onComplete,
	}
}

// Start arms a pending timer and launches its goroutine. The manager takes
// ownership of the entity; callers must not touch it afterwards.
func (m *TimerManager) Start(timer *entity.Timer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.draining {
		return errs.ErrShuttingDown
	}

	at := &activeTimer{
		timer: timer,
		sig:   entity.NewSignal(),
		done:  make(chan struct{}),
	}
	if _, loaded := m.active.LoadOrStore(timer.ID, at); loaded {
		m.logger.Error("Timer ID already registered", map[string]any{
			"timer_id": timer.ID,
		})
		return errs.ErrInternalServer
	}

	m.count++
	m.workers.Add(1)
	go m.run(at)

	m.logger.Debug("Timer armed", map[string]any{
		"timer_id":    timer.ID,
		"duration_ms": timer.DurationMs,
	})
	return nil
}

// Cancel fires the cancellation signal of an active timer and waits until
// its final state has been recorded. Returns ErrTimerNotFound when no
// active timer has this ID and ErrTimerCompleted when the timer won the
// race and completed first.
func (m *TimerManager) Cancel(ctx context.Context, id, reason string) error {
	value, ok := m.active.Load(id)
	if !ok {
		return errs.ErrTimerNotFound
	}
	at := value.(*activeTimer)

	if !at.sig.Cancel(reason) {
		return errs.NewTimerError(id, string(entity.TimerCancelled), "timer already completing", errs.ErrTimerCompleted)
	}

	m.logger.Debug("Timer cancellation signaled", map[string]any{
		"timer_id": id,
		"reason":   reason,
	})

	// Wait for the worker to persist the final state so callers read their
	// own cancellation.
	select {
	case <-at.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ActiveCount returns the number of timers currently armed
func (m *TimerManager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

// Accepting reports whether new timers may be started
func (m *TimerManager) Accepting() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.draining
}

// run blocks until the timer fires or its signal is cancelled, then hands
// the outcome to the completion handler
func (m *TimerManager) run(at *activeTimer) {
	defer m.workers.Done()

	t := at.timer
	err := entity.Delay(context.Background(), t.DurationMs, at.sig)

	var cancelErr *errs.CancellationError
	if err != nil && !errors.As(err, &cancelErr) {
		// Delay only ever fails with a cancellation; anything else would
		// be a programming error worth surfacing loudly.
		m.logger.Error("Timer wait failed unexpectedly", map[string]any{
			"timer_id": t.ID,
			"error":    err.Error(),
		})
		cancelErr = &errs.CancellationError{Reason: fmt.Sprintf("internal error: %v", err)}
	}

	m.onComplete(t, cancelErr)

	m.active.Delete(t.ID)
	m.mu.Lock()
	m.count--
	m.mu.Unlock()
	close(at.done)

	m.logger.Info("Timer completed", map[string]any{
		"timer_id": t.ID,
		"status":   string(t.Status),
	})
}

// Shutdown stops accepting new timers, cancels all active ones, and waits
// for their goroutines to finish or the context to expire
func (m *TimerManager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	m.draining = true
	m.mu.Unlock()

	m.logger.Info("Shutting down timer manager", nil)

	m.active.Range(func(id, value any) bool {
		if at, ok := value.(*activeTimer); ok {
			at.sig.Cancel(ShutdownReason)
		}
		return true
	})

	done := make(chan struct{})
	go func() {
		m.workers.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("Timer manager shut down successfully", nil)
		return nil
	case <-ctx.Done():
		m.logger.Warn("Timer manager shutdown timed out", map[string]any{
			"error": ctx.Err().Error(),
		})
		return ctx.Err()
	}
}
