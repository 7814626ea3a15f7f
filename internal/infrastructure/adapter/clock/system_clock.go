package clock

import (
	"context"
	"time"

	"github.com/columbia6/time/internal/domain/port/core"
)

// SystemClock implements the Clock interface with real wall-clock operations
type SystemClock struct{}

// NewSystemClock creates a new system clock
func NewSystemClock() core.Clock {
	return &SystemClock{}
}

// Now returns the current time
func (c *SystemClock) Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed since t
func (c *SystemClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// Sleep pauses the current goroutine until the duration elapses or the
// context is cancelled
func (c *SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WithTimeout returns a context that will be canceled after the specified timeout
func (c *SystemClock) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}
