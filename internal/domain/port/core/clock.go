package core

import (
	"context"
	"time"
)

// Clock abstracts wall-clock access for the domain
type Clock interface {
	// Now returns the current instant
	Now() time.Time
	// Since returns the time elapsed since t
	Since(t time.Time) time.Duration
	// Sleep blocks for d or until ctx is cancelled, whichever comes first,
	// returning the context error in the cancelled case
	Sleep(ctx context.Context, d time.Duration) error
	// WithTimeout derives a context that is cancelled after timeout
	WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc)
}
