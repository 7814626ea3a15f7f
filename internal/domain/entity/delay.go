package entity

import (
	"context"
	"time"

	errs "github.com/columbia6/time/internal/domain/error"
)

// Delay suspends the calling goroutine until ms milliseconds elapse, the
// signal fires, or the context is cancelled, whichever happens first.
//
// Ordinary completion (the duration elapsed, or ms <= 0) returns nil. A
// duration of zero or less never schedules a timer. Cancellation through
// either the signal or the context returns a CancellationError carrying the
// signal's reason or context.Cause respectively. An already-signaled source
// or already-cancelled context resolves immediately, before any timer is
// created.
//
// Exactly one outcome is delivered: whichever of the timer and the
// cancellation sources fires first wins, the timer is stopped on the way
// out, and the losing path is never observed.
func Delay(ctx context.Context, ms float64, sig *Signal) error {
	if sig != nil && sig.Cancelled() {
		return errs.NewCancellationError(sig.Reason())
	}
	if ctx.Err() != nil {
		return errs.NewCancellationError(context.Cause(ctx))
	}
	if ms <= 0 {
		return nil
	}

	t := time.NewTimer(MillisToDuration(ms))
	defer t.Stop()

	// A nil signal contributes a nil channel, which blocks forever and
	// leaves the timer and context as the only live arms.
	var sigDone <-chan struct{}
	if sig != nil {
		sigDone = sig.Done()
	}

	select {
	case <-t.C:
		return nil
	case <-sigDone:
		return errs.NewCancellationError(sig.Reason())
	case <-ctx.Done():
		return errs.NewCancellationError(context.Cause(ctx))
	}
}
