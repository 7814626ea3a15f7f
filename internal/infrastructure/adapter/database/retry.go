package database

import (
	"context"
	"math/rand"
	"strings"
	"time"

	coreport "github.com/columbia6/time/internal/domain/port/core"
)

// BackoffPolicy shapes the retry schedule for operations that can hit
// transient failures.
type BackoffPolicy struct {
	Attempts int
	Base     time.Duration
	Cap      time.Duration
	Jitter   float64
}

// connectPolicy derives the dial retry schedule from the configuration.
// RetryDelay is configured in whole seconds.
func connectPolicy(config *Config) BackoffPolicy {
	base := time.Duration(config.RetryDelay) * time.Second
	if base <= 0 {
		base = time.Second
	}

	return BackoffPolicy{
		Attempts: config.RetryAttempts,
		Base:     base,
		Cap:      30 * time.Second,
		Jitter:   0.2,
	}
}

// delay computes the pause before the next try, exponentially grown from
// the base with jitter so parallel clients spread out.
func (p BackoffPolicy) delay(attempt int) time.Duration {
	d := p.Base << uint(attempt)
	if p.Cap > 0 && d > p.Cap {
		d = p.Cap
	}
	if p.Jitter > 0 {
		d += time.Duration(p.Jitter * rand.Float64() * float64(d))
	}
	return d
}

// Retry runs op up to policy.Attempts times, backing off between tries while
// retryable reports the failure as transient. Cancelling the context aborts
// the wait between tries.
func Retry(
	ctx context.Context,
	policy BackoffPolicy,
	label string,
	logger coreport.Logger,
	retryable func(error) bool,
	op func() error,
) error {
	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if !retryable(err) || attempt == attempts-1 {
			break
		}

		pause := policy.delay(attempt)
		logger.Warn("Operation failed, backing off before retry", map[string]any{
			"operation":   label,
			"attempt":     attempt + 1,
			"of":          attempts,
			"retry_after": pause.String(),
			"error":       err.Error(),
		})

		select {
		case <-time.After(pause):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return err
}

// transientMarkers are substrings of errors worth retrying. Matching is
// string based so it covers both drivers.
var transientMarkers = []string{
	"deadlock",
	"serialization",
	"database is locked",
	"connection refused",
	"connection reset",
	"broken pipe",
	"server closed",
	"too many connections",
	"timeout",
	"eof",
}

// IsTransientError reports whether an error is worth retrying
func IsTransientError(err error) bool {
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
