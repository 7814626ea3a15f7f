package timer

import (
	"fmt"

	"github.com/columbia6/time/internal/domain/entity"
	errs "github.com/columbia6/time/internal/domain/error"
)

// Limits bounds what the timer service accepts
type Limits struct {
	// MaxDurationMs is the longest wait a single timer or delay may request
	MaxDurationMs float64
	// MaxActive is the maximum number of concurrently armed timers
	MaxActive int
	// DefaultListLimit is used when a listing request does not set a limit
	DefaultListLimit int
	// MaxListLimit caps the page size of listing requests
	MaxListLimit int
}

// TimerValidator provides validation for timer requests
type TimerValidator struct {
	limits Limits
}

// NewTimerValidator creates a new TimerValidator
func NewTimerValidator(limits Limits) *TimerValidator {
	return &TimerValidator{limits: limits}
}

// ValidateSchedule validates a request to arm a new timer
func (v *TimerValidator) ValidateSchedule(durationMs float64, activeCount int) error {
	// Validate duration
	if err := v.validateDuration(durationMs); err != nil {
		return err
	}

	// Validate capacity
	if v.limits.MaxActive > 0 && activeCount >= v.limits.MaxActive {
		return fmt.Errorf("%w: %d timers already active", errs.ErrTooManyTimers, activeCount)
	}

	return nil
}

// ValidateDelay validates an inline delay request. Non-positive durations
// are allowed and complete immediately.
func (v *TimerValidator) ValidateDelay(durationMs float64) error {
	if durationMs <= 0 {
		return nil
	}
	return v.validateUpperBound(durationMs)
}

// validateDuration checks that a timer duration is positive and within bounds
func (v *TimerValidator) validateDuration(durationMs float64) error {
	if durationMs <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %s", errs.ErrInvalidTimerDuration, entity.FormatDuration(durationMs))
	}
	return v.validateUpperBound(durationMs)
}

// validateUpperBound checks a duration against the configured maximum
func (v *TimerValidator) validateUpperBound(durationMs float64) error {
	if v.limits.MaxDurationMs > 0 && durationMs > v.limits.MaxDurationMs {
		return fmt.Errorf(
			"%w: %s exceeds maximum %s",
			errs.ErrTimerDurationTooLong,
			entity.FormatDuration(durationMs),
			entity.FormatDuration(v.limits.MaxDurationMs),
		)
	}
	return nil
}

// ClampListLimit normalises a listing page size against the configured bounds
func (v *TimerValidator) ClampListLimit(limit int) int {
	if limit <= 0 {
		return v.limits.DefaultListLimit
	}
	if v.limits.MaxListLimit > 0 && limit > v.limits.MaxListLimit {
		return v.limits.MaxListLimit
	}
	return limit
}
