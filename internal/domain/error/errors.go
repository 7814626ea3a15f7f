package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidFormat       = 4001
	CodeDateOverflow        = 4002
	CodeInvalidTimerRequest = 4003
	CodeTimerLimitReached   = 4004
	CodeInvalidRequest      = 4005
	CodeTimerNotFound       = 4040
	CodeTimerCompleted      = 4090
	CodeRateLimited         = 4290
	CodeCancelled           = 4990

	// 5xxx - Server errors
	CodeInternalServer = 5000
	CodeShuttingDown   = 5030
)

// Base error types
var (
	// ErrInvalidFormat is returned when a duration or date string does not
	// conform to the expected grammar or pattern
	ErrInvalidFormat = errors.New("input does not match expected format")

	// ErrDateOverflow is returned when a date string matches the pattern but
	// the resulting calendar fields are not a valid calendar date
	ErrDateOverflow = errors.New("calendar fields do not form a valid date")

	// ErrCancelled is returned when a delay or timer is cancelled before it fires
	ErrCancelled = errors.New("operation cancelled")

	// ErrInvalidTimerDuration is returned when a timer duration is not positive
	ErrInvalidTimerDuration = errors.New("timer duration must be positive")

	// ErrTimerDurationTooLong is returned when a timer duration exceeds the configured maximum
	ErrTimerDurationTooLong = errors.New("timer duration exceeds maximum")

	// ErrTooManyTimers is returned when the active timer limit has been reached
	ErrTooManyTimers = errors.New("active timer limit reached")

	// ErrInvalidTimerID is returned when the timer ID is empty or malformed
	ErrInvalidTimerID = errors.New("timer ID cannot be empty")

	// ErrTimerNotFound is returned when the requested timer doesn't exist
	ErrTimerNotFound = errors.New("timer not found")

	// ErrTimerCompleted is returned when cancelling a timer that already fired or was cancelled
	ErrTimerCompleted = errors.New("timer already completed")

	// ErrRateLimited is returned when a caller exceeds the request rate limit
	ErrRateLimited = errors.New("too many requests")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrShuttingDown is returned when the service is draining and refuses new work
	ErrShuttingDown = errors.New("service is shutting down")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidFormat):
		return CodeInvalidFormat
	case errors.Is(err, ErrDateOverflow):
		return CodeDateOverflow
	case errors.Is(err, ErrCancelled):
		return CodeCancelled
	case errors.Is(err, ErrInvalidTimerDuration),
		errors.Is(err, ErrTimerDurationTooLong),
		errors.Is(err, ErrInvalidTimerID):
		return CodeInvalidTimerRequest
	case errors.Is(err, ErrTooManyTimers):
		return CodeTimerLimitReached
	case errors.Is(err, ErrTimerNotFound):
		return CodeTimerNotFound
	case errors.Is(err, ErrTimerCompleted):
		return CodeTimerCompleted
	case errors.Is(err, ErrRateLimited):
		return CodeRateLimited
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrShuttingDown):
		return CodeShuttingDown
	default:
		return CodeInternalServer
	}
}

// CancellationError reports that a delay or timer was cancelled before it
// fired. Reason is the value handed to the cancelling side and is opaque to
// this package.
type CancellationError struct {
	Reason any
}

// Error implements the error interface
func (e *CancellationError) Error() string {
	if e.Reason == nil {
		return "operation cancelled"
	}
	return fmt.Sprintf("operation cancelled: %v", e.Reason)
}

// Is checks if the target error is an ErrCancelled
func (e *CancellationError) Is(target error) bool {
	return target == ErrCancelled
}

// LogFields returns a map of fields for structured logging
func (e *CancellationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "cancellation",
		"reason":     fmt.Sprintf("%v", e.Reason),
		"error_code": CodeCancelled,
	}
}

// NewCancellationError creates a cancellation error carrying the given reason
func NewCancellationError(reason any) error {
	return &CancellationError{Reason: reason}
}

// FormatError reports that a duration or date string failed to parse.
// Pattern is empty for duration input.
type FormatError struct {
	Input   string
	Pattern string
	Detail  string
}

// Error implements the error interface
func (e *FormatError) Error() string {
	if e.Pattern == "" {
		return fmt.Sprintf("cannot parse %q: %s", e.Input, e.Detail)
	}
	return fmt.Sprintf("cannot parse %q with pattern %q: %s", e.Input, e.Pattern, e.Detail)
}

// Is checks if the target error is an ErrInvalidFormat
func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// LogFields returns a map of fields for structured logging
func (e *FormatError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "format",
		"input":      e.Input,
		"pattern":    e.Pattern,
		"detail":     e.Detail,
		"error_code": CodeInvalidFormat,
	}
}

// NewFormatError creates a detailed format error
func NewFormatError(input, pattern, detail string) error {
	return &FormatError{
		Input:   input,
		Pattern: pattern,
		Detail:  detail,
	}
}

// OverflowError reports calendar fields that matched the pattern lexically
// but do not form a real date, such as February 30
type OverflowError struct {
	Year  int
	Month int
	Day   int
}

// Error implements the error interface
func (e *OverflowError) Error() string {
	return fmt.Sprintf("invalid calendar date: year %d, month %d, day %d", e.Year, e.Month, e.Day)
}

// Is checks if the target error is an ErrDateOverflow
func (e *OverflowError) Is(target error) bool {
	return target == ErrDateOverflow
}

// LogFields returns a map of fields for structured logging
func (e *OverflowError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "date_overflow",
		"year":       e.Year,
		"month":      e.Month,
		"day":        e.Day,
		"error_code": CodeDateOverflow,
	}
}

// NewOverflowError creates a detailed calendar overflow error
func NewOverflowError(year, month, day int) error {
	return &OverflowError{
		Year:  year,
		Month: month,
		Day:   day,
	}
}

// TimerError represents an error related to a scheduled timer
type TimerError struct {
	TimerID string
	Status  string
	Reason  string
	Err     error
}

// Error implements the error interface for TimerError
func (e *TimerError) Error() string {
	return fmt.Sprintf("timer error for ID %s (status: %s): %s - %v",
		e.TimerID, e.Status, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *TimerError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *TimerError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "timer_error",
		"timer_id":   e.TimerID,
		"status":     e.Status,
		"reason":     e.Reason,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewTimerError creates a detailed timer error
func NewTimerError(timerID, status, reason string, err error) error {
	return &TimerError{
		TimerID: timerID,
		Status:  status,
		Reason:  reason,
		Err:     err,
	}
}

// IsCancellationError checks if the error represents a cancellation
func IsCancellationError(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// IsFormatError checks if the error is a format error
func IsFormatError(err error) bool {
	return errors.Is(err, ErrInvalidFormat)
}

// IsOverflowError checks if the error is a calendar overflow error
func IsOverflowError(err error) bool {
	return errors.Is(err, ErrDateOverflow)
}

// IsParseError checks if the error is any parse failure kind. Format and
// overflow failures collapse to the same outward contract for callers that
// only care about success or failure.
func IsParseError(err error) bool {
	return errors.Is(err, ErrInvalidFormat) || errors.Is(err, ErrDateOverflow)
}

// IsTimerNotFoundError checks if the error is a timer not found error
func IsTimerNotFoundError(err error) bool {
	return errors.Is(err, ErrTimerNotFound)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrTimerNotFound)
}
