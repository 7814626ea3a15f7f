package error

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestBaseErrorTypes(t *testing.T) {
	// Test to ensure all base error types are defined properly
	if ErrInvalidFormat.Error() != "input does not match expected format" {
		t.Errorf("ErrInvalidFormat has unexpected message: %s", ErrInvalidFormat.Error())
	}
	if ErrDateOverflow.Error() != "calendar fields do not form a valid date" {
		t.Errorf("ErrDateOverflow has unexpected message: %s", ErrDateOverflow.Error())
	}
	if ErrCancelled.Error() != "operation cancelled" {
		t.Errorf("ErrCancelled has unexpected message: %s", ErrCancelled.Error())
	}
	// Add more assertions for other base error types as needed
}

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"InvalidFormat", ErrInvalidFormat, 4001},
		{"DateOverflow", ErrDateOverflow, 4002},
		{"InvalidTimerDuration", ErrInvalidTimerDuration, 4003},
		{"TimerDurationTooLong", ErrTimerDurationTooLong, 4003},
		{"InvalidTimerID", ErrInvalidTimerID, 4003},
		{"TooManyTimers", ErrTooManyTimers, 4004},
		{"InvalidRequest", ErrInvalidRequest, 4005},
		{"TimerNotFound", ErrTimerNotFound, 4040},
		{"TimerCompleted", ErrTimerCompleted, 4090},
		{"RateLimited", ErrRateLimited, 4290},
		{"Cancelled", ErrCancelled, 4990},
		{"ShuttingDown", ErrShuttingDown, 5030},
		{"UnknownError", errors.New("unknown error"), 5000},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrTimerNotFound), 4040},
		{"CancellationError", NewCancellationError("user request"), 4990},
		{"FormatError", NewFormatError("1x", "", "unknown unit"), 4001},
		{"OverflowError", NewOverflowError(2026, 2, 30), 4002},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := ErrorCode(tc.err)
			if code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestCancellationError(t *testing.T) {
	err := NewCancellationError("shutdown requested")
	if err == nil {
		t.Fatal("NewCancellationError returned nil")
	}

	// Test Error method
	expectedErrMsg := "operation cancelled: shutdown requested"
	if err.Error() != expectedErrMsg {
		t.Errorf("CancellationError.Error() = %s, want %s", err.Error(), expectedErrMsg)
	}

	// Test Is method through errors.Is
	if !errors.Is(err, ErrCancelled) {
		t.Errorf("errors.Is(err, ErrCancelled) = false, want true")
	}

	// Test through helper function
	if !IsCancellationError(err) {
		t.Errorf("IsCancellationError(err) = false, want true")
	}

	// Reason stays available to callers that inspect it
	var cancelErr *CancellationError
	if !errors.As(err, &cancelErr) {
		t.Fatalf("errors.As failed: not a *CancellationError")
	}
	if cancelErr.Reason != "shutdown requested" {
		t.Errorf("Reason = %v, want shutdown requested", cancelErr.Reason)
	}
}

func TestCancellationErrorNilReason(t *testing.T) {
	err := NewCancellationError(nil)

	if err.Error() != "operation cancelled" {
		t.Errorf("CancellationError.Error() = %s, want operation cancelled", err.Error())
	}
	if !IsCancellationError(err) {
		t.Errorf("IsCancellationError(err) = false, want true")
	}
}

func TestCancellationErrorContextReason(t *testing.T) {
	// Context cancellation causes flow through unchanged as the reason
	err := NewCancellationError(context.Canceled)

	var cancelErr *CancellationError
	if !errors.As(err, &cancelErr) {
		t.Fatalf("errors.As failed: not a *CancellationError")
	}
	if cancelErr.Reason != context.Canceled {
		t.Errorf("Reason = %v, want context.Canceled", cancelErr.Reason)
	}
}

func TestFormatError(t *testing.T) {
	err := NewFormatError("1x", "", "unknown unit at position 1")
	if err == nil {
		t.Fatal("NewFormatError returned nil")
	}

	// Test Error method
	expectedErrMsg := `cannot parse "1x": unknown unit at position 1`
	if err.Error() != expectedErrMsg {
		t.Errorf("FormatError.Error() = %s, want %s", err.Error(), expectedErrMsg)
	}

	// Test Is method through errors.Is
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("errors.Is(err, ErrInvalidFormat) = false, want true")
	}

	// Test through helper function
	if !IsFormatError(err) {
		t.Errorf("IsFormatError(err) = false, want true")
	}
}

func TestFormatErrorWithPattern(t *testing.T) {
	err := NewFormatError("2026/01/15", "yyyy-MM-dd", "expected '-' at position 4")

	expectedErrMsg := `cannot parse "2026/01/15" with pattern "yyyy-MM-dd": expected '-' at position 4`
	if err.Error() != expectedErrMsg {
		t.Errorf("FormatError.Error() = %s, want %s", err.Error(), expectedErrMsg)
	}

	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("errors.As failed: not a *FormatError")
	}
	if formatErr.Pattern != "yyyy-MM-dd" {
		t.Errorf("Pattern = %s, want yyyy-MM-dd", formatErr.Pattern)
	}
}

func TestOverflowError(t *testing.T) {
	err := NewOverflowError(2026, 2, 30)
	if err == nil {
		t.Fatal("NewOverflowError returned nil")
	}

	// Test Error method
	expectedErrMsg := "invalid calendar date: year 2026, month 2, day 30"
	if err.Error() != expectedErrMsg {
		t.Errorf("OverflowError.Error() = %s, want %s", err.Error(), expectedErrMsg)
	}

	// Test Is method through errors.Is
	if !errors.Is(err, ErrDateOverflow) {
		t.Errorf("errors.Is(err, ErrDateOverflow) = false, want true")
	}

	// Overflow must stay distinct from lexical format failures
	if errors.Is(err, ErrInvalidFormat) {
		t.Errorf("errors.Is(err, ErrInvalidFormat) = true, want false")
	}

	// Test through helper functions
	if !IsOverflowError(err) {
		t.Errorf("IsOverflowError(err) = false, want true")
	}
	if !IsParseError(err) {
		t.Errorf("IsParseError(err) = false, want true")
	}
}

func TestTimerError(t *testing.T) {
	baseErr := ErrTimerCompleted
	timerErr := &TimerError{
		TimerID: "timer-123",
		Status:  "fired",
		Reason:  "timer can only be cancelled from pending",
		Err:     baseErr,
	}

	// Test Error method
	expectedErrMsg := "timer error for ID timer-123 (status: fired): timer can only be cancelled from pending - timer already completed"
	if timerErr.Error() != expectedErrMsg {
		t.Errorf("TimerError.Error() = %s, want %s", timerErr.Error(), expectedErrMsg)
	}

	// Test Unwrap method
	if !errors.Is(timerErr, baseErr) {
		t.Errorf("errors.Is(timerErr, baseErr) = false, want true")
	}

	// The code comes from the wrapped error
	if ErrorCode(timerErr) != CodeTimerCompleted {
		t.Errorf("ErrorCode(timerErr) = %d, want %d", ErrorCode(timerErr), CodeTimerCompleted)
	}
}

func TestNewTimerError(t *testing.T) {
	baseErr := ErrTimerCompleted
	timerErr := NewTimerError("timer-789", "cancelled", "timer can only fire from pending", baseErr)

	if timerErr == nil {
		t.Fatal("NewTimerError returned nil")
	}

	// Check if the error is correctly created
	var timerErrCast *TimerError
	if !errors.As(timerErr, &timerErrCast) {
		t.Fatalf("errors.As failed: not a *TimerError")
	}

	if timerErrCast.TimerID != "timer-789" {
		t.Errorf("TimerID = %s, want timer-789", timerErrCast.TimerID)
	}

	if timerErrCast.Status != "cancelled" {
		t.Errorf("Status = %s, want cancelled", timerErrCast.Status)
	}

	if timerErrCast.Reason != "timer can only fire from pending" {
		t.Errorf("Reason = %s, want timer can only fire from pending", timerErrCast.Reason)
	}

	// Test unwrapping
	if !errors.Is(timerErr, baseErr) {
		t.Errorf("errors.Is(timerErr, baseErr) = false, want true")
	}
}

func TestErrorHelperFunctions(t *testing.T) {
	// Test regular errors
	if IsCancellationError(ErrInvalidFormat) {
		t.Errorf("IsCancellationError(ErrInvalidFormat) = true, want false")
	}

	if IsFormatError(ErrDateOverflow) {
		t.Errorf("IsFormatError(ErrDateOverflow) = true, want false")
	}

	if IsOverflowError(ErrInvalidFormat) {
		t.Errorf("IsOverflowError(ErrInvalidFormat) = true, want false")
	}

	// Test wrapped errors
	wrappedFormatErr := fmt.Errorf("wrapped: %w", ErrInvalidFormat)
	if !IsFormatError(wrappedFormatErr) {
		t.Errorf("IsFormatError(wrappedFormatErr) = false, want true")
	}

	if !IsParseError(wrappedFormatErr) {
		t.Errorf("IsParseError(wrappedFormatErr) = false, want true")
	}

	wrappedNotFoundErr := fmt.Errorf("wrapped: %w", ErrTimerNotFound)
	if !IsTimerNotFoundError(wrappedNotFoundErr) {
		t.Errorf("IsTimerNotFoundError(wrappedNotFoundErr) = false, want true")
	}
	if !IsNotFoundError(wrappedNotFoundErr) {
		t.Errorf("IsNotFoundError(wrappedNotFoundErr) = false, want true")
	}

	if !IsNotFoundError(ErrNotFound) {
		t.Errorf("IsNotFoundError(ErrNotFound) = false, want true")
	}
	if IsTimerNotFoundError(ErrNotFound) {
		t.Errorf("IsTimerNotFoundError(ErrNotFound) = true, want false")
	}
}

func TestLogFields(t *testing.T) {
	testCases := []struct {
		name         string
		err          error
		expectedType string
	}{
		{"Cancellation", NewCancellationError("stop"), "cancellation"},
		{"Format", NewFormatError("abc", "", "no digits"), "format"},
		{"Overflow", NewOverflowError(2026, 13, 1), "date_overflow"},
		{"Timer", NewTimerError("timer-1", "fired", "already done", ErrTimerCompleted), "timer_error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fields, ok := tc.err.(interface{ LogFields() map[string]any })
			if !ok {
				t.Fatalf("%T does not expose LogFields", tc.err)
			}
			if got := fields.LogFields()["error_type"]; got != tc.expectedType {
				t.Errorf("error_type = %v, want %s", got, tc.expectedType)
			}
		})
	}
}
