package duration

import (
	"context"
	"testing"

	errs "github.com/columbia6/time/internal/domain/error"
	"github.com/columbia6/time/internal/domain/port/usecase"
	coremocks "github.com/columbia6/time/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newQuietLogger() *coremocks.MockLogger {
	mockLogger := new(coremocks.MockLogger)
	mockLogger.On("Debug", mock.Anything, mock.Anything)
	mockLogger.On("Info", mock.Anything, mock.Anything)
	mockLogger.On("Warn", mock.Anything, mock.Anything)
	mockLogger.On("Error", mock.Anything, mock.Anything)
	return mockLogger
}

func TestFormatDurationUseCase(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name         string
		milliseconds float64
		expected     string
	}{
		{"Compound duration", 5500, "5s500ms"},
		{"Hours and minutes", 5400000, "1h30m"},
		{"Zero", 0, "0ms"},
		{"Negative", -90000, "-1m30s"},
		{"Fractional milliseconds", 500.25, "500.25ms"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u := NewDurationUseCase(newQuietLogger())

			result, err := u.FormatDuration(ctx, usecase.FormatDurationRequest{Milliseconds: tc.milliseconds})

			require.NoError(t, err)
			assert.Equal(t, tc.expected, result.Result)
		})
	}
}

func TestParseDurationUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("should parse a compound duration string", func(t *testing.T) {
		u := NewDurationUseCase(newQuietLogger())

		result, err := u.ParseDuration(ctx, usecase.ParseDurationRequest{Input: "1h 30m"})

		require.NoError(t, err)
		require.NotNil(t, result.Milliseconds)
		assert.Equal(t, float64(5400000), *result.Milliseconds)
	})

	t.Run("should return the parse error by default", func(t *testing.T) {
		mockLogger := newQuietLogger()
		u := NewDurationUseCase(mockLogger)

		result, err := u.ParseDuration(ctx, usecase.ParseDurationRequest{Input: "not a duration"})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrInvalidFormat)
		mockLogger.AssertCalled(t, "Warn", mock.Anything, mock.Anything)
	})

	t.Run("should swallow the parse error in silent mode", func(t *testing.T) {
		mockLogger := newQuietLogger()
		u := NewDurationUseCase(mockLogger)

		result, err := u.ParseDuration(ctx, usecase.ParseDurationRequest{Input: "not a duration", Silent: true})

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Nil(t, result.Milliseconds)
		mockLogger.AssertNotCalled(t, "Warn", mock.Anything, mock.Anything)
	})

	t.Run("should treat empty input as a parse failure", func(t *testing.T) {
		u := NewDurationUseCase(newQuietLogger())

		_, err := u.ParseDuration(ctx, usecase.ParseDurationRequest{Input: ""})
		assert.ErrorIs(t, err, errs.ErrInvalidFormat)

		result, err := u.ParseDuration(ctx, usecase.ParseDurationRequest{Input: "", Silent: true})
		require.NoError(t, err)
		assert.Nil(t, result.Milliseconds)
	})
}
