package entity

import (
	"testing"
	"time"

	errs "github.com/columbia6/time/internal/domain/error"
	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	m := NewMoment(2026, time.January, 15, 14, 5, 9, 123)

	t.Run("Standard patterns", func(t *testing.T) {
		testCases := []struct {
			pattern  string
			expected string
		}{
			{"yyyy-MM-dd", "2026-01-15"},
			{"yyyy-MM-dd HH:mm:ss", "2026-01-15 14:05:09"},
			{"yyyy-MM-dd HH:mm:ss.SSS", "2026-01-15 14:05:09.123"},
			{"dd/MM/yyyy", "15/01/2026"},
			{"HH:mm", "14:05"},
		}

		for _, tc := range testCases {
			t.Run(tc.pattern, func(t *testing.T) {
				assert.Equal(t, tc.expected, FormatDate(m, tc.pattern))
			})
		}
	})

	t.Run("Run length one renders without padding", func(t *testing.T) {
		assert.Equal(t, "15/1/2026", FormatDate(m, "d/M/yyyy"))
		assert.Equal(t, "14:5:9", FormatDate(m, "H:m:s"))
	})

	t.Run("Longer runs zero-pad to the run length", func(t *testing.T) {
		early := NewMoment(2026, time.March, 7, 5, 5, 9, 123)
		assert.Equal(t, "07/03", FormatDate(early, "dd/MM"))
		assert.Equal(t, "014", FormatDate(m, "HHH"))
	})

	t.Run("Year runs take the last digits of the padded year", func(t *testing.T) {
		assert.Equal(t, "26", FormatDate(m, "yy"))
		assert.Equal(t, "6", FormatDate(m, "y"))
		assert.Equal(t, "026", FormatDate(m, "yyy"))
		assert.Equal(t, "2026", FormatDate(m, "yyyy"))

		ancient := NewMoment(250, time.January, 1, 0, 0, 0, 0)
		assert.Equal(t, "0250", FormatDate(ancient, "yyyy"))
		assert.Equal(t, "50", FormatDate(ancient, "yy"))
	})

	t.Run("Millisecond runs take the first digits of the padded value", func(t *testing.T) {
		assert.Equal(t, "1", FormatDate(m, "S"))
		assert.Equal(t, "12", FormatDate(m, "SS"))
		assert.Equal(t, "123", FormatDate(m, "SSS"))

		tiny := NewMoment(2026, time.January, 15, 14, 5, 9, 7)
		assert.Equal(t, "0", FormatDate(tiny, "S"))
		assert.Equal(t, "007", FormatDate(tiny, "SSS"))
	})

	t.Run("Only the first run per letter substitutes", func(t *testing.T) {
		assert.Equal(t, "2026 yyyy", FormatDate(m, "yyyy yyyy"))
		assert.Equal(t, "14:05 HH", FormatDate(m, "HH:mm HH"))
	})

	t.Run("Unrecognized characters pass through as literals", func(t *testing.T) {
		assert.Equal(t, "2026-01-15T14:05:09Z", FormatDate(m, "yyyy-MM-ddTHH:mm:ssZ"))
		assert.Equal(t, "at 14h", FormatDate(m, "at HHh"))
	})
}

func TestParseDate(t *testing.T) {
	t.Run("Empty pattern selects the default pattern", func(t *testing.T) {
		m, err := ParseDate("2026-01-15 14:05:09", "")
		assert.NoError(t, err)
		assert.Equal(t, 2026, m.Year())
		assert.Equal(t, time.January, m.Month())
		assert.Equal(t, 15, m.Day())
		assert.Equal(t, 14, m.Hour())
		assert.Equal(t, 5, m.Minute())
		assert.Equal(t, 9, m.Second())
		assert.Equal(t, 0, m.Millisecond())
	})

	t.Run("Custom patterns", func(t *testing.T) {
		m, err := ParseDate("15/01/2026", "dd/MM/yyyy")
		assert.NoError(t, err)
		assert.Equal(t, 2026, m.Year())
		assert.Equal(t, time.January, m.Month())
		assert.Equal(t, 15, m.Day())

		m, err = ParseDate("2026-01-15 14:05:09.123", "yyyy-MM-dd HH:mm:ss.SSS")
		assert.NoError(t, err)
		assert.Equal(t, 123, m.Millisecond())
	})

	t.Run("Fields absent from the pattern use defaults", func(t *testing.T) {
		m, err := ParseDate("14:05", "HH:mm")
		assert.NoError(t, err)
		assert.Equal(t, 0, m.Year())
		assert.Equal(t, time.January, m.Month())
		assert.Equal(t, 1, m.Day())
		assert.Equal(t, 14, m.Hour())
		assert.Equal(t, 5, m.Minute())
		assert.Equal(t, 0, m.Second())
	})

	t.Run("Lexical mismatches report a format error", func(t *testing.T) {
		testCases := []struct {
			input       string
			pattern     string
			description string
		}{
			{"2026/01/15 14:05:09", "", "Wrong separator"},
			{"26-01-15 14:05:09", "", "Too few year digits"},
			{"2026-01-15", "", "Input shorter than pattern"},
			{"2026-01-15 14:05:09xxx", "", "Trailing characters"},
			{"2026-01-15 14:05:0a", "", "Non-digit in digit group"},
			{"", "", "Empty input"},
		}

		for _, tc := range testCases {
			t.Run(tc.description, func(t *testing.T) {
				_, err := ParseDate(tc.input, tc.pattern)
				assert.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrInvalidFormat)
				assert.False(t, errs.IsOverflowError(err))
			})
		}
	})

	t.Run("Impossible calendar dates report an overflow error", func(t *testing.T) {
		testCases := []struct {
			input       string
			description string
		}{
			{"2026-02-30 10:00:00", "February 30th"},
			{"2026-00-15 10:00:00", "Month zero"},
			{"2026-13-01 10:00:00", "Month thirteen"},
			{"2026-04-31 10:00:00", "April 31st"},
		}

		for _, tc := range testCases {
			t.Run(tc.description, func(t *testing.T) {
				_, err := ParseDate(tc.input, "")
				assert.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrDateOverflow)
				assert.True(t, errs.IsOverflowError(err))
				assert.False(t, errs.IsFormatError(err))
			})
		}
	})

	t.Run("Leap day is valid only in leap years", func(t *testing.T) {
		m, err := ParseDate("2028-02-29 00:00:00", "")
		assert.NoError(t, err)
		assert.Equal(t, 29, m.Day())

		_, err = ParseDate("2026-02-29 00:00:00", "")
		assert.ErrorIs(t, err, errs.ErrDateOverflow)
	})

	t.Run("Time field overflow normalizes when the date holds", func(t *testing.T) {
		m, err := ParseDate("2026-01-15 10:99:00", "")
		assert.NoError(t, err)
		assert.Equal(t, 15, m.Day())
		assert.Equal(t, 11, m.Hour())
		assert.Equal(t, 39, m.Minute())
	})

	t.Run("Time field overflow that rolls the date is rejected", func(t *testing.T) {
		_, err := ParseDate("2026-01-15 23:99:00", "")
		assert.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrDateOverflow)
	})

	t.Run("Later token runs must match literally", func(t *testing.T) {
		m, err := ParseDate("2026-01-15 yyyy", "yyyy-MM-dd yyyy")
		assert.NoError(t, err)
		assert.Equal(t, 2026, m.Year())

		_, err = ParseDate("2026-01-15 2026", "yyyy-MM-dd yyyy")
		assert.ErrorIs(t, err, errs.ErrInvalidFormat)
	})

	t.Run("Format then parse round trips", func(t *testing.T) {
		m := NewMoment(2026, time.August, 22, 7, 30, 45, 678)
		pattern := "yyyy-MM-dd HH:mm:ss.SSS"
		parsed, err := ParseDate(FormatDate(m, pattern), pattern)
		assert.NoError(t, err)
		assert.True(t, parsed.Equal(m))
	})
}
