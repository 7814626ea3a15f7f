package entity

import "time"

// Moment is a calendar instant with millisecond precision: year, month
// (1-12), day, hour, minute, second, millisecond. It is backed by a UTC
// time.Time truncated to the millisecond, so two moments built from the
// same fields compare equal.
type Moment struct {
	t time.Time
}

// NewMoment builds a moment from calendar fields. Out-of-range fields are
// normalized the way time.Date normalizes them; strict validation is the
// date parser's job, not the constructor's.
func NewMoment(year int, month time.Month, day, hour, minute, second, millisecond int) Moment {
	return Moment{t: time.Date(year, month, day, hour, minute, second, millisecond*int(time.Millisecond), time.UTC)}
}

// MomentFromTime converts a time.Time to a moment, dropping sub-millisecond
// precision and any location information.
func MomentFromTime(t time.Time) Moment {
	return Moment{t: t.UTC().Truncate(time.Millisecond)}
}

// MomentFromUnixMilli builds a moment from a Unix millisecond timestamp
func MomentFromUnixMilli(ms int64) Moment {
	return Moment{t: time.UnixMilli(ms).UTC()}
}

// Year returns the 4-digit calendar year
func (m Moment) Year() int { return m.t.Year() }

// Month returns the 1-based calendar month
func (m Moment) Month() time.Month { return m.t.Month() }

// Day returns the day of the month
func (m Moment) Day() int { return m.t.Day() }

// Hour returns the hour within the day, 0-23
func (m Moment) Hour() int { return m.t.Hour() }

// Minute returns the minute within the hour, 0-59
func (m Moment) Minute() int { return m.t.Minute() }

// Second returns the second within the minute, 0-59
func (m Moment) Second() int { return m.t.Second() }

// Millisecond returns the millisecond within the second, 0-999
func (m Moment) Millisecond() int { return m.t.Nanosecond() / int(time.Millisecond) }

// Time returns the underlying UTC time.Time
func (m Moment) Time() time.Time { return m.t }

// UnixMilli returns the moment as a Unix millisecond timestamp
func (m Moment) UnixMilli() int64 { return m.t.UnixMilli() }

// Equal reports whether two moments denote the same instant
func (m Moment) Equal(other Moment) bool { return m.t.Equal(other.t) }

// IsZero reports whether the moment is the zero value
func (m Moment) IsZero() bool { return m.t.IsZero() }

// String renders the moment with the default date format
func (m Moment) String() string { return FormatDate(m, DefaultDateFormat) }
