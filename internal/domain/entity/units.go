package entity

import "time"

// Time unit multipliers expressed as real-number millisecond counts.
// Durations throughout the domain are plain float64 milliseconds; zero,
// negative, and fractional values are all valid.
const (
	Millisecond float64 = 1
	Second              = 1000 * Millisecond
	Minute              = 60 * Second
	Hour                = 60 * Minute
	Day                 = 24 * Hour
)

// MillisToDuration converts a real-number millisecond count to a time.Duration
func MillisToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

// DurationToMillis converts a time.Duration to a real-number millisecond count
func DurationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
