package entity

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	errs "github.com/columbia6/time/internal/domain/error"
)

// formatEpsilon biases the magnitude before bucket decomposition and is
// subtracted back out before the final millisecond rounding. It keeps float
// remainder noise from producing a spurious extra unit or an empty
// millisecond term (1.9999999999 must render "2ms", not "1ms..." residue).
const formatEpsilon = 1e-7

// durationBuckets are the whole-unit buckets in descending size order.
// Milliseconds are handled separately as the fractional remainder.
var durationBuckets = []struct {
	size   float64
	suffix string
}{
	{Day, "d"},
	{Hour, "h"},
	{Minute, "m"},
	{Second, "s"},
}

// FormatDuration renders a real-number millisecond count as a compact
// human-readable string such as "1h30m" or "5s500ms".
//
// Negative values format the absolute value with a leading sign. Zero and
// any magnitude below 0.001 ms render as "0ms". Otherwise the magnitude is
// greedily decomposed into day/hour/minute/second buckets; only nonzero
// counts are emitted, concatenated without separators. A leftover remainder
// under one second is rendered in milliseconds rounded to 3 decimal places,
// and suppressed when it rounds to zero.
func FormatDuration(ms float64) string {
	if ms < 0 {
		return "-" + FormatDuration(-ms)
	}
	if ms < 0.001 {
		return "0ms"
	}

	rem := ms + formatEpsilon
	var b strings.Builder
	for _, bucket := range durationBuckets {
		count := math.Floor(rem / bucket.size)
		if count >= 1 {
			b.WriteString(strconv.FormatFloat(count, 'f', -1, 64))
			b.WriteString(bucket.suffix)
			rem -= count * bucket.size
		}
	}

	msPart := math.Round((rem-formatEpsilon)*1000) / 1000
	if msPart > 0 {
		b.WriteString(strconv.FormatFloat(msPart, 'f', -1, 64))
		b.WriteString("ms")
	}

	if b.Len() == 0 {
		return "0ms"
	}
	return b.String()
}

// ParseDuration converts a human-readable duration string back to a
// real-number millisecond count. The input may contain any number of
// whitespace characters anywhere; they are stripped before scanning.
//
// The stripped string must consist entirely of consecutive
// <optionally-signed decimal number><unit> segments with unit one of
// ms, s, m, h, d (case-insensitive). Segment values accumulate, so
// "1h 30m" yields 5400000 and fractional values like "1.5s" are allowed.
// An empty input, a stray character, or a missing unit invalidates the
// whole string; there is no partial success.
func ParseDuration(input string) (float64, error) {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, input)
	if s == "" {
		return 0, errs.NewFormatError(input, "", "empty duration")
	}
	s = strings.ToLower(s)

	var total float64
	for i := 0; i < len(s); {
		value, next, ok := scanDurationNumber(s, i)
		if !ok {
			return 0, errs.NewFormatError(input, "", fmt.Sprintf("expected number at %q", s[i:]))
		}
		factor, after, ok := scanDurationUnit(s, next)
		if !ok {
			return 0, errs.NewFormatError(input, "", fmt.Sprintf("missing unit after %q", s[i:next]))
		}
		total += value * factor
		i = after
	}
	return total, nil
}

// scanDurationNumber reads an optionally-signed decimal number starting at
// i. A sign alone, a missing integer part, or a dot without fraction digits
// all fail the scan.
func scanDurationNumber(s string, i int) (float64, int, bool) {
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	intDigits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		intDigits++
	}
	if intDigits == 0 {
		return 0, start, false
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		fracDigits := 0
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			fracDigits++
		}
		if fracDigits == 0 {
			return 0, start, false
		}
		i = j
	}
	value, err := strconv.ParseFloat(s[start:i], 64)
	if err != nil {
		return 0, start, false
	}
	return value, i, true
}

// scanDurationUnit reads a unit suffix starting at i. "ms" must be tried
// before the single-letter units so "500ms" does not parse as minutes.
func scanDurationUnit(s string, i int) (float64, int, bool) {
	if strings.HasPrefix(s[i:], "ms") {
		return Millisecond, i + 2, true
	}
	if i < len(s) {
		switch s[i] {
		case 's':
			return Second, i + 1, true
		case 'm':
			return Minute, i + 1, true
		case 'h':
			return Hour, i + 1, true
		case 'd':
			return Day, i + 1, true
		}
	}
	return 0, i, false
}
