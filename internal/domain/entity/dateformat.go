package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	errs "github.com/columbia6/time/internal/domain/error"
)

// DefaultDateFormat is the pattern used when a caller supplies none
const DefaultDateFormat = "yyyy-MM-dd HH:mm:ss"

// dateTokens are the fixed-width tokens the date parser understands. Order
// matters only in that each is matched by exact text; no token is a prefix
// of another.
var dateTokens = []struct {
	text  string
	class byte
	width int
}{
	{"yyyy", 'y', 4},
	{"MM", 'M', 2},
	{"dd", 'd', 2},
	{"HH", 'H', 2},
	{"mm", 'm', 2},
	{"ss", 's', 2},
	{"SSS", 'S', 3},
}

// FormatDate renders a moment according to a pattern string.
//
// Runs of a recognized letter substitute a field: a y run takes the last N
// digits of the 4-digit year, an S run the first N characters of the
// 3-digit zero-padded millisecond, and M/d/H/m/s runs the month (1-based),
// day, hour, minute, or second, plain for a run of 1 and zero-padded to the
// run length otherwise. Only the first run per letter class substitutes;
// later runs of the same letter pass through as literal text, as do all
// unrecognized characters.
func FormatDate(m Moment, pattern string) string {
	var b strings.Builder
	seen := make(map[byte]bool)
	for i := 0; i < len(pattern); {
		c := pattern[i]
		if !isTokenLetter(c) {
			b.WriteByte(c)
			i++
			continue
		}
		j := i
		for j < len(pattern) && pattern[j] == c {
			j++
		}
		if seen[c] {
			b.WriteString(pattern[i:j])
		} else {
			seen[c] = true
			b.WriteString(renderDateToken(m, c, j-i))
		}
		i = j
	}
	return b.String()
}

func isTokenLetter(c byte) bool {
	switch c {
	case 'y', 'M', 'd', 'H', 'm', 's', 'S':
		return true
	}
	return false
}

func renderDateToken(m Moment, class byte, run int) string {
	switch class {
	case 'y':
		year := fmt.Sprintf("%04d", m.Year())
		if run >= len(year) {
			return year
		}
		return year[len(year)-run:]
	case 'S':
		millis := fmt.Sprintf("%03d", m.Millisecond())
		if run >= len(millis) {
			return millis
		}
		return millis[:run]
	case 'M':
		return renderDateNumber(int(m.Month()), run)
	case 'd':
		return renderDateNumber(m.Day(), run)
	case 'H':
		return renderDateNumber(m.Hour(), run)
	case 'm':
		return renderDateNumber(m.Minute(), run)
	case 's':
		return renderDateNumber(m.Second(), run)
	}
	return ""
}

func renderDateNumber(v, width int) string {
	if width <= 1 {
		return strconv.Itoa(v)
	}
	return fmt.Sprintf("%0*d", width, v)
}

// ParseDate parses a date string against a pattern, defaulting to
// DefaultDateFormat when the pattern is empty.
//
// Each recognized token (yyyy, MM, dd, HH, mm, ss, SSS) consumes a
// fixed-width digit group from the input; only the first occurrence per
// token class captures, later occurrences and all other pattern characters
// must match the input literally. The match is anchored: leftover input is
// a failure. Fields absent from the pattern default to year 0, January,
// day 1, and zero for the time fields.
//
// A lexical mismatch yields a FormatError. When the input matches but the
// captured fields do not survive construction unchanged (year, month, or
// day read back differently, e.g. February 30 normalizing into March), the
// result is an OverflowError instead; no silently normalized moment is ever
// returned for the date fields.
func ParseDate(input, pattern string) (Moment, error) {
	if pattern == "" {
		pattern = DefaultDateFormat
	}

	fields := map[byte]int{'y': 0, 'M': int(time.January), 'd': 1, 'H': 0, 'm': 0, 's': 0, 'S': 0}
	seen := make(map[byte]bool)

	pi, ii := 0, 0
	for pi < len(pattern) {
		tokenMatched := false
		for _, tok := range dateTokens {
			if seen[tok.class] || !strings.HasPrefix(pattern[pi:], tok.text) {
				continue
			}
			v, ok := readDigits(input, ii, tok.width)
			if !ok {
				return Moment{}, errs.NewFormatError(input, pattern,
					fmt.Sprintf("expected %d digits for %s", tok.width, tok.text))
			}
			fields[tok.class] = v
			seen[tok.class] = true
			pi += len(tok.text)
			ii += tok.width
			tokenMatched = true
			break
		}
		if tokenMatched {
			continue
		}
		if ii >= len(input) || input[ii] != pattern[pi] {
			return Moment{}, errs.NewFormatError(input, pattern,
				fmt.Sprintf("literal mismatch at position %d", ii))
		}
		pi++
		ii++
	}
	if ii != len(input) {
		return Moment{}, errs.NewFormatError(input, pattern, "trailing characters")
	}

	m := NewMoment(fields['y'], time.Month(fields['M']), fields['d'], fields['H'], fields['m'], fields['s'], fields['S'])
	if m.Year() != fields['y'] || int(m.Month()) != fields['M'] || m.Day() != fields['d'] {
		return Moment{}, errs.NewOverflowError(fields['y'], fields['M'], fields['d'])
	}
	return m, nil
}

// readDigits reads exactly width ASCII digits starting at start
func readDigits(s string, start, width int) (int, bool) {
	if start+width > len(s) {
		return 0, false
	}
	v := 0
	for k := start; k < start+width; k++ {
		c := s[k]
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int(c-'0')
	}
	return v, true
}
