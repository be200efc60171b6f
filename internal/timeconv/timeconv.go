// Package timeconv normalizes the timestamp encodings found in directory
// attribute values. Active Directory reports most times as Windows FILETIME
// tick counts and the rest as generalized time strings; anything else is left
// untouched so unparseable values never fail an import.
package timeconv

import (
	"regexp"
	"strconv"
	"time"
)

// filetimeEpoch is the FILETIME zero point, 1601-01-01T00:00:00 UTC.
var filetimeEpoch = time.Date(1601, time.January, 1, 0, 0, 0, 0, time.UTC) //nolint:gochecknoglobals

// maxInstant is the upper bound for decoded timestamps. FILETIME values that
// decode past it are clamped rather than wrapped.
var maxInstant = time.Date(9999, time.December, 31, 23, 59, 59, 999999000, time.UTC) //nolint:gochecknoglobals

var (
	filetimePattern   = regexp.MustCompile(`^\d+$`)
	dateStringPattern = regexp.MustCompile(
		`^(\d{4})(0[1-9]|1[012])(0[1-9]|[12][0-9]|3[01])([01][0-9]|2[0-3])([0-5][0-9])([0-5][0-9])(?:\.\d{1,3})?Z$`,
	)
)

// maxMicroseconds is the microsecond span between the FILETIME epoch and maxInstant.
func maxMicroseconds() int64 {
	seconds := maxInstant.Unix() - filetimeEpoch.Unix()
	return seconds*1e6 + int64(maxInstant.Nanosecond())/1e3
}

// ParseFiletime decodes an all-digits 100-nanosecond tick count since the
// FILETIME epoch. The second return value reports whether the value was
// FILETIME-shaped at all; a tick count of zero (or one that divides to zero
// microseconds) yields a zero time with shaped=true, meaning "no time".
func ParseFiletime(value string) (time.Time, bool) {
	if !filetimePattern.MatchString(value) {
		return time.Time{}, false
	}

	ticks, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		// All digits but too large for int64: far past any representable
		// instant, clamp to the maximum.
		return maxInstant, true
	}

	microseconds := ticks / 10
	if microseconds <= 0 {
		return time.Time{}, true
	}

	if microseconds > maxMicroseconds() {
		return maxInstant, true
	}

	seconds := microseconds / 1e6
	remainder := microseconds % 1e6

	return time.Unix(filetimeEpoch.Unix()+seconds, remainder*1e3).UTC(), true
}

// ParseGeneralized decodes a fixed-width YYYYMMDDHHMMSS[.fff]Z time string.
func ParseGeneralized(value string) (time.Time, bool) {
	match := dateStringPattern.FindStringSubmatch(value)
	if match == nil {
		return time.Time{}, false
	}

	// The pattern guarantees each field is numeric and in range.
	year, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	day, _ := strconv.Atoi(match[3])
	hour, _ := strconv.Atoi(match[4])
	minute, _ := strconv.Atoi(match[5])
	second, _ := strconv.Atoi(match[6])

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC), true
}

// Normalize converts a date-bearing attribute value to an ISO-8601 instant
// string. The second return value reports whether the value matched one of the
// recognized encodings; when it did not, the value is returned unchanged so
// the caller can store it as-is. A FILETIME of zero normalizes to the empty
// string ("no time").
func Normalize(value string) (string, bool) {
	if decoded, ok := ParseFiletime(value); ok {
		if decoded.IsZero() {
			return "", true
		}

		return Format(decoded), true
	}

	if decoded, ok := ParseGeneralized(value); ok {
		return Format(decoded), true
	}

	return value, false
}

// Format renders an instant in the canonical ISO-8601 form used in stored
// attribute values. Sub-second precision is kept only when present.
func Format(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.999999Z07:00")
}
