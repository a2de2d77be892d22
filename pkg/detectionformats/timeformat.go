package detectionformats

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// TimeLayout is the canonical time-string format used for every time field
// on the wire: UTC with millisecond precision, always 24 characters.
const TimeLayout = "2006-01-02T15:04:05.000Z"

var (
	// ErrInvalidTime is returned when a time field does not hold a canonical
	// time string.
	ErrInvalidTime = errors.New("invalid time string")

	// ErrTimeOutOfRange is returned when a time cannot be written with a
	// four digit year.
	ErrTimeOutOfRange = errors.New("time outside the representable range")
)

// ParseTime converts a canonical time string into a UTC time.
func ParseTime(s string) (time.Time, error) {
	if len(s) != len(TimeLayout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return t.UTC(), nil
}

// FormatTime writes t as a canonical time string, rounded to the millisecond.
func FormatTime(t time.Time) string {
	return t.UTC().Round(time.Millisecond).Format(TimeLayout)
}

// IsTimeString reports whether s is a canonical time string.
func IsTimeString(s string) bool {
	_, err := ParseTime(s)
	return err == nil
}

// EpochTime returns t as fractional seconds since the Unix epoch.
func EpochTime(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// TimeFromEpoch converts fractional epoch seconds into a UTC time, rounded to
// the microsecond to absorb float error.
func TimeFromEpoch(seconds float64) time.Time {
	sec, frac := math.Modf(seconds)
	nsec := math.Round(frac*1e6) * 1e3
	return time.Unix(int64(sec), int64(nsec)).UTC()
}

// checkedFormatTime is FormatTime for callers that must not emit a string
// with a year outside 0000-9999.
func checkedFormatTime(t time.Time) (string, error) {
	if y := t.UTC().Round(time.Millisecond).Year(); y < 0 || y > 9999 {
		return "", fmt.Errorf("%w: year %d", ErrTimeOutOfRange, y)
	}
	return FormatTime(t), nil
}
