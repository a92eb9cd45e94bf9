package utils

import (
	"fmt"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	ClockLayout     = "15:04"
	TimestampLayout = "2006-01-02T15:04:05"
)

// CombineDateTime merges a calendar date ("2006-01-02") and a clock time
// ("15:04") into a single local instant with seconds zeroed.
func CombineDateTime(dateStr, timeStr string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, dateStr, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	t, err := time.ParseInLocation(ClockLayout, timeStr, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", timeStr, err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
}

// StartOfDay truncates an instant to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay moves an instant to the last nanosecond of its local day, so
// day-granularity upper bounds do not cut off same-day values.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
