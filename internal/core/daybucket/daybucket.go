// Package daybucket maps instants onto calendar days in UTC.
//
// A day is represented by the time.Time at 00:00:00 UTC of that day, so two
// instants share a bucket exactly when their UTC calendar dates match,
// regardless of the Location they carry.
package daybucket

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

var ErrInvalidDay = errors.New("invalid day")

// Range is a half-open interval [Start, End) of day buckets.
type Range struct {
	Start time.Time
	End   time.Time
}

func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

func Of(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Today buckets now(); a nil clock means time.Now.
func Today(now func() time.Time) time.Time {
	if now == nil {
		now = time.Now
	}
	return Of(now())
}

// MonthRange parses "YYYY-MM" into the bounds of that month. The boolean is
// false for empty or malformed input, a zero year, or a month outside 1-12,
// in which case callers apply no date filter.
func MonthRange(month string) (Range, bool) {
	parts := strings.Split(strings.TrimSpace(month), "-")
	if len(parts) < 2 {
		return Range{}, false
	}

	year, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || year == 0 {
		return Range{}, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || m < 1 || m > 12 {
		return Range{}, false
	}

	start := time.Date(year, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
	return Range{Start: start, End: start.AddDate(0, 1, 0)}, true
}

// ParseDay accepts YYYY-MM-DD or an RFC 3339 timestamp and returns its bucket.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dayLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Of(t), nil
	}
	return time.Time{}, ErrInvalidDay
}

// Format renders a bucket as YYYY-MM-DD.
func Format(day time.Time) string {
	return Of(day).Format(dayLayout)
}
