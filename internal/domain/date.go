package domain

import (
	"fmt"
	"time"
)

// DateLayout is the storage and wire format of every calendar date.
const DateLayout = "2006-01-02"

// DateOnly returns UTC midnight of t's calendar date in t's own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns the whole number of calendar days from now to t.
// Negative when t is in the past.
func DaysUntil(t, now time.Time) int {
	return int(DateOnly(t).Sub(DateOnly(now)).Hours() / 24)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

// ParseOptionalDate returns nil for the empty string.
func ParseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDate renders an optional date, empty when nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
