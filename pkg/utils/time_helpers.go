package utils

import (
	"fmt"
	"strings"
	"time"

	"inventory-system/pkg/constants"

	"github.com/aarondl/null/v8"
)

// DateOnly drops the clock part of t as seen in loc. The result is midnight
// UTC of that calendar day, so two DateOnly values subtract to whole days.
func DateOnly(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from `from` to `to`;
// negative when `to` is earlier.
func DaysBetween(from, to time.Time) int {
	f := DateOnly(from, nil)
	t := DateOnly(to, nil)
	return int(t.Sub(f).Hours() / 24)
}

// ParseDate accepts YYYY-MM-DD and RFC3339 values.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(constants.DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOnly(t, nil), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
}

// ParseNullDate maps nil or blank input onto an invalid null.Time.
func ParseNullDate(s *string) (null.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return null.Time{}, nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return null.Time{}, err
	}
	return null.TimeFrom(t), nil
}

// FormatNullDate renders a nullable date, empty when unset.
func FormatNullDate(t null.Time) string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format(constants.DateLayout)
}

// NullDateString is FormatNullDate for JSON bodies: null when unset.
func NullDateString(t null.Time) null.String {
	if !t.Valid {
		return null.String{}
	}
	return null.StringFrom(t.Time.Format(constants.DateLayout))
}
