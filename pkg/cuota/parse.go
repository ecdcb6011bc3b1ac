package cuota

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate is returned for strings that are not ISO-8601 dates.
var ErrInvalidDate = errors.New("invalid date")

// Accepted layouts, tried in order. Zone-less values are read as UTC.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// ParseDate parses a strict YYYY-MM-DD date (UTC midnight) or an ISO-8601 timestamp.
func ParseDate(s string) (time.Time, error) {
	value := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// ParseOptionalDate is ParseDate where a blank string means an absent bound.
func ParseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
