package helpers

import (
	"fmt"
	"time"
)

// DateFormat is the wire format for date-only fields.
const DateFormat = "2006-01-02"

// ParseDuration parses a duration string, falling back to a default on error.
func ParseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

// ParseDate parses an optional "2006-01-02" date string. A nil or empty
// input yields nil without error.
func ParseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(DateFormat, *value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", *value, err)
	}
	return &t, nil
}
