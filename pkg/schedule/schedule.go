// Package schedule parses the 5-field cron-like expressions carried by job
// definitions and computes next fire times.
//
// Next-run computation deliberately consults only the minute and hour fields.
// The day, month and weekday fields are parsed and validated but never applied;
// the platform has always behaved this way and existing job definitions depend
// on it, so full cron semantics must not be introduced here silently.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Expression is a parsed schedule. A nil field means the wildcard "*".
type Expression struct {
	raw     string
	Minute  *int
	Hour    *int
	Day     *int
	Month   *int
	Weekday *int
}

// Parse validates expr and returns the parsed expression.
//
// Validation is layered: the standard cron parser rejects anything that is not
// well-formed five-field cron, then the stricter grammar used here (each field
// either "*" or a single integer literal) is enforced on top. Ranges, steps and
// lists are therefore rejected even though standard cron would accept them.
func Parse(expr string) (*Expression, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return nil, fmt.Errorf("schedule cannot be empty")
	}

	if _, err := cron.ParseStandard(trimmed); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", expr, err)
	}

	fields := strings.Fields(trimmed)
	if len(fields) != 5 {
		return nil, fmt.Errorf("invalid schedule %q: expected 5 fields, got %d", expr, len(fields))
	}

	e := &Expression{raw: trimmed}
	specs := []struct {
		name string
		dst  **int
		min  int
		max  int
	}{
		{"minute", &e.Minute, 0, 59},
		{"hour", &e.Hour, 0, 23},
		{"day", &e.Day, 1, 31},
		{"month", &e.Month, 1, 12},
		{"weekday", &e.Weekday, 0, 6},
	}

	for i, spec := range specs {
		value, err := parseField(fields[i], spec.min, spec.max)
		if err != nil {
			return nil, fmt.Errorf("invalid schedule %q: %s field: %w", expr, spec.name, err)
		}
		*spec.dst = value
	}

	return e, nil
}

func parseField(field string, minVal, maxVal int) (*int, error) {
	if field == "*" {
		return nil, nil
	}
	n, err := strconv.Atoi(field)
	if err != nil {
		return nil, fmt.Errorf("expected %q or an integer literal, got %q", "*", field)
	}
	if n < minVal || n > maxVal {
		return nil, fmt.Errorf("value %d out of range [%d,%d]", n, minVal, maxVal)
	}
	return &n, nil
}

// Next computes the next fire time relative to now using machine-local
// wall-clock semantics.
//
// A literal minute pins the candidate's minute and zeroes seconds; a literal
// hour pins the candidate's hour. A candidate at or before now is advanced by
// exactly one calendar day at the same wall-clock time.
func (e *Expression) Next(now time.Time) time.Time {
	candidate := now

	if e.Minute != nil {
		candidate = time.Date(
			candidate.Year(), candidate.Month(), candidate.Day(),
			candidate.Hour(), *e.Minute, 0, 0,
			candidate.Location(),
		)
	}
	if e.Hour != nil {
		candidate = time.Date(
			candidate.Year(), candidate.Month(), candidate.Day(),
			*e.Hour, candidate.Minute(), candidate.Second(), candidate.Nanosecond(),
			candidate.Location(),
		)
	}

	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 1)
	}

	return candidate
}

// String returns the original expression text.
func (e *Expression) String() string {
	return e.raw
}
