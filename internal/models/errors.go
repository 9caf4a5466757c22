package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrNotFound marks lookups for rows that do not exist. Repositories wrap it
// with entity context so callers can test with errors.Is.
var ErrNotFound = errors.New("not found")

// ScheduleConflictError reports that a candidate work session collides with
// the worker's existing schedule. Reason is human-readable and names the day.
type ScheduleConflictError struct {
	Date   time.Time
	Reason string
}

func (e *ScheduleConflictError) Error() string {
	return fmt.Sprintf("schedule conflict on %s: %s", e.Date.Format("2006-01-02"), e.Reason)
}

// StateError reports a precondition failure on an entity's status, e.g.
// recruiting an application that is not pending. The operation is a no-op.
type StateError struct {
	Message string
}

func (e *StateError) Error() string {
	return e.Message
}

// ValidationErrors carries per-field input errors.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, v[field]))
	}
	return strings.Join(parts, "; ")
}

// Any reports whether at least one field failed validation.
func (v ValidationErrors) Any() bool {
	return len(v) > 0
}
