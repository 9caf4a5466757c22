package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorsError(t *testing.T) {
	t.Run("Single Field", func(t *testing.T) {
		verr := ValidationErrors{"end": "must be after start"}
		assert.Equal(t, "end: must be after start", verr.Error())
	})

	t.Run("Multiple Fields Sorted", func(t *testing.T) {
		verr := ValidationErrors{
			"start":       "must be a valid time (HH:MM)",
			"date":        "must be a valid date (YYYY-MM-DD)",
			"hourly_rate": "must be positive",
		}
		want := "date: must be a valid date (YYYY-MM-DD); hourly_rate: must be positive; start: must be a valid time (HH:MM)"
		// The message is stable across calls regardless of map iteration.
		for i := 0; i < 10; i++ {
			assert.Equal(t, want, verr.Error())
		}
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, "validation failed", ValidationErrors{}.Error())
	})
}

func TestScheduleConflictErrorMessage(t *testing.T) {
	conflict := &ScheduleConflictError{
		Date:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Reason: "overlaps existing mission",
	}
	assert.Equal(t, "schedule conflict on 2025-03-10: overlaps existing mission", conflict.Error())
}
