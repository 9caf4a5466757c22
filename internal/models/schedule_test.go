package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day, h, m int) time.Time {
	return time.Date(2025, 3, day, h, m, 0, 0, time.UTC)
}

func TestIntervalsOverlap(t *testing.T) {
	t.Run("Overlapping", func(t *testing.T) {
		assert.True(t, IntervalsOverlap(at(10, 9, 0), at(10, 17, 0), at(10, 16, 0), at(10, 20, 0)))
	})

	t.Run("Adjacent Intervals Do Not Overlap", func(t *testing.T) {
		// Half-open: one ends exactly where the other starts.
		assert.False(t, IntervalsOverlap(at(10, 9, 0), at(10, 17, 0), at(10, 17, 0), at(10, 20, 0)))
		assert.False(t, IntervalsOverlap(at(10, 17, 0), at(10, 20, 0), at(10, 9, 0), at(10, 17, 0)))
	})

	t.Run("Containment", func(t *testing.T) {
		assert.True(t, IntervalsOverlap(at(10, 9, 0), at(10, 17, 0), at(10, 10, 0), at(10, 11, 0)))
	})

	t.Run("Symmetric", func(t *testing.T) {
		a1, a2 := at(10, 22, 0), at(11, 4, 0)
		b1, b2 := at(11, 3, 0), at(11, 9, 0)
		assert.Equal(t, IntervalsOverlap(a1, a2, b1, b2), IntervalsOverlap(b1, b2, a1, a2))
	})
}

func TestFindScheduleConflict(t *testing.T) {
	date := at(10, 0, 0)

	t.Run("No Conflict", func(t *testing.T) {
		conflict := FindScheduleConflict(date, at(10, 9, 0), at(10, 17, 0), nil,
			[]WorkSession{{ID: uuid.New(), StartsAt: at(10, 18, 0), EndsAt: at(10, 22, 0)}},
			nil)
		assert.Nil(t, conflict)
	})

	t.Run("Declared Unavailable", func(t *testing.T) {
		conflict := FindScheduleConflict(date, at(10, 9, 0), at(10, 17, 0), nil,
			nil,
			[]Unavailability{{Day: at(10, 0, 0)}})
		require.NotNil(t, conflict)
		assert.Equal(t, "worker declared unavailable", conflict.Reason)
	})

	t.Run("Overlaps Existing Mission", func(t *testing.T) {
		conflict := FindScheduleConflict(date, at(10, 9, 0), at(10, 17, 0), nil,
			[]WorkSession{{ID: uuid.New(), StartsAt: at(10, 16, 0), EndsAt: at(10, 20, 0)}},
			nil)
		require.NotNil(t, conflict)
		assert.Equal(t, "overlaps existing mission", conflict.Reason)
	})

	t.Run("Overnight Session From Previous Day Conflicts", func(t *testing.T) {
		// A shift started on the 9th that runs into the morning of the 10th.
		conflict := FindScheduleConflict(date, at(10, 3, 0), at(10, 11, 0), nil,
			[]WorkSession{{ID: uuid.New(), StartsAt: at(9, 22, 0), EndsAt: at(10, 4, 0)}},
			nil)
		require.NotNil(t, conflict)
		assert.Equal(t, "overlaps existing mission", conflict.Reason)
	})

	t.Run("Excluded Session Skipped", func(t *testing.T) {
		id := uuid.New()
		idStr := id.String()
		conflict := FindScheduleConflict(date, at(10, 9, 0), at(10, 17, 0), &idStr,
			[]WorkSession{{ID: id, StartsAt: at(10, 9, 0), EndsAt: at(10, 17, 0)}},
			nil)
		assert.Nil(t, conflict)
	})

	t.Run("Unavailability On Another Day Ignored", func(t *testing.T) {
		conflict := FindScheduleConflict(date, at(10, 9, 0), at(10, 17, 0), nil,
			nil,
			[]Unavailability{{Day: at(11, 0, 0)}})
		assert.Nil(t, conflict)
	})
}
