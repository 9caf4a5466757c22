package services

import (
	"errors"
	"testing"
	"time"

	"github.com/merchlink/staffing-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNormalizeSession(t *testing.T) {
	w := DefaultNightWindow()

	t.Run("Plain Day Shift", func(t *testing.T) {
		n, err := NormalizeSession("2025-03-10", "09:00", "17:00", nil, nil, w)
		require.NoError(t, err)

		assert.Equal(t, 480, n.DurationMinutes)
		assert.Equal(t, 0, n.NightMinutes)
		assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), n.StartsAt)
		assert.Equal(t, time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC), n.EndsAt)
	})

	t.Run("End Before Start Rolls Over Midnight", func(t *testing.T) {
		n, err := NormalizeSession("2025-03-10", "22:00", "04:00", nil, nil, w)
		require.NoError(t, err)

		assert.Equal(t, 360, n.DurationMinutes)
		assert.Equal(t, 360, n.NightMinutes)
		assert.Equal(t, time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC), n.StartsAt)
		assert.Equal(t, time.Date(2025, 3, 11, 4, 0, 0, 0, time.UTC), n.EndsAt)
	})

	t.Run("End Equal To Start Rejected", func(t *testing.T) {
		_, err := NormalizeSession("2025-03-10", "09:00", "09:00", nil, nil, w)
		require.Error(t, err)

		var verr models.ValidationErrors
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr, "end")
	})

	t.Run("Break Excluded From Duration And Night Minutes", func(t *testing.T) {
		n, err := NormalizeSession("2025-03-10", "22:00", "06:00",
			strPtr("01:00"), strPtr("01:30"), w)
		require.NoError(t, err)

		assert.Equal(t, 450, n.DurationMinutes)
		assert.Equal(t, 450, n.NightMinutes)
		require.NotNil(t, n.BreakStart)
		assert.Equal(t, time.Date(2025, 3, 11, 1, 0, 0, 0, time.UTC), *n.BreakStart)
	})

	t.Run("Day Break Not Counted As Night", func(t *testing.T) {
		n, err := NormalizeSession("2025-03-10", "09:00", "17:00",
			strPtr("12:00"), strPtr("13:00"), w)
		require.NoError(t, err)

		assert.Equal(t, 420, n.DurationMinutes)
		assert.Equal(t, 0, n.NightMinutes)
	})

	t.Run("Break Outside Session Rejected", func(t *testing.T) {
		_, err := NormalizeSession("2025-03-10", "09:00", "17:00",
			strPtr("18:00"), strPtr("18:30"), w)
		require.Error(t, err)

		var verr models.ValidationErrors
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr, "break")
	})

	t.Run("Break Start Without End Rejected", func(t *testing.T) {
		_, err := NormalizeSession("2025-03-10", "09:00", "17:00",
			strPtr("12:00"), nil, w)
		require.Error(t, err)

		var verr models.ValidationErrors
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr, "break")
	})

	t.Run("Invalid Date Rejected", func(t *testing.T) {
		_, err := NormalizeSession("10/03/2025", "09:00", "17:00", nil, nil, w)
		require.Error(t, err)

		var verr models.ValidationErrors
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr, "date")
	})
}

func TestNightMinutes(t *testing.T) {
	w := DefaultNightWindow()
	day := func(h, m int) time.Time {
		return time.Date(2025, 3, 10, h, m, 0, 0, time.UTC)
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"Day Shift", day(9, 0), day(17, 0), 0},
		{"Ends Exactly At Window Start", day(18, 0), day(21, 0), 0},
		{"First Night Hour", day(21, 0), day(22, 0), 60},
		{"Straddles Window Start", day(20, 30), day(22, 0), 60},
		{"Ends At Window End", day(4, 0), day(6, 0), 120},
		{"Straddles Window End", day(5, 30), day(6, 30), 30},
		{"Crosses Midnight Fully Inside", day(22, 0), day(4, 0).AddDate(0, 0, 1), 360},
		{"Full Night Shift", day(21, 0), day(6, 0).AddDate(0, 0, 1), 540},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NightMinutes(tt.start, tt.end, w))
		})
	}
}

func TestNormalizeShift(t *testing.T) {
	w := DefaultNightWindow()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("Break Deducted From Duration Only", func(t *testing.T) {
		n, err := NormalizeShift(date, "22:00", "06:00", 30, w)
		require.NoError(t, err)

		assert.Equal(t, 450, n.DurationMinutes)
		// The posting does not place the break, so night minutes keep the
		// full span.
		assert.Equal(t, 480, n.NightMinutes)
	})

	t.Run("Day Shift With Break", func(t *testing.T) {
		n, err := NormalizeShift(date, "09:00", "17:00", 60, w)
		require.NoError(t, err)

		assert.Equal(t, 420, n.DurationMinutes)
		assert.Equal(t, 0, n.NightMinutes)
	})

	t.Run("Break Consuming Whole Shift Rejected", func(t *testing.T) {
		_, err := NormalizeShift(date, "09:00", "10:00", 60, w)
		require.Error(t, err)
	})

	t.Run("Negative Break Rejected", func(t *testing.T) {
		_, err := NormalizeShift(date, "09:00", "17:00", -15, w)
		require.Error(t, err)
	})
}
