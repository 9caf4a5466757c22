package services

import (
	"time"

	"github.com/merchlink/staffing-backend/internal/models"
)

// NightWindow is the clock window whose minutes count as night work.
// Default is [21:00, 24:00) U [00:00, 06:00).
type NightWindow struct {
	StartHour int
	EndHour   int
}

// DefaultNightWindow returns the standard 21:00-06:00 night window.
func DefaultNightWindow() NightWindow {
	return NightWindow{StartHour: 21, EndHour: 6}
}

// NormalizedSession is the canonical form of a session's time data,
// produced once before any validation or persistence.
type NormalizedSession struct {
	Date            time.Time
	StartsAt        time.Time
	EndsAt          time.Time
	BreakStart      *time.Time
	BreakEnd        *time.Time
	DurationMinutes int
	NightMinutes    int
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// NormalizeSession anchors the raw clock times to the session date, rolls
// the end to the next day when it is not strictly after the start, and
// computes duration and night minutes. An optional break window is excluded
// from both counts. Normalization is idempotent: re-normalizing its own
// output yields identical figures.
func NormalizeSession(dateStr, startStr, endStr string, breakStartStr, breakEndStr *string, w NightWindow) (*NormalizedSession, error) {
	verr := models.ValidationErrors{}

	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		verr["date"] = "must be a valid date (YYYY-MM-DD)"
	}
	start, err := time.Parse(timeLayout, startStr)
	if err != nil {
		verr["start"] = "must be a valid time (HH:MM)"
	}
	end, err := time.Parse(timeLayout, endStr)
	if err != nil {
		verr["end"] = "must be a valid time (HH:MM)"
	}
	if (breakStartStr == nil) != (breakEndStr == nil) {
		verr["break"] = "break start and end must be given together"
	}
	if verr.Any() {
		return nil, verr
	}

	startsAt := anchor(date, start)
	endsAt := anchor(date, end)

	if endsAt.Equal(startsAt) {
		verr["end"] = "end must be after start"
		return nil, verr
	}
	if !endsAt.After(startsAt) {
		// Shift crosses midnight: the end belongs to the next calendar day.
		endsAt = endsAt.AddDate(0, 0, 1)
	}

	n := &NormalizedSession{
		Date:     date,
		StartsAt: startsAt,
		EndsAt:   endsAt,
	}

	if breakStartStr != nil && breakEndStr != nil {
		bs, err := time.Parse(timeLayout, *breakStartStr)
		if err != nil {
			verr["break_start"] = "must be a valid time (HH:MM)"
		}
		be, err := time.Parse(timeLayout, *breakEndStr)
		if err != nil {
			verr["break_end"] = "must be a valid time (HH:MM)"
		}
		if verr.Any() {
			return nil, verr
		}

		breakStart := anchor(date, bs)
		breakEnd := anchor(date, be)
		// Anchor the break inside the shift, rolling pieces that land
		// before the start into the next day (night shifts).
		if breakStart.Before(startsAt) {
			breakStart = breakStart.AddDate(0, 0, 1)
		}
		if !breakEnd.After(breakStart) {
			breakEnd = breakEnd.AddDate(0, 0, 1)
		}
		if breakStart.Before(startsAt) || breakEnd.After(endsAt) {
			verr["break"] = "break must lie within the session"
			return nil, verr
		}
		n.BreakStart = &breakStart
		n.BreakEnd = &breakEnd
	}

	breakMinutes := 0
	if n.BreakStart != nil {
		breakMinutes = int(n.BreakEnd.Sub(*n.BreakStart).Minutes())
	}
	n.DurationMinutes = int(endsAt.Sub(startsAt).Minutes()) - breakMinutes
	if n.DurationMinutes <= 0 {
		verr["break"] = "break consumes the whole session"
		return nil, verr
	}

	n.NightMinutes = NightMinutes(startsAt, endsAt, w)
	if n.BreakStart != nil {
		n.NightMinutes -= NightMinutes(*n.BreakStart, *n.BreakEnd, w)
	}

	return n, nil
}

// NormalizeShift is the offer-expansion variant of NormalizeSession: the
// break is known only as a minute count (postings do not place it), so it is
// deducted from the duration but not from the night minutes.
func NormalizeShift(date time.Time, startClock, endClock string, breakMinutes int, w NightWindow) (*NormalizedSession, error) {
	verr := models.ValidationErrors{}

	start, err := time.Parse(timeLayout, startClock)
	if err != nil {
		verr["start"] = "must be a valid time (HH:MM)"
	}
	end, err := time.Parse(timeLayout, endClock)
	if err != nil {
		verr["end"] = "must be a valid time (HH:MM)"
	}
	if breakMinutes < 0 {
		verr["break_minutes"] = "must not be negative"
	}
	if verr.Any() {
		return nil, verr
	}

	startsAt := anchor(date, start)
	endsAt := anchor(date, end)
	if endsAt.Equal(startsAt) {
		verr["end"] = "end must be after start"
		return nil, verr
	}
	if !endsAt.After(startsAt) {
		endsAt = endsAt.AddDate(0, 0, 1)
	}

	duration := int(endsAt.Sub(startsAt).Minutes()) - breakMinutes
	if duration <= 0 {
		verr["break_minutes"] = "break consumes the whole shift"
		return nil, verr
	}

	return &NormalizedSession{
		Date:            time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		StartsAt:        startsAt,
		EndsAt:          endsAt,
		DurationMinutes: duration,
		NightMinutes:    NightMinutes(startsAt, endsAt, w),
	}, nil
}

// NightMinutes counts the minutes of [start, end) whose hour of day falls in
// the night window. Closed-form segment overlap per calendar day spanned;
// matches the minute-by-minute count on all boundary cases.
func NightMinutes(start, end time.Time, w NightWindow) int {
	total := 0
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	for !day.After(end) {
		// Early segment [00:00, EndHour) of this day.
		total += overlapMinutes(start, end, day, day.Add(time.Duration(w.EndHour)*time.Hour))
		// Late segment [StartHour, 24:00) of this day.
		total += overlapMinutes(start, end, day.Add(time.Duration(w.StartHour)*time.Hour), day.AddDate(0, 0, 1))
		day = day.AddDate(0, 0, 1)
	}
	return total
}

func overlapMinutes(aStart, aEnd, bStart, bEnd time.Time) int {
	lo := aStart
	if bStart.After(lo) {
		lo = bStart
	}
	hi := aEnd
	if bEnd.Before(hi) {
		hi = bEnd
	}
	if !hi.After(lo) {
		return 0
	}
	return int(hi.Sub(lo).Minutes())
}

func anchor(date time.Time, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)
}
