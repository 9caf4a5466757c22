package models

import "time"

// IntervalsOverlap reports whether two half-open [start, end) intervals
// intersect. Symmetric in its arguments.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// FindScheduleConflict checks a candidate [startsAt, endsAt) interval on a
// given day against the worker's committed sessions and declared
// unavailability, and returns the first conflict found, or nil. The caller
// supplies sessions from a ±1 day window around the date so shifts crossing
// midnight are caught; excludeID skips the session being updated.
func FindScheduleConflict(
	date time.Time,
	startsAt, endsAt time.Time,
	excludeID *string,
	existing []WorkSession,
	unavailable []Unavailability,
) *ScheduleConflictError {
	for _, u := range unavailable {
		if sameDay(u.Day, date) {
			return &ScheduleConflictError{Date: date, Reason: "worker declared unavailable"}
		}
	}
	for _, s := range existing {
		if excludeID != nil && s.ID.String() == *excludeID {
			continue
		}
		if IntervalsOverlap(startsAt, endsAt, s.StartsAt, s.EndsAt) {
			return &ScheduleConflictError{Date: date, Reason: "overlaps existing mission"}
		}
	}
	return nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
