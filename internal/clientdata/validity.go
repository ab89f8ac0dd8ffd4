package clientdata

import (
	"time"

	"github.com/aristath/salesboard/internal/domain"
)

// Validity decides whether a cached entry may still be served.
type Validity struct {
	RefreshDay time.Weekday   // Weekday on which weekly insights are regenerated
	Location   *time.Location // Calendar used for "same day" and weekday checks
}

// DefaultValidity refreshes weekly entries on Saturdays, local time.
func DefaultValidity() Validity {
	return Validity{RefreshDay: time.Saturday, Location: time.Local}
}

// IsValid reports whether an entry stored at storedAt is still fresh at now.
//
// Daily entries are fresh for the rest of the calendar day they were stored.
// Weekly entries are fresh for under seven days, but only if they were stored
// on the refresh weekday; an entry stored on any other day is always stale.
func (v Validity) IsValid(cadence domain.Cadence, storedAt, now time.Time) bool {
	loc := v.Location
	if loc == nil {
		loc = time.Local
	}
	stored := storedAt.In(loc)
	current := now.In(loc)

	switch cadence {
	case domain.CadenceDaily:
		sy, sm, sd := stored.Date()
		cy, cm, cd := current.Date()
		return sy == cy && sm == cm && sd == cd
	case domain.CadenceWeekly:
		return current.Sub(stored) < 7*24*time.Hour && stored.Weekday() == v.RefreshDay
	default:
		return false
	}
}
