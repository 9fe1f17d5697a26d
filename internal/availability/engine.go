// Package availability computes free booking slots and validates proposed
// appointments against a specialist's weekly working hours and the
// appointments already occupying the day. It is pure and stateless: callers
// supply the schedule and the occupying intervals, the engine only decides.
package availability

import (
	"net/http"
	"time"

	"github.com/om1ji/appointment-booking-backend/internal/pkg/apperror"
)

// SlotMinutes is the fixed granularity of generated booking slots.
const SlotMinutes = 30

var (
	// ErrNotWorkingDay is returned when the specialist has no schedule entry
	// for the requested weekday.
	ErrNotWorkingDay = apperror.New(http.StatusBadRequest, "specialist does not work on this day")

	// ErrOutsideWorkingHours is returned when a candidate booking extends
	// beyond the day's working hours.
	ErrOutsideWorkingHours = apperror.New(http.StatusBadRequest, "time is outside the specialist's working hours")

	// ErrSlotTaken is returned when a candidate booking overlaps an existing
	// pending or confirmed appointment.
	ErrSlotTaken = apperror.New(http.StatusConflict, "time slot is already taken")
)

// WorkingHours is one weekday's working window for a specialist.
type WorkingHours struct {
	Start TimeOfDay
	End   TimeOfDay
}

// ScheduleLookup resolves the working hours for a weekday (0=Monday through
// 6=Sunday). The second return is false when the specialist has no schedule
// entry for that day.
type ScheduleLookup func(weekday int) (WorkingHours, bool)

// Weekday maps a date to the 0=Monday..6=Sunday convention used by schedule
// entries. Go's time.Weekday starts the week on Sunday.
func Weekday(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// FreeSlots generates the free SlotMinutes-wide windows on the given date,
// ascending by start time. Candidate windows step from the start of the
// working hours; a trailing window that would run past the end of the day is
// dropped, not truncated. The occupied intervals need not be sorted.
//
// Returns ErrNotWorkingDay when the specialist has no schedule entry for the
// date's weekday. A fully booked or zero-length day yields an empty result.
func FreeSlots(date time.Time, lookup ScheduleLookup, occupied []Interval) ([]Interval, error) {
	hours, ok := lookup(Weekday(date))
	if !ok {
		return nil, ErrNotWorkingDay
	}

	var slots []Interval
	for start := hours.Start; start+SlotMinutes <= hours.End; start += SlotMinutes {
		slot := Interval{Start: start, End: start + SlotMinutes}
		if !slot.OverlapsAny(occupied) {
			slots = append(slots, slot)
		}
	}
	return slots, nil
}

// Validate decides whether the candidate interval may be booked on the given
// date. Checks short-circuit in a fixed order: an overlap with an occupying
// interval wins over a missing schedule entry, which wins over an
// out-of-hours candidate. Self-exclusion for updates is the caller's
// contract: occupied must already exclude the appointment being changed.
func Validate(date time.Time, candidate Interval, lookup ScheduleLookup, occupied []Interval) error {
	if candidate.OverlapsAny(occupied) {
		return ErrSlotTaken
	}

	hours, ok := lookup(Weekday(date))
	if !ok {
		return ErrNotWorkingDay
	}

	if candidate.Start < hours.Start || candidate.End > hours.End {
		return ErrOutsideWorkingHours
	}

	return nil
}
