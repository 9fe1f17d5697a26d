package schedule

import (
	"github.com/om1ji/appointment-booking-backend/internal/availability"
	"github.com/om1ji/appointment-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound       = apperror.NotFound("schedule entry not found")
	ErrDuplicateDay   = apperror.Conflict("specialist already has a schedule for this day")
	ErrInvalidDay     = apperror.BadRequest("day_of_week must be between 0 (Monday) and 6 (Sunday)")
	ErrInvalidWindow  = apperror.BadRequest("start time must be before end time")
	ErrSpecialistGone = apperror.NotFound("specialist not found")
)

// Entry is one weekday's working window for a specialist. The store holds at
// most one entry per (specialist, day): a unique index enforces it.
type Entry struct {
	ID             string
	SpecialistID   string
	SpecialistName string
	DayOfWeek      int // 0=Monday .. 6=Sunday
	Start          availability.TimeOfDay
	End            availability.TimeOfDay
}

// Hours returns the entry's window in the availability engine's terms.
func (e *Entry) Hours() availability.WorkingHours {
	return availability.WorkingHours{Start: e.Start, End: e.End}
}

// Filter defines parameters for listing schedule entries.
type Filter struct {
	SpecialistID string
	DayOfWeek    *int
}
