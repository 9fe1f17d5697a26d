package appointment

import (
	"time"

	"github.com/om1ji/appointment-booking-backend/internal/availability"
	"github.com/om1ji/appointment-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.NotFound("appointment not found")
	ErrInvalidStatus     = apperror.BadRequest("unknown appointment status")
	ErrInvalidTransition = apperror.Conflict("appointment status does not allow this transition")
	ErrInvalidWindow     = apperror.BadRequest("start time must be before end time")
	ErrNotReschedulable  = apperror.Conflict("only pending or confirmed appointments can be rescheduled")
	ErrClientGone        = apperror.BadRequest("referenced client does not exist")
	ErrOfferingGone      = apperror.BadRequest("referenced offering does not exist")
	ErrSpecialistGone    = apperror.BadRequest("referenced specialist does not exist")
	ErrOfferingMismatch  = apperror.BadRequest("offering does not belong to this specialist")
)

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

// IsOccupying reports whether an appointment in this status blocks its time
// slot. Completed and cancelled appointments free the slot.
func (s Status) IsOccupying() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanTransitionTo reports whether the status machine allows moving to next.
// Pending confirms or cancels, confirmed completes or cancels; completed and
// cancelled are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	}
	return false
}

// Appointment is one client's booking with a specialist for an offering on a
// specific date. Times are minutes within the day; the date carries no time
// component.
type Appointment struct {
	ID             string
	ClientID       string
	ClientName     string
	SpecialistID   string
	SpecialistName string
	OfferingID     string
	OfferingName   string
	Date           time.Time
	Start          availability.TimeOfDay
	End            availability.TimeOfDay
	Status         Status
	Notes          string
	CreatedAt      time.Time
}

// Interval returns the appointment's time window within its day.
func (a *Appointment) Interval() availability.Interval {
	return availability.Interval{Start: a.Start, End: a.End}
}

// Filter defines parameters for listing appointments.
type Filter struct {
	ClientID     string
	SpecialistID string
	CategoryID   string
	Status       Status
	DateFrom     *time.Time
	DateTo       *time.Time
	Page         int
	PageSize     int
}
