package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/om1ji/appointment-booking-backend/internal/availability"
	"github.com/om1ji/appointment-booking-backend/internal/client"
	"github.com/om1ji/appointment-booking-backend/internal/metrics"
	"github.com/om1ji/appointment-booking-backend/internal/offering"
	"github.com/om1ji/appointment-booking-backend/internal/schedule"
	"github.com/om1ji/appointment-booking-backend/internal/specialist"
)

type CreateRequest struct {
	ClientID     string
	SpecialistID string
	OfferingID   string
	Date         time.Time
	Start        availability.TimeOfDay
	// End is optional; when nil it is derived from the offering's duration.
	End   *availability.TimeOfDay
	Notes string
}

type RescheduleRequest struct {
	Date  *time.Time
	Start *availability.TimeOfDay
	End   *availability.TimeOfDay
	Notes *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Appointment, error)
	GetByID(ctx context.Context, id string) (*Appointment, error)
	List(ctx context.Context, filter Filter) ([]*Appointment, int, error)
	Reschedule(ctx context.Context, id string, req RescheduleRequest) (*Appointment, error)

	// Transition moves the appointment through its status machine:
	// pending -> confirmed -> completed, with cancellation allowed from
	// pending and confirmed.
	Transition(ctx context.Context, id string, next Status) (*Appointment, error)

	Delete(ctx context.Context, id string) error

	// FreeSlots lists the specialist's free half-hour windows on a date.
	FreeSlots(ctx context.Context, specialistID string, date time.Time) ([]availability.Interval, error)
}

type service struct {
	repo        Repository
	clients     client.Service
	specialists specialist.Service
	offerings   offering.Service
	schedules   schedule.Service
}

func NewService(
	repo Repository,
	clients client.Service,
	specialists specialist.Service,
	offerings offering.Service,
	schedules schedule.Service,
) Service {
	return &service{
		repo:        repo,
		clients:     clients,
		specialists: specialists,
		offerings:   offerings,
		schedules:   schedules,
	}
}

// dateOnly strips any time component so advisory locking and date columns see
// one canonical value per day.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// scheduleLookup pre-resolves the working hours for the date's weekday so the
// validation inside the booking transaction stays free of I/O.
func (s *service) scheduleLookup(ctx context.Context, specialistID string, date time.Time) (availability.ScheduleLookup, error) {
	hours, found, err := s.schedules.WorkingHours(ctx, specialistID, availability.Weekday(date))
	if err != nil {
		return nil, err
	}
	return func(int) (availability.WorkingHours, bool) {
		return hours, found
	}, nil
}

func conflictReason(err error) string {
	switch {
	case errors.Is(err, availability.ErrSlotTaken):
		return "slot_taken"
	case errors.Is(err, availability.ErrNotWorkingDay):
		return "not_working_day"
	case errors.Is(err, availability.ErrOutsideWorkingHours):
		return "outside_hours"
	}
	return ""
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Appointment, error) {
	if _, err := s.clients.GetByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return nil, ErrClientGone
		}
		return nil, err
	}
	if _, err := s.specialists.GetByID(ctx, req.SpecialistID); err != nil {
		if errors.Is(err, specialist.ErrNotFound) {
			return nil, ErrSpecialistGone
		}
		return nil, err
	}
	off, err := s.offerings.GetByID(ctx, req.OfferingID)
	if err != nil {
		if errors.Is(err, offering.ErrNotFound) {
			return nil, ErrOfferingGone
		}
		return nil, err
	}
	if off.SpecialistID != req.SpecialistID {
		return nil, ErrOfferingMismatch
	}

	end := req.Start + availability.TimeOfDay(off.DurationMinutes)
	if req.End != nil {
		end = *req.End
	}
	if req.Start >= end {
		return nil, ErrInvalidWindow
	}

	date := dateOnly(req.Date)
	lookup, err := s.scheduleLookup(ctx, req.SpecialistID, date)
	if err != nil {
		return nil, err
	}
	candidate := availability.Interval{Start: req.Start, End: end}

	a := &Appointment{
		ClientID:     req.ClientID,
		SpecialistID: req.SpecialistID,
		OfferingID:   req.OfferingID,
		Date:         date,
		Start:        req.Start,
		End:          end,
		Status:       StatusPending,
		Notes:        req.Notes,
	}

	err = s.repo.Create(ctx, a, func(occupied []availability.Interval) error {
		return availability.Validate(date, candidate, lookup, occupied)
	})
	if err != nil {
		if reason := conflictReason(err); reason != "" {
			metrics.IncBookingConflict(reason)
		}
		return nil, err
	}

	metrics.IncAppointmentCreated(string(a.Status))
	return s.repo.GetByID(ctx, a.ID)
}

func (s *service) GetByID(ctx context.Context, id string) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Appointment, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Reschedule(ctx context.Context, id string, req RescheduleRequest) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.Status.IsOccupying() {
		return nil, ErrNotReschedulable
	}

	if req.Date != nil {
		a.Date = dateOnly(*req.Date)
	}
	if req.Start != nil {
		a.Start = *req.Start
	}
	if req.End != nil {
		a.End = *req.End
	}
	if req.Notes != nil {
		a.Notes = *req.Notes
	}
	if a.Start >= a.End {
		return nil, ErrInvalidWindow
	}

	lookup, err := s.scheduleLookup(ctx, a.SpecialistID, a.Date)
	if err != nil {
		return nil, err
	}
	candidate := a.Interval()
	date := a.Date

	err = s.repo.UpdateTime(ctx, a, func(occupied []availability.Interval) error {
		return availability.Validate(date, candidate, lookup, occupied)
	})
	if err != nil {
		if reason := conflictReason(err); reason != "" {
			metrics.IncBookingConflict(reason)
		}
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *service) Transition(ctx context.Context, id string, next Status) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	metrics.IncStatusTransition(string(next))

	a.Status = next
	return a, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) FreeSlots(ctx context.Context, specialistID string, date time.Time) ([]availability.Interval, error) {
	if _, err := s.specialists.GetByID(ctx, specialistID); err != nil {
		return nil, err
	}

	day := dateOnly(date)
	lookup, err := s.scheduleLookup(ctx, specialistID, day)
	if err != nil {
		return nil, err
	}
	occupied, err := s.repo.OccupiedIntervals(ctx, specialistID, day, "")
	if err != nil {
		return nil, err
	}

	return availability.FreeSlots(day, lookup, occupied)
}
