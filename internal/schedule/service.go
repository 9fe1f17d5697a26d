package schedule

import (
	"context"
	"errors"

	"github.com/om1ji/appointment-booking-backend/internal/availability"
)

type CreateRequest struct {
	SpecialistID string
	DayOfWeek    int
	Start        availability.TimeOfDay
	End          availability.TimeOfDay
}

type UpdateRequest struct {
	DayOfWeek *int
	Start     *availability.TimeOfDay
	End       *availability.TimeOfDay
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Entry, error)
	GetByID(ctx context.Context, id string) (*Entry, error)
	List(ctx context.Context, filter Filter) ([]*Entry, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Entry, error)
	Delete(ctx context.Context, id string) error

	// WorkingHours resolves the working window for (specialist, weekday).
	// The second return is false when the specialist does not work that day.
	WorkingHours(ctx context.Context, specialistID string, dayOfWeek int) (availability.WorkingHours, bool, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validateWindow(dayOfWeek int, start, end availability.TimeOfDay) error {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return ErrInvalidDay
	}
	if start >= end {
		return ErrInvalidWindow
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Entry, error) {
	if err := validateWindow(req.DayOfWeek, req.Start, req.End); err != nil {
		return nil, err
	}

	e := &Entry{
		SpecialistID: req.SpecialistID,
		DayOfWeek:    req.DayOfWeek,
		Start:        req.Start,
		End:          req.End,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Entry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Entry, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Entry, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DayOfWeek != nil {
		e.DayOfWeek = *req.DayOfWeek
	}
	if req.Start != nil {
		e.Start = *req.Start
	}
	if req.End != nil {
		e.End = *req.End
	}

	if err := validateWindow(e.DayOfWeek, e.Start, e.End); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) WorkingHours(ctx context.Context, specialistID string, dayOfWeek int) (availability.WorkingHours, bool, error) {
	e, err := s.repo.GetDay(ctx, specialistID, dayOfWeek)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return availability.WorkingHours{}, false, nil
		}
		return availability.WorkingHours{}, false, err
	}
	return e.Hours(), true, nil
}
