package offering

import (
	"context"
	"errors"

	"github.com/om1ji/appointment-booking-backend/internal/category"
	"github.com/om1ji/appointment-booking-backend/internal/specialist"
)

type CreateRequest struct {
	Name            string
	Description     string
	Price           float64
	DurationMinutes int
	SpecialistID    string
	CategoryID      *string
}

type UpdateRequest struct {
	Name            *string
	Description     *string
	Price           *float64
	DurationMinutes *int
	CategoryID      *string
	IsActive        *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Offering, error)
	GetByID(ctx context.Context, id string) (*Offering, error)
	List(ctx context.Context, filter Filter) ([]*Offering, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Offering, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo        Repository
	specialists specialist.Service
	categories  category.Service
}

func NewService(repo Repository, specialists specialist.Service, categories category.Service) Service {
	return &service{
		repo:        repo,
		specialists: specialists,
		categories:  categories,
	}
}

func validateOffering(name string, price float64, durationMinutes int) error {
	if name == "" {
		return ErrNameRequired
	}
	if price < 0 {
		return ErrInvalidPrice
	}
	if durationMinutes <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Offering, error) {
	if err := validateOffering(req.Name, req.Price, req.DurationMinutes); err != nil {
		return nil, err
	}

	if _, err := s.specialists.GetByID(ctx, req.SpecialistID); err != nil {
		if errors.Is(err, specialist.ErrNotFound) {
			return nil, ErrSpecialistGone
		}
		return nil, err
	}
	if req.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, category.ErrNotFound) {
				return nil, ErrCategoryGone
			}
			return nil, err
		}
	}

	o := &Offering{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		SpecialistID:    req.SpecialistID,
		CategoryID:      req.CategoryID,
		IsActive:        true,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	// Re-read to pick up the joined specialist and category names.
	return s.repo.GetByID(ctx, o.ID)
}

func (s *service) GetByID(ctx context.Context, id string) (*Offering, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Offering, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Offering, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		o.Name = *req.Name
	}
	if req.Description != nil {
		o.Description = *req.Description
	}
	if req.Price != nil {
		o.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		o.DurationMinutes = *req.DurationMinutes
	}
	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			o.CategoryID = nil
		} else {
			if _, err := s.categories.GetByID(ctx, *req.CategoryID); err != nil {
				if errors.Is(err, category.ErrNotFound) {
					return nil, ErrCategoryGone
				}
				return nil, err
			}
			o.CategoryID = req.CategoryID
		}
	}
	if req.IsActive != nil {
		o.IsActive = *req.IsActive
	}

	if err := validateOffering(o.Name, o.Price, o.DurationMinutes); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
