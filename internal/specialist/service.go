package specialist

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/om1ji/appointment-booking-backend/internal/pkg/storage"
)

type CreateRequest struct {
	UserID         *string
	Name           string
	Specialization string
	Description    string
	City           string
}

type UpdateRequest struct {
	Name           *string
	Specialization *string
	Description    *string
	City           *string
	IsActive       *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Specialist, error)
	GetByID(ctx context.Context, id string) (*Specialist, error)
	GetByUserID(ctx context.Context, userID string) (*Specialist, error)
	List(ctx context.Context, filter Filter) ([]*Specialist, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Specialist, error)
	Delete(ctx context.Context, id string) error

	// SetPhoto normalizes and stores a profile photo, replacing any previous one.
	SetPhoto(ctx context.Context, id string, content io.Reader) (*Specialist, error)
	// Photo opens the stored profile photo for reading.
	Photo(ctx context.Context, id string) (io.ReadCloser, error)
}

const (
	photoMaxWidth  = 1000
	photoMaxHeight = 1000
)

type service struct {
	repo  Repository
	media storage.Storage
}

func NewService(repo Repository, media storage.Storage) Service {
	return &service{repo: repo, media: media}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Specialist, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Specialization) == "" {
		return nil, ErrSpecializationRequired
	}

	sp := &Specialist{
		UserID:         req.UserID,
		Name:           req.Name,
		Specialization: req.Specialization,
		Description:    req.Description,
		City:           req.City,
		IsActive:       true,
	}

	if err := s.repo.Create(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Specialist, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByUserID(ctx context.Context, userID string) (*Specialist, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Specialist, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Specialist, error) {
	sp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		sp.Name = *req.Name
	}
	if req.Specialization != nil {
		if strings.TrimSpace(*req.Specialization) == "" {
			return nil, ErrSpecializationRequired
		}
		sp.Specialization = *req.Specialization
	}
	if req.Description != nil {
		sp.Description = *req.Description
	}
	if req.City != nil {
		sp.City = *req.City
	}
	if req.IsActive != nil {
		sp.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	sp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sp.PhotoPath != nil {
		_ = s.media.Delete(ctx, *sp.PhotoPath)
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) SetPhoto(ctx context.Context, id string, content io.Reader) (*Specialist, error) {
	sp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	normalized, err := storage.NormalizePhoto(content, photoMaxWidth, photoMaxHeight)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("specialists/%s.jpg", id)
	if err := s.media.Save(ctx, path, normalized); err != nil {
		return nil, fmt.Errorf("save photo failed: %w", err)
	}

	if err := s.repo.SetPhotoPath(ctx, id, &path); err != nil {
		_ = s.media.Delete(ctx, path)
		return nil, err
	}

	sp.PhotoPath = &path
	return sp, nil
}

func (s *service) Photo(ctx context.Context, id string) (io.ReadCloser, error) {
	sp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sp.PhotoPath == nil {
		return nil, ErrNoPhoto
	}
	return s.media.Get(ctx, *sp.PhotoPath)
}
