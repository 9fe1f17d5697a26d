package client

import (
	"context"
	"strings"
)

type CreateRequest struct {
	UserID     *string
	Name       string
	Phone      string
	Email      string
	City       string
	TelegramID *string
}

type UpdateRequest struct {
	Name       *string
	Phone      *string
	Email      *string
	City       *string
	TelegramID *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Client, error)
	GetByID(ctx context.Context, id string) (*Client, error)
	GetByUserID(ctx context.Context, userID string) (*Client, error)
	GetByTelegramID(ctx context.Context, telegramID string) (*Client, error)
	List(ctx context.Context, filter Filter) ([]*Client, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Client, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return nil, ErrPhoneRequired
	}

	cl := &Client{
		UserID:     req.UserID,
		Name:       name,
		Phone:      phone,
		Email:      strings.TrimSpace(req.Email),
		City:       strings.TrimSpace(req.City),
		TelegramID: req.TelegramID,
	}

	if err := s.repo.Create(ctx, cl); err != nil {
		return nil, err
	}
	return cl, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByUserID(ctx context.Context, userID string) (*Client, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) GetByTelegramID(ctx context.Context, telegramID string) (*Client, error) {
	return s.repo.GetByTelegramID(ctx, telegramID)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Client, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Client, error) {
	cl, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		cl.Name = name
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if phone == "" {
			return nil, ErrPhoneRequired
		}
		cl.Phone = phone
	}
	if req.Email != nil {
		cl.Email = strings.TrimSpace(*req.Email)
	}
	if req.City != nil {
		cl.City = strings.TrimSpace(*req.City)
	}
	if req.TelegramID != nil {
		if *req.TelegramID == "" {
			cl.TelegramID = nil
		} else {
			cl.TelegramID = req.TelegramID
		}
	}

	if err := s.repo.Update(ctx, cl); err != nil {
		return nil, err
	}
	return cl, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
