package http

import (
	"time"

	"github.com/om1ji/appointment-booking-backend/internal/pkg/request"
	"github.com/om1ji/appointment-booking-backend/internal/specialist"
)

// ListSpecialistsRequest defines query parameters for listing specialists.
type ListSpecialistsRequest struct {
	request.ListParams
	Search     string `form:"search"`
	City       string `form:"city"`
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
}

type SpecialistResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
	Description    string    `json:"description"`
	City           string    `json:"city"`
	HasPhoto       bool      `json:"has_photo"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewResponse(s *specialist.Specialist) SpecialistResponse {
	return SpecialistResponse{
		ID:             s.ID,
		Name:           s.Name,
		Specialization: s.Specialization,
		Description:    s.Description,
		City:           s.City,
		HasPhoto:       s.PhotoPath != nil,
		IsActive:       s.IsActive,
		CreatedAt:      s.CreatedAt,
	}
}

type CreateSpecialistRequest struct {
	UserID         *string `json:"user_id" binding:"omitempty,uuid"`
	Name           string  `json:"name" binding:"required,min=1,max=100"`
	Specialization string  `json:"specialization" binding:"required,min=1,max=100"`
	Description    string  `json:"description"`
	City           string  `json:"city"`
}

type UpdateSpecialistRequest struct {
	Name           *string `json:"name" binding:"omitempty,min=1,max=100"`
	Specialization *string `json:"specialization" binding:"omitempty,min=1,max=100"`
	Description    *string `json:"description"`
	City           *string `json:"city"`
	IsActive       *bool   `json:"is_active"`
}

// SlotResponse is one free booking window on the requested date.
type SlotResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}
