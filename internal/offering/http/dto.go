package http

import (
	"time"

	"github.com/om1ji/appointment-booking-backend/internal/offering"
	"github.com/om1ji/appointment-booking-backend/internal/pkg/request"
)

// ListOfferingsRequest defines query parameters for listing offerings.
type ListOfferingsRequest struct {
	request.ListParams
	Search       string `form:"search"`
	SpecialistID string `form:"specialist_id" binding:"omitempty,uuid"`
	CategoryID   string `form:"category_id" binding:"omitempty,uuid"`
	City         string `form:"city"`
}

type OfferingResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"duration_minutes"`
	SpecialistID    string    `json:"specialist_id"`
	SpecialistName  string    `json:"specialist_name"`
	CategoryID      *string   `json:"category_id"`
	CategoryName    *string   `json:"category_name"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewResponse(o *offering.Offering) OfferingResponse {
	return OfferingResponse{
		ID:              o.ID,
		Name:            o.Name,
		Description:     o.Description,
		Price:           o.Price,
		DurationMinutes: o.DurationMinutes,
		SpecialistID:    o.SpecialistID,
		SpecialistName:  o.SpecialistName,
		CategoryID:      o.CategoryID,
		CategoryName:    o.CategoryName,
		IsActive:        o.IsActive,
		CreatedAt:       o.CreatedAt,
	}
}

type CreateOfferingRequest struct {
	Name            string  `json:"name" binding:"required,min=1,max=200"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" binding:"gte=0"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,gt=0"`
	SpecialistID    string  `json:"specialist_id" binding:"required,uuid"`
	CategoryID      *string `json:"category_id" binding:"omitempty,uuid"`
}

type UpdateOfferingRequest struct {
	Name            *string  `json:"name" binding:"omitempty,min=1,max=200"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price" binding:"omitempty,gte=0"`
	DurationMinutes *int     `json:"duration_minutes" binding:"omitempty,gt=0"`
	CategoryID      *string  `json:"category_id"`
	IsActive        *bool    `json:"is_active"`
}
