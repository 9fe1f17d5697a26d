package http

import (
	"time"

	"github.com/om1ji/appointment-booking-backend/internal/category"
	"github.com/om1ji/appointment-booking-backend/internal/pkg/request"
)

// ListCategoriesRequest defines query parameters for listing categories.
type ListCategoriesRequest struct {
	request.ListParams
	Search string `form:"search"`
}

type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewResponse(c *category.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
}
