package category

import (
	"time"

	"github.com/om1ji/appointment-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.NotFound("category not found")
	ErrNameRequired = apperror.BadRequest("category name is required")
)

// Category groups the services specialists offer (e.g., Dentistry, Massage).
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}

// Filter defines parameters for listing categories.
type Filter struct {
	Search   string
	Page     int
	PageSize int
}
