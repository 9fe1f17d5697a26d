package offering

import (
	"time"

	"github.com/om1ji/appointment-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.NotFound("offering not found")
	ErrNameRequired    = apperror.BadRequest("offering name is required")
	ErrInvalidPrice    = apperror.BadRequest("price must not be negative")
	ErrInvalidDuration = apperror.BadRequest("duration must be a positive number of minutes")
	ErrCategoryGone    = apperror.BadRequest("referenced category does not exist")
	ErrSpecialistGone  = apperror.BadRequest("referenced specialist does not exist")
)

// Offering is a bookable service provided by a specialist. Its duration
// determines the end time of appointments booked without an explicit one.
type Offering struct {
	ID              string
	Name            string
	Description     string
	Price           float64
	DurationMinutes int
	SpecialistID    string
	SpecialistName  string
	CategoryID      *string
	CategoryName    *string
	IsActive        bool
	CreatedAt       time.Time
}

// Filter defines parameters for listing offerings.
type Filter struct {
	Search       string
	SpecialistID string
	CategoryID   string
	City         string
	Page         int
	PageSize     int
}
