package specialist

import (
	"time"

	"github.com/om1ji/appointment-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound               = apperror.NotFound("specialist not found")
	ErrNameRequired           = apperror.BadRequest("specialist name is required")
	ErrSpecializationRequired = apperror.BadRequest("specialization is required")
	ErrNoPhoto                = apperror.NotFound("specialist has no photo")
)

// Specialist is a provider clients book appointments with (a doctor, a
// master, etc.). A specialist may be linked to a user account for login.
type Specialist struct {
	ID             string
	UserID         *string
	Name           string
	Specialization string
	Description    string
	City           string
	PhotoPath      *string
	IsActive       bool
	CreatedAt      time.Time
}

// Filter defines parameters for listing specialists. Only active specialists
// are listed.
type Filter struct {
	Search     string // matches name or specialization
	City       string
	CategoryID string // specialists providing at least one offering in the category
	Page       int
	PageSize   int
}
