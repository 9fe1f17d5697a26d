package client

import (
	"net/http"
	"time"

	"github.com/om1ji/appointment-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.NotFound("client not found")
	ErrNameRequired    = apperror.BadRequest("client name is required")
	ErrPhoneRequired   = apperror.BadRequest("client phone is required")
	ErrTelegramIDTaken = apperror.Conflict("a client with this telegram id already exists")
	ErrProfileExists   = apperror.Conflict("this user already has a client profile")
	ErrNotProfileOwner = apperror.New(http.StatusForbidden, "you can only access your own client profile")
)

// Client is a person who books appointments. A client may be linked to a
// registered user account, a Telegram chat, neither, or both.
type Client struct {
	ID         string
	UserID     *string
	Name       string
	Phone      string
	Email      string
	City       string
	TelegramID *string
	CreatedAt  time.Time
}

// Filter defines parameters for listing clients.
type Filter struct {
	Search   string
	City     string
	Page     int
	PageSize int
}
