package http

import (
	"time"

	"github.com/om1ji/appointment-booking-backend/internal/client"
	"github.com/om1ji/appointment-booking-backend/internal/pkg/request"
)

// ListClientsRequest defines query parameters for listing clients.
type ListClientsRequest struct {
	request.ListParams
	Search string `form:"search"`
	City   string `form:"city"`
}

type ClientResponse struct {
	ID         string    `json:"id"`
	UserID     *string   `json:"user_id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	City       string    `json:"city"`
	TelegramID *string   `json:"telegram_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewResponse(cl *client.Client) ClientResponse {
	return ClientResponse{
		ID:         cl.ID,
		UserID:     cl.UserID,
		Name:       cl.Name,
		Phone:      cl.Phone,
		Email:      cl.Email,
		City:       cl.City,
		TelegramID: cl.TelegramID,
		CreatedAt:  cl.CreatedAt,
	}
}

type CreateClientRequest struct {
	Name       string  `json:"name" binding:"required,min=1,max=100"`
	Phone      string  `json:"phone" binding:"required,min=3,max=32"`
	Email      string  `json:"email" binding:"omitempty,email"`
	City       string  `json:"city"`
	TelegramID *string `json:"telegram_id"`
}

type UpdateClientRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1,max=100"`
	Phone      *string `json:"phone" binding:"omitempty,min=3,max=32"`
	Email      *string `json:"email" binding:"omitempty,email"`
	City       *string `json:"city"`
	TelegramID *string `json:"telegram_id"`
}
