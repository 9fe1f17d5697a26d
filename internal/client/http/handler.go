package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/om1ji/appointment-booking-backend/internal/auth"
	"github.com/om1ji/appointment-booking-backend/internal/client"
	"github.com/om1ji/appointment-booking-backend/internal/pkg/request"
	"github.com/om1ji/appointment-booking-backend/internal/pkg/response"
	"github.com/om1ji/appointment-booking-backend/internal/user"
)

type Handler struct {
	service client.Service
	users   user.Service
}

func NewHandler(service client.Service, users user.Service) *Handler {
	return &Handler{service: service, users: users}
}

func (h *Handler) isStaff(c *gin.Context) bool {
	u, err := h.users.GetByID(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		return false
	}
	return u.IsStaff
}

// canAccess reports whether the caller may read or modify the given client
// profile. Staff may access any profile, other users only their own.
func (h *Handler) canAccess(c *gin.Context, cl *client.Client) bool {
	if h.isStaff(c) {
		return true
	}
	userID := auth.GetUserID(c)
	return cl.UserID != nil && *cl.UserID == userID
}

func (h *Handler) List(c *gin.Context) {
	if !h.isStaff(c) {
		response.Error(c, client.ErrNotProfileOwner)
		return
	}

	// Point lookup used by the Telegram front-end.
	if telegramID := c.Query("telegram_id"); telegramID != "" {
		cl, err := h.service.GetByTelegramID(c.Request.Context(), telegramID)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, response.NewPageResponse([]ClientResponse{NewResponse(cl)}, 1, 1, 1))
		return
	}

	var req ListClientsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	clients, total, err := h.service.List(c.Request.Context(), client.Filter{
		Search:   req.Search,
		City:     req.City,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ClientResponse, len(clients))
	for i, cl := range clients {
		items[i] = NewResponse(cl)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateClientRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := client.CreateRequest{
		Name:       body.Name,
		Phone:      body.Phone,
		Email:      body.Email,
		City:       body.City,
		TelegramID: body.TelegramID,
	}
	if !h.isStaff(c) {
		// Non-staff users create their own profile.
		userID := auth.GetUserID(c)
		req.UserID = &userID
	}

	cl, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(cl))
}

// Me returns the client profile linked to the authenticated user.
func (h *Handler) Me(c *gin.Context) {
	cl, err := h.service.GetByUserID(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(cl))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	cl, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !h.canAccess(c, cl) {
		response.Error(c, client.ErrNotProfileOwner)
		return
	}

	c.JSON(http.StatusOK, NewResponse(cl))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateClientRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	cl, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !h.canAccess(c, cl) {
		response.Error(c, client.ErrNotProfileOwner)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), uri.ID, client.UpdateRequest{
		Name:       body.Name,
		Phone:      body.Phone,
		Email:      body.Email,
		City:       body.City,
		TelegramID: body.TelegramID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(updated))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
