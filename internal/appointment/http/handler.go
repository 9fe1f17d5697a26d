package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/om1ji/appointment-booking-backend/internal/appointment"
	"github.com/om1ji/appointment-booking-backend/internal/auth"
	"github.com/om1ji/appointment-booking-backend/internal/client"
	"github.com/om1ji/appointment-booking-backend/internal/pkg/apperror"
	"github.com/om1ji/appointment-booking-backend/internal/pkg/request"
	"github.com/om1ji/appointment-booking-backend/internal/pkg/response"
	"github.com/om1ji/appointment-booking-backend/internal/specialist"
	"github.com/om1ji/appointment-booking-backend/internal/user"
)

var errNotParticipant = apperror.New(http.StatusForbidden, "you are not a participant of this appointment")

type Handler struct {
	service     appointment.Service
	users       user.Service
	clients     client.Service
	specialists specialist.Service
}

func NewHandler(
	service appointment.Service,
	users user.Service,
	clients client.Service,
	specialists specialist.Service,
) *Handler {
	return &Handler{
		service:     service,
		users:       users,
		clients:     clients,
		specialists: specialists,
	}
}

// caller bundles what the authenticated user is allowed to see: staff see
// everything, others only appointments where they are the client or the
// specialist.
type caller struct {
	staff        bool
	clientID     string
	specialistID string
}

func (h *Handler) resolveCaller(c *gin.Context) caller {
	userID := auth.GetUserID(c)

	var out caller
	if u, err := h.users.GetByID(c.Request.Context(), userID); err == nil {
		out.staff = u.IsStaff
	}
	if out.staff {
		return out
	}
	if cl, err := h.clients.GetByUserID(c.Request.Context(), userID); err == nil {
		out.clientID = cl.ID
	}
	if sp, err := h.specialists.GetByUserID(c.Request.Context(), userID); err == nil {
		out.specialistID = sp.ID
	}
	return out
}

func (cal caller) canSee(a *appointment.Appointment) bool {
	if cal.staff {
		return true
	}
	return (cal.clientID != "" && a.ClientID == cal.clientID) ||
		(cal.specialistID != "" && a.SpecialistID == cal.specialistID)
}

func (h *Handler) List(c *gin.Context) {
	var req ListAppointmentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	filter := appointment.Filter{
		ClientID:     req.ClientID,
		SpecialistID: req.SpecialistID,
		CategoryID:   req.CategoryID,
		Page:         req.Page,
		PageSize:     req.PageSize,
	}
	if req.Status != "" {
		status, err := appointment.ParseStatus(req.Status)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.Status = status
	}
	if req.DateFrom != "" {
		from, err := parseDate(req.DateFrom)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.DateFrom = &from
	}
	if req.DateTo != "" {
		to, err := parseDate(req.DateTo)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.DateTo = &to
	}

	cal := h.resolveCaller(c)
	if !cal.staff {
		// Non-staff callers are pinned to their own appointments.
		switch {
		case cal.clientID != "":
			filter.ClientID = cal.clientID
		case cal.specialistID != "":
			filter.SpecialistID = cal.specialistID
		default:
			c.JSON(http.StatusOK, response.NewPageResponse([]AppointmentResponse{}, req.Page, req.PageSize, 0))
			return
		}
	}

	appointments, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]AppointmentResponse, len(appointments))
	for i, a := range appointments {
		items[i] = NewResponse(a)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateAppointmentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	cal := h.resolveCaller(c)
	if !cal.staff && body.ClientID != cal.clientID {
		response.Error(c, errNotParticipant)
		return
	}

	date, err := parseDate(body.Date)
	if err != nil {
		response.Error(c, err)
		return
	}
	start, err := parseTime(body.StartTime)
	if err != nil {
		response.Error(c, err)
		return
	}

	req := appointment.CreateRequest{
		ClientID:     body.ClientID,
		SpecialistID: body.SpecialistID,
		OfferingID:   body.OfferingID,
		Date:         date,
		Start:        start,
		Notes:        body.Notes,
	}
	if body.EndTime != "" {
		end, err := parseTime(body.EndTime)
		if err != nil {
			response.Error(c, err)
			return
		}
		req.End = &end
	}

	a, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(a))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !h.resolveCaller(c).canSee(a) {
		response.Error(c, errNotParticipant)
		return
	}

	c.JSON(http.StatusOK, NewResponse(a))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !h.resolveCaller(c).canSee(a) {
		response.Error(c, errNotParticipant)
		return
	}

	req := appointment.RescheduleRequest{Notes: body.Notes}
	if body.Date != nil {
		date, err := parseDate(*body.Date)
		if err != nil {
			response.Error(c, err)
			return
		}
		req.Date = &date
	}
	if body.StartTime != nil {
		start, err := parseTime(*body.StartTime)
		if err != nil {
			response.Error(c, err)
			return
		}
		req.Start = &start
	}
	if body.EndTime != nil {
		end, err := parseTime(*body.EndTime)
		if err != nil {
			response.Error(c, err)
			return
		}
		req.End = &end
	}

	updated, err := h.service.Reschedule(c.Request.Context(), uri.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(updated))
}

func (h *Handler) transition(c *gin.Context, next appointment.Status) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	cal := h.resolveCaller(c)
	switch next {
	case appointment.StatusCancelled:
		// Either side of the appointment may cancel.
		if !cal.canSee(a) {
			response.Error(c, errNotParticipant)
			return
		}
	default:
		// Confirming and completing is up to the specialist or staff.
		if !cal.staff && (cal.specialistID == "" || a.SpecialistID != cal.specialistID) {
			response.Error(c, errNotParticipant)
			return
		}
	}

	updated, err := h.service.Transition(c.Request.Context(), req.ID, next)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(updated))
}

func (h *Handler) Confirm(c *gin.Context) {
	h.transition(c, appointment.StatusConfirmed)
}

func (h *Handler) Cancel(c *gin.Context) {
	h.transition(c, appointment.StatusCancelled)
}

func (h *Handler) Complete(c *gin.Context) {
	h.transition(c, appointment.StatusCompleted)
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
