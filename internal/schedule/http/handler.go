package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/om1ji/appointment-booking-backend/internal/availability"
	"github.com/om1ji/appointment-booking-backend/internal/pkg/request"
	"github.com/om1ji/appointment-booking-backend/internal/pkg/response"
	"github.com/om1ji/appointment-booking-backend/internal/schedule"
)

type Handler struct {
	service schedule.Service
}

func NewHandler(service schedule.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	filter := schedule.Filter{
		SpecialistID: c.Query("specialist_id"),
	}

	if v := c.Query("day_of_week"); v != "" {
		day, err := strconv.Atoi(v)
		if err != nil || day < 0 || day > 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day_of_week"})
			return
		}
		filter.DayOfWeek = &day
	}

	entries, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ScheduleResponse, len(entries))
	for i, e := range entries {
		items[i] = NewResponse(e)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	e, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(e))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateScheduleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	start, err := parseTime(body.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_time, expected HH:MM"})
		return
	}
	end, err := parseTime(body.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_time, expected HH:MM"})
		return
	}

	e, err := h.service.Create(c.Request.Context(), schedule.CreateRequest{
		SpecialistID: body.SpecialistID,
		DayOfWeek:    body.DayOfWeek,
		Start:        start,
		End:          end,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(e))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateScheduleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := schedule.UpdateRequest{DayOfWeek: body.DayOfWeek}

	var start, end availability.TimeOfDay
	var err error
	if body.StartTime != nil {
		if start, err = parseTime(*body.StartTime); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_time, expected HH:MM"})
			return
		}
		req.Start = &start
	}
	if body.EndTime != nil {
		if end, err = parseTime(*body.EndTime); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_time, expected HH:MM"})
			return
		}
		req.End = &end
	}

	e, err := h.service.Update(c.Request.Context(), uri.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(e))
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
