package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/om1ji/appointment-booking-backend/internal/appointment"
	"github.com/om1ji/appointment-booking-backend/internal/metrics"
	"github.com/om1ji/appointment-booking-backend/internal/offering"
	offeringhttp "github.com/om1ji/appointment-booking-backend/internal/offering/http"
	"github.com/om1ji/appointment-booking-backend/internal/pkg/request"
	"github.com/om1ji/appointment-booking-backend/internal/pkg/response"
	"github.com/om1ji/appointment-booking-backend/internal/schedule"
	schedulehttp "github.com/om1ji/appointment-booking-backend/internal/schedule/http"
	"github.com/om1ji/appointment-booking-backend/internal/specialist"
)

const maxPhotoSize = 10 << 20 // 10 MiB

type Handler struct {
	service      specialist.Service
	schedules    schedule.Service
	offerings    offering.Service
	appointments appointment.Service
}

func NewHandler(
	service specialist.Service,
	schedules schedule.Service,
	offerings offering.Service,
	appointments appointment.Service,
) *Handler {
	return &Handler{
		service:      service,
		schedules:    schedules,
		offerings:    offerings,
		appointments: appointments,
	}
}

func (h *Handler) List(c *gin.Context) {
	var req ListSpecialistsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	filter := specialist.Filter{
		Search:     req.Search,
		City:       req.City,
		CategoryID: req.CategoryID,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}

	specialists, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]SpecialistResponse, len(specialists))
	for i, s := range specialists {
		items[i] = NewResponse(s)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	s, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(s))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateSpecialistRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	s, err := h.service.Create(c.Request.Context(), specialist.CreateRequest{
		UserID:         body.UserID,
		Name:           body.Name,
		Specialization: body.Specialization,
		Description:    body.Description,
		City:           body.City,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(s))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateSpecialistRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	s, err := h.service.Update(c.Request.Context(), uri.ID, specialist.UpdateRequest{
		Name:           body.Name,
		Specialization: body.Specialization,
		Description:    body.Description,
		City:           body.City,
		IsActive:       body.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(s))
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

// ListOfferings returns the active offerings of one specialist.
func (h *Handler) ListOfferings(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if _, err := h.service.GetByID(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	offerings, _, err := h.offerings.List(c.Request.Context(), offering.Filter{
		SpecialistID: req.ID,
		Page:         1,
		PageSize:     100,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]offeringhttp.OfferingResponse, len(offerings))
	for i, o := range offerings {
		items[i] = offeringhttp.NewResponse(o)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ListSchedule returns the weekly working hours of one specialist.
func (h *Handler) ListSchedule(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if _, err := h.service.GetByID(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	entries, err := h.schedules.List(c.Request.Context(), schedule.Filter{SpecialistID: req.ID})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]schedulehttp.ScheduleResponse, len(entries))
	for i, e := range entries {
		items[i] = schedulehttp.NewResponse(e)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// AvailableSlots returns the free half-hour windows of one specialist on a
// given date. The date defaults to today when the query parameter is absent.
func (h *Handler) AvailableSlots(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	slots, err := h.appointments.FreeSlots(c.Request.Context(), req.ID, date)
	if err != nil {
		response.Error(c, err)
		return
	}
	metrics.IncSlotQuery()

	items := make([]SlotResponse, len(slots))
	for i, slot := range slots {
		items[i] = SlotResponse{
			StartTime: slot.Start.String(),
			EndTime:   slot.End.String(),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date.Format("2006-01-02"),
		"slots": items,
	})
}

// SetPhoto replaces the specialist's profile photo with the uploaded image.
func (h *Handler) SetPhoto(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	if file.Size > maxPhotoSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "photo exceeds the size limit"})
		return
	}

	src, err := file.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer src.Close()

	s, err := h.service.SetPhoto(c.Request.Context(), req.ID, src)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(s))
}

// Photo streams the stored profile photo.
func (h *Handler) Photo(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	rc, err := h.service.Photo(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, -1, "image/jpeg", rc, nil)
}
