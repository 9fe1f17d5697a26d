package http

import (
	"time"

	"github.com/om1ji/appointment-booking-backend/internal/appointment"
	"github.com/om1ji/appointment-booking-backend/internal/availability"
	"github.com/om1ji/appointment-booking-backend/internal/pkg/apperror"
	"github.com/om1ji/appointment-booking-backend/internal/pkg/request"
)

const dateLayout = "2006-01-02"

var errBadTime = apperror.BadRequest("time must be in HH:MM format")
var errBadDate = apperror.BadRequest("date must be in YYYY-MM-DD format")

// ListAppointmentsRequest defines query parameters for listing appointments.
type ListAppointmentsRequest struct {
	request.ListParams
	ClientID     string `form:"client_id" binding:"omitempty,uuid"`
	SpecialistID string `form:"specialist_id" binding:"omitempty,uuid"`
	CategoryID   string `form:"category_id" binding:"omitempty,uuid"`
	Status       string `form:"status"`
	DateFrom     string `form:"date_from"`
	DateTo       string `form:"date_to"`
}

type AppointmentResponse struct {
	ID             string    `json:"id"`
	ClientID       string    `json:"client_id"`
	ClientName     string    `json:"client_name"`
	SpecialistID   string    `json:"specialist_id"`
	SpecialistName string    `json:"specialist_name"`
	OfferingID     string    `json:"offering_id"`
	OfferingName   string    `json:"offering_name"`
	Date           string    `json:"date"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewResponse(a *appointment.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:             a.ID,
		ClientID:       a.ClientID,
		ClientName:     a.ClientName,
		SpecialistID:   a.SpecialistID,
		SpecialistName: a.SpecialistName,
		OfferingID:     a.OfferingID,
		OfferingName:   a.OfferingName,
		Date:           a.Date.Format(dateLayout),
		StartTime:      a.Start.String(),
		EndTime:        a.End.String(),
		Status:         string(a.Status),
		Notes:          a.Notes,
		CreatedAt:      a.CreatedAt,
	}
}

type CreateAppointmentRequest struct {
	ClientID     string `json:"client_id" binding:"required,uuid"`
	SpecialistID string `json:"specialist_id" binding:"required,uuid"`
	OfferingID   string `json:"offering_id" binding:"required,uuid"`
	Date         string `json:"date" binding:"required"`
	StartTime    string `json:"start_time" binding:"required"`
	EndTime      string `json:"end_time"`
	Notes        string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	Date      *string `json:"date"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Notes     *string `json:"notes"`
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, errBadDate
	}
	return t, nil
}

func parseTime(s string) (availability.TimeOfDay, error) {
	t, err := availability.ParseTimeOfDay(s)
	if err != nil {
		return 0, errBadTime
	}
	return t, nil
}
