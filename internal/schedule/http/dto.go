package http

import (
	"github.com/om1ji/appointment-booking-backend/internal/availability"
	"github.com/om1ji/appointment-booking-backend/internal/schedule"
)

var dayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

type ScheduleResponse struct {
	ID             string `json:"id"`
	SpecialistID   string `json:"specialist_id"`
	SpecialistName string `json:"specialist_name"`
	DayOfWeek      int    `json:"day_of_week"`
	DayName        string `json:"day_name"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
}

func NewResponse(e *schedule.Entry) ScheduleResponse {
	return ScheduleResponse{
		ID:             e.ID,
		SpecialistID:   e.SpecialistID,
		SpecialistName: e.SpecialistName,
		DayOfWeek:      e.DayOfWeek,
		DayName:        dayNames[e.DayOfWeek],
		StartTime:      e.Start.String(),
		EndTime:        e.End.String(),
	}
}

type CreateScheduleRequest struct {
	SpecialistID string `json:"specialist_id" binding:"required,uuid"`
	DayOfWeek    int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime    string `json:"start_time" binding:"required"`
	EndTime      string `json:"end_time" binding:"required"`
}

type UpdateScheduleRequest struct {
	DayOfWeek *int    `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

// parseTime wraps the engine's HH:MM parser for handler use.
func parseTime(s string) (availability.TimeOfDay, error) {
	return availability.ParseTimeOfDay(s)
}
