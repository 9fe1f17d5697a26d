package bookingapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchSpecialists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/specialists", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		assert.Equal(t, "Казань", r.URL.Query().Get("city"))

		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"id": "spec-1", "name": "Мария", "specialization": "массаж", "city": "Казань"},
			},
			"total": 1,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token-1")
	specialists, err := c.SearchSpecialists(context.Background(), "", "Казань", "")
	require.NoError(t, err)
	require.Len(t, specialists, 1)
	assert.Equal(t, "spec-1", specialists[0].ID)
	assert.Equal(t, "Мария", specialists[0].Name)
}

func TestAvailableSlots(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/specialists/spec-1/available-slots", r.URL.Path)
		assert.Equal(t, "2026-09-07", r.URL.Query().Get("date"))

		json.NewEncoder(w).Encode(map[string]any{
			"date": "2026-09-07",
			"slots": []map[string]string{
				{"start_time": "09:00", "end_time": "09:30"},
				{"start_time": "10:30", "end_time": "11:00"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token-1")
	slots, err := c.AvailableSlots(context.Background(), "spec-1", "2026-09-07")
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "09:00", slots[0].StartTime)
}

func TestCreateAppointment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/appointments", r.URL.Path)

		var body CreateAppointmentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "09:00", body.StartTime)
		assert.Empty(t, body.EndTime) // backend derives it

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Appointment{
			ID: "appt-1", Date: body.Date, StartTime: "09:00", EndTime: "10:00", Status: "pending",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token-1")
	appt, err := c.CreateAppointment(context.Background(), CreateAppointmentRequest{
		ClientID:     "client-1",
		SpecialistID: "spec-1",
		OfferingID:   "offer-1",
		Date:         "2026-09-07",
		StartTime:    "09:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "appt-1", appt.ID)
	assert.Equal(t, "10:00", appt.EndTime)
}

func TestAPIErrorCarriesBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "time slot is already taken"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token-1")
	_, err := c.CreateAppointment(context.Background(), CreateAppointmentRequest{})
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "time slot is already taken", apiErr.Message)
}
