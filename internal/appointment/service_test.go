package appointment

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/om1ji/appointment-booking-backend/internal/availability"
	"github.com/om1ji/appointment-booking-backend/internal/client"
	"github.com/om1ji/appointment-booking-backend/internal/offering"
	"github.com/om1ji/appointment-booking-backend/internal/schedule"
	"github.com/om1ji/appointment-booking-backend/internal/specialist"
)

const (
	testClientID     = "11111111-1111-1111-1111-111111111111"
	testSpecialistID = "22222222-2222-2222-2222-222222222222"
	testOfferingID   = "33333333-3333-3333-3333-333333333333"
)

// 2026-09-07 is a Monday.
var testMonday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

type stubRepo struct {
	appointments map[string]*Appointment
	occupied     []availability.Interval
	nextID       string

	// excludedID records what UpdateTime was asked to exclude.
	excludedID string
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		appointments: make(map[string]*Appointment),
		nextID:       "aaaaaaaa-0000-0000-0000-000000000001",
	}
}

func (r *stubRepo) Create(_ context.Context, a *Appointment, guard Guard) error {
	if err := guard(r.occupied); err != nil {
		return err
	}
	a.ID = r.nextID
	a.CreatedAt = time.Now()
	stored := *a
	r.appointments[a.ID] = &stored
	return nil
}

func (r *stubRepo) GetByID(_ context.Context, id string) (*Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *stubRepo) List(_ context.Context, _ Filter) ([]*Appointment, int, error) {
	return nil, 0, nil
}

func (r *stubRepo) UpdateTime(_ context.Context, a *Appointment, guard Guard) error {
	r.excludedID = a.ID
	var remaining []availability.Interval
	if existing, ok := r.appointments[a.ID]; ok {
		for _, iv := range r.occupied {
			if iv != existing.Interval() {
				remaining = append(remaining, iv)
			}
		}
	}
	if err := guard(remaining); err != nil {
		return err
	}
	stored := *a
	r.appointments[a.ID] = &stored
	return nil
}

func (r *stubRepo) UpdateStatus(_ context.Context, id string, status Status) error {
	a, ok := r.appointments[id]
	if !ok {
		return ErrNotFound
	}
	a.Status = status
	return nil
}

func (r *stubRepo) OccupiedIntervals(_ context.Context, _ string, _ time.Time, _ string) ([]availability.Interval, error) {
	return r.occupied, nil
}

func (r *stubRepo) Delete(_ context.Context, id string) error {
	delete(r.appointments, id)
	return nil
}

type stubClients struct{}

func (stubClients) Create(context.Context, client.CreateRequest) (*client.Client, error) {
	return nil, client.ErrNotFound
}
func (stubClients) GetByID(_ context.Context, id string) (*client.Client, error) {
	if id != testClientID {
		return nil, client.ErrNotFound
	}
	return &client.Client{ID: id, Name: "Анна"}, nil
}
func (stubClients) GetByUserID(context.Context, string) (*client.Client, error) {
	return nil, client.ErrNotFound
}
func (stubClients) GetByTelegramID(context.Context, string) (*client.Client, error) {
	return nil, client.ErrNotFound
}
func (stubClients) List(context.Context, client.Filter) ([]*client.Client, int, error) {
	return nil, 0, nil
}
func (stubClients) Update(context.Context, string, client.UpdateRequest) (*client.Client, error) {
	return nil, client.ErrNotFound
}
func (stubClients) Delete(context.Context, string) error { return nil }

type stubSpecialists struct{}

func (stubSpecialists) Create(context.Context, specialist.CreateRequest) (*specialist.Specialist, error) {
	return nil, specialist.ErrNotFound
}
func (stubSpecialists) GetByID(_ context.Context, id string) (*specialist.Specialist, error) {
	if id != testSpecialistID {
		return nil, specialist.ErrNotFound
	}
	return &specialist.Specialist{ID: id, Name: "Мария", IsActive: true}, nil
}
func (stubSpecialists) GetByUserID(context.Context, string) (*specialist.Specialist, error) {
	return nil, specialist.ErrNotFound
}
func (stubSpecialists) List(context.Context, specialist.Filter) ([]*specialist.Specialist, int, error) {
	return nil, 0, nil
}
func (stubSpecialists) Update(context.Context, string, specialist.UpdateRequest) (*specialist.Specialist, error) {
	return nil, specialist.ErrNotFound
}
func (stubSpecialists) Delete(context.Context, string) error { return nil }
func (stubSpecialists) SetPhoto(context.Context, string, io.Reader) (*specialist.Specialist, error) {
	return nil, specialist.ErrNotFound
}
func (stubSpecialists) Photo(context.Context, string) (io.ReadCloser, error) {
	return nil, specialist.ErrNotFound
}

type stubOfferings struct {
	specialistID string
}

func (s stubOfferings) Create(context.Context, offering.CreateRequest) (*offering.Offering, error) {
	return nil, offering.ErrNotFound
}
func (s stubOfferings) GetByID(_ context.Context, id string) (*offering.Offering, error) {
	if id != testOfferingID {
		return nil, offering.ErrNotFound
	}
	return &offering.Offering{
		ID:              id,
		Name:            "Консультация",
		DurationMinutes: 60,
		SpecialistID:    s.specialistID,
		IsActive:        true,
	}, nil
}
func (s stubOfferings) List(context.Context, offering.Filter) ([]*offering.Offering, int, error) {
	return nil, 0, nil
}
func (s stubOfferings) Update(context.Context, string, offering.UpdateRequest) (*offering.Offering, error) {
	return nil, offering.ErrNotFound
}
func (s stubOfferings) Delete(context.Context, string) error { return nil }

// stubSchedules works 09:00-12:00 on Mondays only.
type stubSchedules struct{}

func (stubSchedules) Create(context.Context, schedule.CreateRequest) (*schedule.Entry, error) {
	return nil, schedule.ErrNotFound
}
func (stubSchedules) GetByID(context.Context, string) (*schedule.Entry, error) {
	return nil, schedule.ErrNotFound
}
func (stubSchedules) List(context.Context, schedule.Filter) ([]*schedule.Entry, error) {
	return nil, nil
}
func (stubSchedules) Update(context.Context, string, schedule.UpdateRequest) (*schedule.Entry, error) {
	return nil, schedule.ErrNotFound
}
func (stubSchedules) Delete(context.Context, string) error { return nil }
func (stubSchedules) WorkingHours(_ context.Context, _ string, dayOfWeek int) (availability.WorkingHours, bool, error) {
	if dayOfWeek != 0 {
		return availability.WorkingHours{}, false, nil
	}
	return availability.WorkingHours{Start: 540, End: 720}, true, nil
}

func newTestService(repo *stubRepo) Service {
	return NewService(repo, stubClients{}, stubSpecialists{},
		stubOfferings{specialistID: testSpecialistID}, stubSchedules{})
}

func validCreateRequest() CreateRequest {
	return CreateRequest{
		ClientID:     testClientID,
		SpecialistID: testSpecialistID,
		OfferingID:   testOfferingID,
		Date:         testMonday,
		Start:        540, // 09:00
	}
}

func TestCreateDerivesEndFromOfferingDuration(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)

	a, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, availability.TimeOfDay(540), a.Start)
	assert.Equal(t, availability.TimeOfDay(600), a.End) // 60-minute offering
	assert.Equal(t, StatusPending, a.Status)
}

func TestCreateExplicitEndWins(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)

	req := validCreateRequest()
	end := availability.TimeOfDay(570) // 09:30
	req.End = &end

	a, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, availability.TimeOfDay(570), a.End)
}

func TestCreateRejectsOverlap(t *testing.T) {
	repo := newStubRepo()
	repo.occupied = []availability.Interval{{Start: 570, End: 630}} // 09:30-10:30
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, availability.ErrSlotTaken)
	assert.Empty(t, repo.appointments)
}

func TestCreateOverlapWinsOverDayOff(t *testing.T) {
	repo := newStubRepo()
	repo.occupied = []availability.Interval{{Start: 540, End: 600}}
	svc := newTestService(repo)

	req := validCreateRequest()
	req.Date = testMonday.AddDate(0, 0, 6) // Sunday, not a working day

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, availability.ErrSlotTaken)
}

func TestCreateRejectsDayOff(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)

	req := validCreateRequest()
	req.Date = testMonday.AddDate(0, 0, 6)

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, availability.ErrNotWorkingDay)
}

func TestCreateRejectsOutsideHours(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)

	req := validCreateRequest()
	req.Start = 480 // 08:00, opens at 09:00

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, availability.ErrOutsideWorkingHours)
}

func TestCreateRejectsForeignOffering(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, stubClients{}, stubSpecialists{},
		stubOfferings{specialistID: "99999999-9999-9999-9999-999999999999"}, stubSchedules{})

	_, err := svc.Create(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, ErrOfferingMismatch)
}

func TestCreateRejectsUnknownReferences(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)

	req := validCreateRequest()
	req.ClientID = "00000000-0000-0000-0000-000000000000"
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrClientGone)

	req = validCreateRequest()
	req.OfferingID = "00000000-0000-0000-0000-000000000000"
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrOfferingGone)
}

func TestRescheduleExcludesOwnInterval(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)

	a, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	// The appointment's own 09:00-10:00 interval now occupies the day.
	repo.occupied = []availability.Interval{a.Interval()}

	// Shifting by half an hour overlaps the old interval; self-exclusion
	// must let it through.
	start := availability.TimeOfDay(570)
	end := availability.TimeOfDay(630)
	moved, err := svc.Reschedule(context.Background(), a.ID, RescheduleRequest{
		Start: &start,
		End:   &end,
	})
	require.NoError(t, err)
	assert.Equal(t, a.ID, repo.excludedID)
	assert.Equal(t, availability.TimeOfDay(570), moved.Start)
	assert.Equal(t, availability.TimeOfDay(630), moved.End)
}

func TestRescheduleRejectsTerminalStatus(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)

	a, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	repo.appointments[a.ID].Status = StatusCancelled

	start := availability.TimeOfDay(570)
	_, err = svc.Reschedule(context.Background(), a.ID, RescheduleRequest{Start: &start})
	assert.ErrorIs(t, err, ErrNotReschedulable)
}

func TestTransition(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)

	a, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	confirmed, err := svc.Transition(context.Background(), a.ID, StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, confirmed.Status)

	completed, err := svc.Transition(context.Background(), a.ID, StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, completed.Status)

	_, err = svc.Transition(context.Background(), a.ID, StatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestFreeSlots(t *testing.T) {
	repo := newStubRepo()
	repo.occupied = []availability.Interval{{Start: 570, End: 630}}
	svc := newTestService(repo)

	slots, err := svc.FreeSlots(context.Background(), testSpecialistID, testMonday)
	require.NoError(t, err)
	assert.Equal(t, []availability.Interval{
		{Start: 540, End: 570},
		{Start: 630, End: 660},
		{Start: 660, End: 690},
		{Start: 690, End: 720},
	}, slots)

	_, err = svc.FreeSlots(context.Background(), testSpecialistID, testMonday.AddDate(0, 0, 6))
	assert.ErrorIs(t, err, availability.ErrNotWorkingDay)

	_, err = svc.FreeSlots(context.Background(), "00000000-0000-0000-0000-000000000000", testMonday)
	assert.ErrorIs(t, err, specialist.ErrNotFound)
}
