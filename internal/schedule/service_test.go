package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/om1ji/appointment-booking-backend/internal/availability"
)

type fakeRepo struct {
	entries map[string]*Entry
	nextID  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{entries: make(map[string]*Entry)}
}

func (r *fakeRepo) Create(_ context.Context, e *Entry) error {
	for _, existing := range r.entries {
		if existing.SpecialistID == e.SpecialistID && existing.DayOfWeek == e.DayOfWeek {
			return ErrDuplicateDay
		}
	}
	r.nextID++
	e.ID = string(rune('a' + r.nextID))
	stored := *e
	r.entries[e.ID] = &stored
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Entry, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *fakeRepo) GetDay(_ context.Context, specialistID string, dayOfWeek int) (*Entry, error) {
	for _, e := range r.entries {
		if e.SpecialistID == specialistID && e.DayOfWeek == dayOfWeek {
			copied := *e
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) List(_ context.Context, _ Filter) ([]*Entry, error) { return nil, nil }

func (r *fakeRepo) Update(_ context.Context, e *Entry) error {
	if _, ok := r.entries[e.ID]; !ok {
		return ErrNotFound
	}
	stored := *e
	r.entries[e.ID] = &stored
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	delete(r.entries, id)
	return nil
}

func TestCreateValidatesWindow(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), CreateRequest{
		SpecialistID: "spec-1", DayOfWeek: 7, Start: 540, End: 720,
	})
	assert.ErrorIs(t, err, ErrInvalidDay)

	_, err = svc.Create(context.Background(), CreateRequest{
		SpecialistID: "spec-1", DayOfWeek: 0, Start: 720, End: 540,
	})
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = svc.Create(context.Background(), CreateRequest{
		SpecialistID: "spec-1", DayOfWeek: 0, Start: 540, End: 540,
	})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestCreateRejectsDuplicateDay(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), CreateRequest{
		SpecialistID: "spec-1", DayOfWeek: 0, Start: 540, End: 720,
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateRequest{
		SpecialistID: "spec-1", DayOfWeek: 0, Start: 600, End: 660,
	})
	assert.ErrorIs(t, err, ErrDuplicateDay)
}

func TestWorkingHours(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), CreateRequest{
		SpecialistID: "spec-1", DayOfWeek: 0, Start: 540, End: 720,
	})
	require.NoError(t, err)

	hours, found, err := svc.WorkingHours(context.Background(), "spec-1", 0)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, availability.WorkingHours{Start: 540, End: 720}, hours)

	_, found, err = svc.WorkingHours(context.Background(), "spec-1", 1)
	require.NoError(t, err)
	assert.False(t, found)
}
