package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/om1ji/appointment-booking-backend/internal/bookingapi"
)

func TestSlotsKeyboard(t *testing.T) {
	slots := []bookingapi.Slot{
		{StartTime: "09:00", EndTime: "09:30"},
		{StartTime: "09:30", EndTime: "10:00"},
		{StartTime: "10:00", EndTime: "10:30"},
		{StartTime: "11:00", EndTime: "11:30"},
	}

	kb := slotsKeyboard(slots)

	// three per row, remainder on its own row, back row last
	require.Len(t, kb.InlineKeyboard, 3)
	require.Len(t, kb.InlineKeyboard[0], 3)
	require.Len(t, kb.InlineKeyboard[1], 1)

	first := kb.InlineKeyboard[0][0]
	require.Equal(t, "09:00", first.Text)
	require.NotNil(t, first.CallbackData)
	require.Equal(t, "slot:09:00", *first.CallbackData)

	leftover := kb.InlineKeyboard[1][0]
	require.Equal(t, "slot:11:00", *leftover.CallbackData)

	back := kb.InlineKeyboard[2][0]
	require.Equal(t, "back:date", *back.CallbackData)
}

func TestSpecialistsKeyboard(t *testing.T) {
	specialists := []bookingapi.Specialist{
		{ID: "a1", Name: "Анна", Specialization: "массаж"},
		{ID: "b2", Name: "Борис"},
	}

	kb := specialistsKeyboard(specialists)

	require.Len(t, kb.InlineKeyboard, 3)
	require.Equal(t, "Анна — массаж", kb.InlineKeyboard[0][0].Text)
	require.Equal(t, "spec:a1", *kb.InlineKeyboard[0][0].CallbackData)
	require.Equal(t, "Борис", kb.InlineKeyboard[1][0].Text)
	require.Equal(t, "cancel", *kb.InlineKeyboard[2][0].CallbackData)
}

func TestOfferingsKeyboard(t *testing.T) {
	offerings := []bookingapi.Offering{
		{ID: "o1", Name: "Стрижка", DurationMinutes: 60, Price: 1500},
	}

	kb := offeringsKeyboard(offerings)

	require.Len(t, kb.InlineKeyboard, 2)
	require.Equal(t, "Стрижка · 60 мин · 1500₽", kb.InlineKeyboard[0][0].Text)
	require.Equal(t, "offer:o1", *kb.InlineKeyboard[0][0].CallbackData)
	require.Equal(t, "back:specialist", *kb.InlineKeyboard[1][0].CallbackData)
}

func TestDatesKeyboard(t *testing.T) {
	now := time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)

	kb := datesKeyboard(now)

	// seven days two per row plus the back row
	require.Len(t, kb.InlineKeyboard, 5)
	require.Equal(t, "Сегодня", kb.InlineKeyboard[0][0].Text)
	require.Equal(t, "date:2026-09-07", *kb.InlineKeyboard[0][0].CallbackData)
	require.Equal(t, "Завтра", kb.InlineKeyboard[0][1].Text)
	require.Equal(t, "09.09", kb.InlineKeyboard[1][0].Text)
	require.Equal(t, "date:2026-09-13", *kb.InlineKeyboard[3][0].CallbackData)
	require.Equal(t, "back:offering", *kb.InlineKeyboard[4][0].CallbackData)
}
