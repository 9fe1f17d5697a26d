package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-09-07 is a Monday, 2026-09-13 a Sunday.
var (
	monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	sunday = time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)
)

// mondayOnly works 09:00-12:00 on Mondays and has no other working days.
func mondayOnly(weekday int) (WorkingHours, bool) {
	if weekday == 0 {
		return WorkingHours{Start: 540, End: 720}, true
	}
	return WorkingHours{}, false
}

func TestWeekday(t *testing.T) {
	assert.Equal(t, 0, Weekday(monday))
	assert.Equal(t, 6, Weekday(sunday))
	assert.Equal(t, 2, Weekday(monday.AddDate(0, 0, 2)))
}

func TestFreeSlots(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		lookup   ScheduleLookup
		occupied []Interval
		want     []Interval
		wantErr  error
	}{
		{
			name:   "empty day yields every half hour",
			date:   monday,
			lookup: mondayOnly,
			want: []Interval{
				{Start: 540, End: 570}, {Start: 570, End: 600},
				{Start: 600, End: 630}, {Start: 630, End: 660},
				{Start: 660, End: 690}, {Start: 690, End: 720},
			},
		},
		{
			name:     "booking 09:30-10:30 removes two slots",
			date:     monday,
			lookup:   mondayOnly,
			occupied: []Interval{{Start: 570, End: 630}},
			want: []Interval{
				{Start: 540, End: 570},
				{Start: 630, End: 660},
				{Start: 660, End: 690}, {Start: 690, End: 720},
			},
		},
		{
			name:     "partial overlap blocks the whole slot",
			date:     monday,
			lookup:   mondayOnly,
			occupied: []Interval{{Start: 555, End: 585}}, // 09:15-09:45
			want: []Interval{
				{Start: 600, End: 630}, {Start: 630, End: 660},
				{Start: 660, End: 690}, {Start: 690, End: 720},
			},
		},
		{
			name:    "day off",
			date:    sunday,
			lookup:  mondayOnly,
			wantErr: ErrNotWorkingDay,
		},
		{
			name: "trailing partial window is dropped",
			date: monday,
			lookup: func(int) (WorkingHours, bool) {
				// 09:00-10:15: the 10:00-10:30 window does not fit.
				return WorkingHours{Start: 540, End: 615}, true
			},
			want: []Interval{
				{Start: 540, End: 570}, {Start: 570, End: 600},
			},
		},
		{
			name: "zero-length day",
			date: monday,
			lookup: func(int) (WorkingHours, bool) {
				return WorkingHours{Start: 540, End: 540}, true
			},
			want: nil,
		},
		{
			name:   "fully booked day",
			date:   monday,
			lookup: mondayOnly,
			occupied: []Interval{
				{Start: 540, End: 630},
				{Start: 630, End: 720},
			},
			want: nil,
		},
		{
			name:   "unsorted occupied intervals",
			date:   monday,
			lookup: mondayOnly,
			occupied: []Interval{
				{Start: 660, End: 690},
				{Start: 540, End: 570},
			},
			want: []Interval{
				{Start: 570, End: 600}, {Start: 600, End: 630},
				{Start: 630, End: 660}, {Start: 690, End: 720},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FreeSlots(tt.date, tt.lookup, tt.occupied)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFreeSlotsIdempotent(t *testing.T) {
	occupied := []Interval{{Start: 570, End: 630}}

	first, err := FreeSlots(monday, mondayOnly, occupied)
	require.NoError(t, err)
	second, err := FreeSlots(monday, mondayOnly, occupied)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestValidate(t *testing.T) {
	occupied := []Interval{{Start: 570, End: 630}} // 09:30-10:30

	tests := []struct {
		name      string
		date      time.Time
		candidate Interval
		lookup    ScheduleLookup
		occupied  []Interval
		wantErr   error
	}{
		{
			name:      "free slot within hours",
			date:      monday,
			candidate: Interval{Start: 540, End: 570},
			lookup:    mondayOnly,
			occupied:  occupied,
		},
		{
			name:      "overlap is rejected",
			date:      monday,
			candidate: Interval{Start: 540, End: 585}, // 09:00-09:45
			lookup:    mondayOnly,
			occupied:  occupied,
			wantErr:   ErrSlotTaken,
		},
		{
			name:      "before working hours",
			date:      monday,
			candidate: Interval{Start: 480, End: 510}, // 08:00-08:30
			lookup:    mondayOnly,
			occupied:  occupied,
			wantErr:   ErrOutsideWorkingHours,
		},
		{
			name:      "runs past closing",
			date:      monday,
			candidate: Interval{Start: 690, End: 750},
			lookup:    mondayOnly,
			wantErr:   ErrOutsideWorkingHours,
		},
		{
			name:      "day off",
			date:      sunday,
			candidate: Interval{Start: 600, End: 630},
			lookup:    mondayOnly,
			wantErr:   ErrNotWorkingDay,
		},
		{
			name:      "overlap wins over day off",
			date:      sunday,
			candidate: Interval{Start: 600, End: 630},
			lookup:    mondayOnly,
			occupied:  []Interval{{Start: 600, End: 660}},
			wantErr:   ErrSlotTaken,
		},
		{
			name:      "touching endpoints are both bookable",
			date:      monday,
			candidate: Interval{Start: 630, End: 660}, // right after 09:30-10:30
			lookup:    mondayOnly,
			occupied:  occupied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.date, tt.candidate, tt.lookup, tt.occupied)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}
