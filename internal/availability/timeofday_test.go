package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "09:00", want: 540},
		{in: "09:30", want: 570},
		{in: "23:59", want: 1439},
		{in: "9:05", want: 545},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "12", wantErr: true},
		{in: "12:00:00", wantErr: true},
		{in: "ab:cd", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "00:00", TimeOfDay(0).String())
	assert.Equal(t, "09:05", TimeOfDay(545).String())
	assert.Equal(t, "23:59", TimeOfDay(1439).String())
}

func TestIntervalOverlaps(t *testing.T) {
	base := Interval{Start: 540, End: 600} // 09:00-10:00

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{name: "identical", other: Interval{Start: 540, End: 600}, want: true},
		{name: "contained", other: Interval{Start: 555, End: 585}, want: true},
		{name: "overlaps start", other: Interval{Start: 510, End: 570}, want: true},
		{name: "overlaps end", other: Interval{Start: 570, End: 630}, want: true},
		{name: "touching before", other: Interval{Start: 480, End: 540}, want: false},
		{name: "touching after", other: Interval{Start: 600, End: 660}, want: false},
		{name: "disjoint", other: Interval{Start: 660, End: 720}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestIntervalOverlapsAny(t *testing.T) {
	occupied := []Interval{
		{Start: 540, End: 570},
		{Start: 660, End: 720},
	}

	assert.True(t, Interval{Start: 550, End: 580}.OverlapsAny(occupied))
	assert.False(t, Interval{Start: 570, End: 660}.OverlapsAny(occupied))
	assert.False(t, Interval{Start: 0, End: 30}.OverlapsAny(nil))
}
