package availability

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay is a wall-clock time within a single day, expressed as minutes
// since midnight. All engine comparisons are same-day, so no timezone or
// date arithmetic is ever involved.
type TimeOfDay int

// ParseTimeOfDay parses a "HH:MM" string (seconds, if present, are rejected).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}

	return TimeOfDay(hour*60 + minute), nil
}

// String formats the time as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Minutes returns the minutes since midnight as a plain int, for storage.
func (t TimeOfDay) Minutes() int {
	return int(t)
}

// Interval is a half-open time window [Start, End) within one day.
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Overlaps reports whether two half-open intervals intersect.
// Touching endpoints ([9:00,9:30) and [9:30,10:00)) do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// OverlapsAny reports whether the interval intersects any of the given ones.
func (iv Interval) OverlapsAny(others []Interval) bool {
	for _, o := range others {
		if iv.Overlaps(o) {
			return true
		}
	}
	return false
}
