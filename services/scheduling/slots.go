package scheduling

import (
	"fmt"
	"time"
)

// clockLayout is the wall-clock format used for window bounds and slot labels.
const clockLayout = "15:04"

// ParseClock converts a zero-padded "HH:MM" string into minutes from
// midnight. Only the canonical padded form is accepted so parsed values
// round-trip through FormatClock unchanged.
func ParseClock(s string) (int, error) {
	if len(s) != len(clockLayout) {
		return 0, fmt.Errorf("invalid clock value %q: want HH:MM", s)
	}
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock converts minutes from midnight back into an "HH:MM" string.
func FormatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// GenerateSlots steps from startMin up to (but never reaching) endMin in
// intervalMin increments. A slot whose start falls before the window's end is
// included even if its implied duration spills past it; a slot starting at or
// after the end is not. Degenerate input (non-positive interval, start >= end)
// yields no slots.
func GenerateSlots(startMin, endMin, intervalMin int) []int {
	if intervalMin <= 0 || startMin < 0 || startMin >= endMin {
		return nil
	}
	slots := make([]int, 0, (endMin-startMin)/intervalMin+1)
	for m := startMin; m < endMin; m += intervalMin {
		slots = append(slots, m)
	}
	return slots
}

// SlotsForWindow expands a window's clock bounds into ordered "HH:MM" slot
// labels. Malformed bounds resolve to an empty day rather than an error: a
// corrupt window must never take provider lookups down with it.
func SlotsForWindow(start, end string, intervalMin int) []string {
	startMin, err := ParseClock(start)
	if err != nil {
		return nil
	}
	endMin, err := ParseClock(end)
	if err != nil {
		return nil
	}
	minutes := GenerateSlots(startMin, endMin, intervalMin)
	if len(minutes) == 0 {
		return nil
	}
	out := make([]string, len(minutes))
	for i, m := range minutes {
		out[i] = FormatClock(m)
	}
	return out
}
