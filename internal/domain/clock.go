package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse a 24-hour "HH:MM" string into minutes since midnight.
// The second return value is false for empty, malformed or out-of-range input.
func ParseTimeToMinutes(s string) (int, bool) {
	hh, mm, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		return 0, false
	}

	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}

	return h*60 + m, true
}

// Format minutes since midnight as "HH:MM".
// Negative values render as "00:00"; values past midnight are not wrapped.
func MinutesToTimeString(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Clamp a parsed time into [lo, hi]. Unparsed values (ok=false) resolve to lo.
func ClampMinutes(v int, ok bool, lo, hi int) int {
	if !ok || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
