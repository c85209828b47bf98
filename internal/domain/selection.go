package domain

import "strings"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities for sorting: high=0, medium=1, low=2.
// Unknown values sort after low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 99
	}
}

func (p Priority) Valid() bool { return p.Rank() < 99 }

func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	return p, p.Valid()
}

// One attraction chosen by the user for a single trip.
// Order is assigned at selection time, is unique within a plan,
// and is only ever used as a tie-break.
type SelectionEntry struct {
	Attraction Attraction
	Priority   Priority
	Order      int
}
