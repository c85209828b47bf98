package services

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"park-itinerary-service/internal/domain"
)

type OptimizationMode string

const (
	ModeDistance OptimizationMode = "distance"
	ModeTime     OptimizationMode = "time"
	ModeManual   OptimizationMode = "manual"
)

func ParseOptimizationMode(s string) (OptimizationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "distance":
		return ModeDistance, nil
	case "time":
		return ModeTime, nil
	case "manual", "user_order", "selection_order":
		return ModeManual, nil
	default:
		return "", fmt.Errorf("parse optimization mode: unknown mode %q", s)
	}
}

// Order the selection with the requested strategy.
// startMinutes is only used by the time strategy.
func (m TravelModel) Order(mode OptimizationMode, entries []domain.SelectionEntry, startMinutes int) ([]domain.SelectionEntry, error) {
	switch mode {
	case ModeDistance:
		return m.DistanceGreedyOrder(entries), nil
	case ModeTime:
		return m.TimeGreedyOrder(entries, startMinutes), nil
	case ModeManual:
		return SelectionOrder(entries), nil
	default:
		return nil, fmt.Errorf("order selection: unknown mode %q", mode)
	}
}

// Stable sort by priority rank, tie-broken by ascending selection order.
// The input slice is never modified.
func PriorityBaseline(entries []domain.SelectionEntry) []domain.SelectionEntry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b domain.SelectionEntry) int {
		if c := cmp.Compare(a.Priority.Rank(), b.Priority.Rank()); c != 0 {
			return c
		}
		return cmp.Compare(a.Order, b.Order)
	})
	return out
}

// Entries in the order the user picked them. Priority is ignored.
func SelectionOrder(entries []domain.SelectionEntry) []domain.SelectionEntry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b domain.SelectionEntry) int {
		return cmp.Compare(a.Order, b.Order)
	})
	return out
}

// Greedy nearest-neighbor walk over the priority baseline.
//
// Priority only decides the starting stop. After the first pick every step
// takes the geographically closest remaining entrance regardless of priority.
// This matches the established planner output; do not turn it into a
// priority-respecting walk.
func (m TravelModel) DistanceGreedyOrder(entries []domain.SelectionEntry) []domain.SelectionEntry {
	base := PriorityBaseline(entries)
	if len(base) <= 2 {
		return base
	}

	rem := newArena(base)
	current := rem.take(0)
	ordered := make([]domain.SelectionEntry, 0, len(base))
	ordered = append(ordered, current)

	for rem.left > 0 {
		best := -1
		bestDistance := 0.0
		for i, e := range rem.entries {
			if rem.visited[i] {
				continue
			}

			d, _ := m.leg(current.Attraction, e.Attraction)
			// Strict comparison keeps the first candidate on ties.
			if best == -1 || d < bestDistance {
				best = i
				bestDistance = d
			}
		}

		current = rem.take(best)
		ordered = append(ordered, current)
	}

	return ordered
}

// One lookahead evaluation of a candidate next stop.
type candidateCost struct {
	idx      int
	travel   int
	arrival  int
	wait     int
	duration int
	total    int
}

func (c candidateCost) departure() int { return c.arrival + c.wait + c.duration }

// Greedy lookahead over the priority baseline minimizing
// travel + expected wait + visit duration for the next stop.
//
// Like the distance strategy, priority only decides the first stop.
// The winning evaluation is committed as-is, so the clock advances by
// exactly the numbers used to choose it.
func (m TravelModel) TimeGreedyOrder(entries []domain.SelectionEntry, startMinutes int) []domain.SelectionEntry {
	base := PriorityBaseline(entries)
	if len(base) <= 2 {
		return base
	}

	rem := newArena(base)
	current := rem.take(0)
	currentTime := startMinutes
	ordered := make([]domain.SelectionEntry, 0, len(base))
	ordered = append(ordered, current)

	for rem.left > 0 {
		var best *candidateCost
		for i, e := range rem.entries {
			if rem.visited[i] {
				continue
			}

			c := m.evaluate(current.Attraction, e.Attraction, currentTime)
			c.idx = i
			if best == nil || c.total < best.total {
				best = &c
			}
		}

		current = rem.take(best.idx)
		currentTime = best.departure()
		ordered = append(ordered, current)
	}

	return ordered
}

func (m TravelModel) evaluate(from, to domain.Attraction, currentTime int) candidateCost {
	_, travel := m.leg(from, to)
	arrival := currentTime + travel
	wait := m.wait(to, arrival)
	duration := to.DurationMinutes

	return candidateCost{
		travel:   travel,
		arrival:  arrival,
		wait:     wait,
		duration: duration,
		total:    travel + wait + duration,
	}
}

// Index-addressable remaining set with a visited marker.
type arena struct {
	entries []domain.SelectionEntry
	visited []bool
	left    int
}

func newArena(entries []domain.SelectionEntry) *arena {
	return &arena{
		entries: entries,
		visited: make([]bool, len(entries)),
		left:    len(entries),
	}
}

func (a *arena) take(i int) domain.SelectionEntry {
	a.visited[i] = true
	a.left--
	return a.entries[i]
}
