package services

import (
	"testing"

	"park-itinerary-service/internal/domain"
	"park-itinerary-service/internal/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityBaselineIsStable(t *testing.T) {
	entries := []domain.SelectionEntry{
		entry(attractionAt(1, 0, 10), domain.PriorityLow, 1),
		entry(attractionAt(2, 100, 10), domain.PriorityHigh, 2),
		entry(attractionAt(3, 200, 10), domain.PriorityHigh, 3),
	}

	got := PriorityBaseline(entries)
	assert.Equal(t, []int{2, 3, 1}, orders(got))

	// Input is left untouched.
	assert.Equal(t, []int{1, 2, 3}, orders(entries))
}

func TestPriorityBaselineTieBreaksOnOrder(t *testing.T) {
	entries := []domain.SelectionEntry{
		entry(attractionAt(1, 0, 10), domain.PriorityMedium, 9),
		entry(attractionAt(2, 0, 10), domain.PriorityMedium, 4),
		entry(attractionAt(3, 0, 10), domain.PriorityLow, 1),
		entry(attractionAt(4, 0, 10), domain.PriorityHigh, 7),
	}

	assert.Equal(t, []int{7, 4, 9, 1}, orders(PriorityBaseline(entries)))
}

func TestSelectionOrderIgnoresPriority(t *testing.T) {
	entries := []domain.SelectionEntry{
		entry(attractionAt(1, 0, 10), domain.PriorityLow, 3),
		entry(attractionAt(2, 0, 10), domain.PriorityHigh, 1),
		entry(attractionAt(3, 0, 10), domain.PriorityMedium, 2),
	}

	assert.Equal(t, []int{1, 2, 3}, orders(SelectionOrder(entries)))
}

func TestGreedyStrategiesShortCircuitSmallSelections(t *testing.T) {
	m := TravelModel{}

	for n := 0; n <= 2; n++ {
		entries := []domain.SelectionEntry{
			entry(attractionAt(1, 5000, 10), domain.PriorityLow, 1),
			entry(attractionAt(2, 0, 90), domain.PriorityHigh, 2),
		}[:n]

		base := PriorityBaseline(entries)
		assert.Equal(t, base, m.DistanceGreedyOrder(entries), "distance n=%d", n)
		assert.Equal(t, base, m.TimeGreedyOrder(entries, 600), "time n=%d", n)
	}
}

func TestDistanceGreedyPriorityOnlyPicksStart(t *testing.T) {
	a := attractionAt(1, 0, 10)
	b := attractionAt(2, 1000, 10)
	c := attractionAt(3, 100, 10)
	d := attractionAt(4, 2000, 10)

	entries := []domain.SelectionEntry{
		entry(a, domain.PriorityHigh, 1),
		entry(b, domain.PriorityLow, 2),
		entry(c, domain.PriorityLow, 3),
		entry(d, domain.PriorityMedium, 4),
	}

	got := TravelModel{}.DistanceGreedyOrder(entries)

	// The medium stop is farthest away and ends up last.
	assert.Equal(t, []int{1, 3, 2, 4}, orders(got))
}

func TestDistanceGreedyNearestUnvisitedInvariant(t *testing.T) {
	entries := []domain.SelectionEntry{
		entry(attractionAt(1, 0, 10), domain.PriorityMedium, 1),
		entry(attractionAt(2, 700, 10), domain.PriorityHigh, 2),
		entry(attractionAt(3, 250, 10), domain.PriorityLow, 3),
	}

	got := TravelModel{}.DistanceGreedyOrder(entries)
	require.Len(t, got, 3)
	assert.Equal(t, 2, got[0].Order, "walk starts at the highest priority stop")

	for i := 1; i < len(got)-1; i++ {
		cur := got[i-1].Attraction.Entrance
		picked := geo.DistanceMeters(cur, got[i].Attraction.Entrance)
		for _, later := range got[i+1:] {
			alt := geo.DistanceMeters(cur, later.Attraction.Entrance)
			assert.LessOrEqual(t, picked, alt, "step %d picked a farther stop", i)
		}
	}
	assert.Equal(t, []int{2, 3, 1}, orders(got))
}

func TestDistanceGreedyTiesKeepFirstRemaining(t *testing.T) {
	entries := []domain.SelectionEntry{
		entry(attractionAt(1, 0, 10), domain.PriorityHigh, 1),
		entry(attractionAt(2, 500, 10), domain.PriorityHigh, 2),
		entry(attractionAt(3, 500, 10), domain.PriorityHigh, 3),
	}

	assert.Equal(t, []int{1, 2, 3}, orders(TravelModel{}.DistanceGreedyOrder(entries)))
}

func TestTimeGreedyMinimizesLookaheadCost(t *testing.T) {
	a := attractionAt(1, 0, 10)
	b := attractionAt(2, 100, 60)
	c := attractionAt(3, 1000, 5)

	entries := []domain.SelectionEntry{
		entry(a, domain.PriorityHigh, 1),
		entry(b, domain.PriorityHigh, 2),
		entry(c, domain.PriorityHigh, 3),
	}

	m := TravelModel{}

	// B costs 2+0+60, C costs 13+0+5.
	assert.Equal(t, []int{1, 3, 2}, orders(m.TimeGreedyOrder(entries, 600)))
	assert.Equal(t, []int{1, 2, 3}, orders(m.DistanceGreedyOrder(entries)))
}

func TestTimeGreedyUsesWaitAtArrival(t *testing.T) {
	a := attractionAt(1, 0, 10)
	b := attractionAt(2, 100, 5)
	c := attractionAt(3, 1000, 5)

	waits := domain.NewWaitingCatalog([]domain.WaitingSeries{
		{OfficialID: b.OfficialID, Samples: []domain.WaitingSample{
			{Timestamp: "10:00", WaitMinutes: 90},
			{Timestamp: "14:00", WaitMinutes: 0},
		}},
	})

	entries := []domain.SelectionEntry{
		entry(a, domain.PriorityHigh, 1),
		entry(b, domain.PriorityHigh, 2),
		entry(c, domain.PriorityHigh, 3),
	}

	m := TravelModel{Waits: NewWaitEstimator(waits, 0)}

	// A morning start meets B's long queue, an afternoon start does not.
	assert.Equal(t, []int{1, 3, 2}, orders(m.TimeGreedyOrder(entries, 600)))
	assert.Equal(t, []int{1, 2, 3}, orders(m.TimeGreedyOrder(entries, 840)))
}

func TestOrderDispatch(t *testing.T) {
	entries := []domain.SelectionEntry{
		entry(attractionAt(1, 0, 10), domain.PriorityLow, 1),
		entry(attractionAt(2, 100, 10), domain.PriorityHigh, 2),
		entry(attractionAt(3, 50, 10), domain.PriorityMedium, 3),
	}
	m := TravelModel{}

	got, err := m.Order(ModeManual, entries, 600)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, orders(got))

	got, err = m.Order(ModeDistance, entries, 600)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 1}, orders(got))

	_, err = m.Order(OptimizationMode("brute_force"), entries, 600)
	assert.Error(t, err)
}

func TestParseOptimizationMode(t *testing.T) {
	for in, want := range map[string]OptimizationMode{
		"distance":   ModeDistance,
		" TIME ":     ModeTime,
		"manual":     ModeManual,
		"user_order": ModeManual,
	} {
		got, err := ParseOptimizationMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseOptimizationMode("fastest")
	assert.Error(t, err)
}
