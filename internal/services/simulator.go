package services

import "park-itinerary-service/internal/domain"

// Walk an ordering from startMinutes, producing timed route items and the
// total walking distance. The first stop has no travel leg.
// Single linear pass; the input is not modified.
func (m TravelModel) Simulate(ordered []domain.SelectionEntry, startMinutes int) ([]domain.RouteItem, float64) {
	items := make([]domain.RouteItem, 0, len(ordered))
	currentTime := startMinutes
	totalDistance := 0.0

	var prev *domain.Attraction
	for i, e := range ordered {
		a := e.Attraction

		distance, travel := 0.0, 0
		if prev != nil {
			distance, travel = m.leg(*prev, a)
			totalDistance += distance
		}

		arrival := currentTime + travel
		wait := m.wait(a, arrival)
		duration := a.DurationMinutes
		departure := arrival + wait + duration

		items = append(items, domain.RouteItem{
			Index:                 i + 1,
			Type:                  domain.RouteItemAttraction,
			Attraction:            a,
			Priority:              e.Priority,
			TravelMinutes:         travel,
			SegmentDistanceMeters: distance,
			ArrivalMinutes:        arrival,
			WaitingMinutes:        wait,
			DurationMinutes:       duration,
			DepartureMinutes:      departure,
		})

		currentTime = departure
		prev = &a
	}

	return items, totalDistance
}
