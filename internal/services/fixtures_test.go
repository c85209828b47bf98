package services

import (
	"fmt"
	"math"
	"strconv"

	"park-itinerary-service/internal/domain"
	"park-itinerary-service/internal/geo"
)

const (
	baseLat = 35.63
	baseLng = 139.88
)

var metersPerDegree = geo.EarthRadiusMeters * math.Pi / 180

// Attraction placed northMeters due north of a common origin, so distances
// between fixtures are plain differences of their offsets.
func attractionAt(id int, northMeters float64, duration int) domain.Attraction {
	return domain.Attraction{
		ID:              id,
		OfficialID:      strconv.Itoa(id),
		Name:            fmt.Sprintf("attraction-%d", id),
		Entrance:        domain.Coordinates{Lat: baseLat + northMeters/metersPerDegree, Lng: baseLng},
		AreaName:        "test-land",
		DurationMinutes: duration,
	}
}

func entry(a domain.Attraction, p domain.Priority, order int) domain.SelectionEntry {
	return domain.SelectionEntry{Attraction: a, Priority: p, Order: order}
}

func orders(entries []domain.SelectionEntry) []int {
	out := make([]int, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Order)
	}
	return out
}

func itemIDs(items []domain.RouteItem) []int {
	out := make([]int, 0, len(items))
	for _, it := range items {
		out = append(out, it.Attraction.ID)
	}
	return out
}
