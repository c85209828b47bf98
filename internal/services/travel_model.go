package services

import (
	"park-itinerary-service/internal/domain"
	"park-itinerary-service/internal/geo"
)

// TravelModel bundles the read-only inputs shared by the ordering strategies
// and the simulator: the wait estimator, the walking pace and where a leg
// starts. The zero value walks at the default pace with no wait data.
type TravelModel struct {
	Waits        *WaitEstimator
	WalkingSpeed float64
	// When set, legs start at the previous attraction's exit instead of
	// its entrance.
	DepartFromExit bool
}

func (m TravelModel) origin(a domain.Attraction) domain.Coordinates {
	if m.DepartFromExit {
		return a.ExitCoordinates()
	}
	return a.Entrance
}

// Distance and walking minutes from one attraction to the next one's entrance.
func (m TravelModel) leg(from, to domain.Attraction) (float64, int) {
	d := geo.DistanceMeters(m.origin(from), to.Entrance)
	return d, geo.WalkingMinutesAt(d, m.WalkingSpeed)
}

func (m TravelModel) wait(a domain.Attraction, arrivalMinutes int) int {
	return m.Waits.EstimateWaitMinutes(a.OfficialID, arrivalMinutes)
}
