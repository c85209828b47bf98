package domain

type RouteItemType string

const (
	RouteItemAttraction RouteItemType = "attraction"
	// Reserved for rest stops; no ordering strategy produces it yet.
	RouteItemBreak RouteItemType = "break"
)

// Represents a single simulated stop in an itinerary.
// All times are minutes since midnight.
// DepartureMinutes = ArrivalMinutes + WaitingMinutes + DurationMinutes.
type RouteItem struct {
	Index                 int
	Type                  RouteItemType
	Attraction            Attraction
	Priority              Priority
	TravelMinutes         int
	SegmentDistanceMeters float64
	ArrivalMinutes        int
	WaitingMinutes        int
	DurationMinutes       int
	DepartureMinutes      int
}

// Represents a simulated itinerary for one trip.
// A PlanResult is immutable planning data: the output of running an ordering
// through the simulator against a deadline.
type PlanResult struct {
	Items               []RouteItem
	TotalDistanceMeters float64
	StartMinutes        int
	EndMinutes          int
	FinishMinutes       int
	Exceeded            bool
}

// Minutes from start until the last departure.
func (r PlanResult) TotalMinutes() int {
	return r.FinishMinutes - r.StartMinutes
}
