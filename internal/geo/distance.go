package geo

import (
	"math"

	"park-itinerary-service/internal/domain"

	"github.com/paulmach/orb"
)

const (
	EarthRadiusMeters = 6371000.0
	// Default walking pace inside the venue.
	WalkingSpeedMetersPerMinute = 80.0
)

// Great-circle distance in meters between two coordinates (haversine,
// spherical earth). Callers guarantee well-formed coordinates.
func DistanceMeters(a, b domain.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// Walking minutes for a distance at the default pace, rounded up.
func WalkingMinutes(distanceMeters float64) int {
	return WalkingMinutesAt(distanceMeters, WalkingSpeedMetersPerMinute)
}

// Walking minutes for a distance at the given pace, rounded up.
// There is no minimum travel time: zero distance is zero minutes.
// A non-positive speed falls back to the default pace.
func WalkingMinutesAt(distanceMeters, speedMetersPerMinute float64) int {
	if distanceMeters <= 0 {
		return 0
	}
	if speedMetersPerMinute <= 0 {
		speedMetersPerMinute = WalkingSpeedMetersPerMinute
	}
	return int(math.Ceil(distanceMeters / speedMetersPerMinute))
}

// Report whether a coordinate lies inside the bound.
// An empty bound accepts every coordinate.
func InBounds(bound orb.Bound, c domain.Coordinates) bool {
	if bound.IsZero() {
		return true
	}
	return bound.Contains(c.Point())
}
