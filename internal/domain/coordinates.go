package domain

import "github.com/paulmach/orb"

// Immutable geographic coordinates in decimal degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Return coordinates as an orb.Point ([lon, lat]) for geometry helpers.
func (c Coordinates) Point() orb.Point { return orb.Point{c.Lng, c.Lat} }
