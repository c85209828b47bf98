package domain

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestAttractionExitDefaultsToEntrance(t *testing.T) {
	a := Attraction{ID: 1, Entrance: Coordinates{Lat: 35.63, Lng: 139.88}}
	assert.Equal(t, a.Entrance, a.ExitCoordinates())

	exit := Coordinates{Lat: 35.64, Lng: 139.89}
	a.Exit = &exit
	assert.Equal(t, exit, a.ExitCoordinates())
}

func TestCoordinatesPointIsLonLat(t *testing.T) {
	c := Coordinates{Lat: 35.6, Lng: 139.8}
	assert.Equal(t, orb.Point{139.8, 35.6}, c.Point())
}

func TestPriorityRank(t *testing.T) {
	assert.Less(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Less(t, PriorityLow.Rank(), Priority("urgent").Rank())

	p, ok := ParsePriority(" HIGH ")
	assert.True(t, ok)
	assert.Equal(t, PriorityHigh, p)

	_, ok = ParsePriority("urgent")
	assert.False(t, ok)
}
