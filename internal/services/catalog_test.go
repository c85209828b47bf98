package services

import (
	"testing"

	"park-itinerary-service/internal/domain"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestFilterToVenue(t *testing.T) {
	in := []domain.Attraction{
		{ID: 3, Entrance: domain.Coordinates{Lat: 35.633, Lng: 139.881}},
		{ID: 9, Entrance: domain.Coordinates{Lat: 35.700, Lng: 139.881}},
		{ID: 1, Entrance: domain.Coordinates{Lat: 35.631, Lng: 139.877}},
	}
	bound := orb.Bound{Min: orb.Point{139.87, 35.62}, Max: orb.Point{139.89, 35.64}}

	kept, outside := FilterToVenue(in, bound)
	assert.Equal(t, []int{1, 3}, []int{kept[0].ID, kept[1].ID})
	assert.Equal(t, []int{9}, outside)

	all, none := FilterToVenue(in, orb.Bound{})
	assert.Len(t, all, 3)
	assert.Empty(t, none)
}

func TestCatalogVersionTracksContent(t *testing.T) {
	attractions := []domain.Attraction{{ID: 1, Name: "A"}}
	series := []domain.WaitingSeries{{OfficialID: "160", WaitMinutes: 10}}

	v1 := CatalogVersion(attractions, series)
	assert.Len(t, v1, 12)
	assert.Equal(t, v1, CatalogVersion(attractions, series))

	series[0].WaitMinutes = 20
	assert.NotEqual(t, v1, CatalogVersion(attractions, series))
}
