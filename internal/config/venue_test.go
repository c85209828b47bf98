package config

import (
	"os"
	"path/filepath"
	"testing"

	"park-itinerary-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeVenue(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "venue.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadVenueMissingFileUsesDefaults(t *testing.T) {
	v, err := LoadVenue(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultVenue(), v)

	cfg := v.PlannerConfig()
	assert.Equal(t, 540, cfg.OpenMinutes)
	assert.Equal(t, 1260, cfg.CloseMinutes)
	assert.Equal(t, 600, cfg.EarliestEndMinutes)
	assert.Equal(t, 80.0, cfg.WalkingSpeed)
	assert.True(t, v.Bound().IsZero())
}

func TestLoadVenueOverridesDefaults(t *testing.T) {
	path := writeVenue(t, `
name: Sea Park
hours:
  open: "08:30"
  close: "22:00"
walking:
  speed_meters_per_minute: 60
  depart_from_exit: true
defaults:
  wait_minutes: 5
bounds:
  south_west: {lat: 35.62, lng: 139.87}
  north_east: {lat: 35.64, lng: 139.89}
`)

	v, err := LoadVenue(path)
	require.NoError(t, err)
	assert.Equal(t, "Sea Park", v.Name)
	assert.Equal(t, 15, v.Defaults.DurationMinutes)

	cfg := v.PlannerConfig()
	assert.Equal(t, 510, cfg.OpenMinutes)
	assert.Equal(t, 1320, cfg.CloseMinutes)
	assert.Equal(t, 600, cfg.EarliestEndMinutes)
	assert.Equal(t, 60.0, cfg.WalkingSpeed)
	assert.Equal(t, 5, cfg.FallbackWaitMinutes)
	assert.True(t, cfg.DepartFromExit)

	b := v.Bound()
	assert.True(t, b.Contains(domain.Coordinates{Lat: 35.63, Lng: 139.88}.Point()))
	assert.False(t, b.Contains(domain.Coordinates{Lat: 35.70, Lng: 139.88}.Point()))
}

func TestLoadVenueRejectsBadHours(t *testing.T) {
	_, err := LoadVenue(writeVenue(t, "hours:\n  open: \"9am\"\n"))
	assert.Error(t, err)

	_, err = LoadVenue(writeVenue(t, "hours:\n  open: \"21:00\"\n  close: \"09:00\"\n"))
	assert.Error(t, err)
}

func TestLoadVenueRejectsInvertedBounds(t *testing.T) {
	_, err := LoadVenue(writeVenue(t, `
bounds:
  south_west: {lat: 35.64, lng: 139.89}
  north_east: {lat: 35.62, lng: 139.87}
`))
	assert.Error(t, err)
}
