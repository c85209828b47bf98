package config

import (
	"errors"
	"fmt"
	"os"

	"park-itinerary-service/internal/domain"
	"park-itinerary-service/internal/geo"
	"park-itinerary-service/internal/services"

	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"
)

// Venue describes the park the service plans for.
type Venue struct {
	Name     string      `yaml:"name"`
	Entrance Point       `yaml:"entrance"`
	Bounds   *VenueBound `yaml:"bounds,omitempty"`
	Hours    Hours       `yaml:"hours"`
	Walking  Walking     `yaml:"walking"`
	Defaults Defaults    `yaml:"defaults"`
}

type Point struct {
	Lat float64 `yaml:"lat"`
	Lng float64 `yaml:"lng"`
}

// Attractions outside the box are left out of the catalog.
type VenueBound struct {
	SouthWest Point `yaml:"south_west"`
	NorthEast Point `yaml:"north_east"`
}

// Times are HH:MM.
type Hours struct {
	Open        string `yaml:"open"`
	Close       string `yaml:"close"`
	EarliestEnd string `yaml:"earliest_end"`
}

type Walking struct {
	SpeedMetersPerMinute float64 `yaml:"speed_meters_per_minute"`
	DepartFromExit       bool    `yaml:"depart_from_exit"`
}

type Defaults struct {
	DurationMinutes int `yaml:"duration_minutes"`
	WaitMinutes     int `yaml:"wait_minutes"`
}

func DefaultVenue() *Venue {
	return &Venue{
		Name:     "Theme Park",
		Entrance: Point{Lat: 35.6329, Lng: 139.8804},
		Hours: Hours{
			Open:        "09:00",
			Close:       "21:00",
			EarliestEnd: "10:00",
		},
		Walking: Walking{
			SpeedMetersPerMinute: geo.WalkingSpeedMetersPerMinute,
		},
		Defaults: Defaults{
			DurationMinutes: 15,
			WaitMinutes:     0,
		},
	}
}

// LoadVenue reads a venue file over the defaults.
// A missing file yields the defaults unchanged.
func LoadVenue(path string) (*Venue, error) {
	v := DefaultVenue()
	if path == "" {
		return v, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return v, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read venue config %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, v); err != nil {
		return nil, fmt.Errorf("parse venue config %q: %w", path, err)
	}
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("venue config %q: %w", path, err)
	}

	return v, nil
}

func (v *Venue) Validate() error {
	open, ok := domain.ParseTimeToMinutes(v.Hours.Open)
	if !ok {
		return fmt.Errorf("hours.open %q is not HH:MM", v.Hours.Open)
	}
	closing, ok := domain.ParseTimeToMinutes(v.Hours.Close)
	if !ok {
		return fmt.Errorf("hours.close %q is not HH:MM", v.Hours.Close)
	}
	earliest, ok := domain.ParseTimeToMinutes(v.Hours.EarliestEnd)
	if !ok {
		return fmt.Errorf("hours.earliest_end %q is not HH:MM", v.Hours.EarliestEnd)
	}
	if closing <= open {
		return fmt.Errorf("hours.close %s must be after hours.open %s", v.Hours.Close, v.Hours.Open)
	}
	if earliest < open || earliest > closing {
		return fmt.Errorf("hours.earliest_end %s must lie within opening hours", v.Hours.EarliestEnd)
	}
	if v.Walking.SpeedMetersPerMinute < 0 {
		return errors.New("walking.speed_meters_per_minute must not be negative")
	}
	if v.Defaults.DurationMinutes < 0 || v.Defaults.WaitMinutes < 0 {
		return errors.New("defaults must not be negative")
	}
	if b := v.Bounds; b != nil {
		if b.SouthWest.Lat > b.NorthEast.Lat || b.SouthWest.Lng > b.NorthEast.Lng {
			return errors.New("bounds.south_west must be south-west of bounds.north_east")
		}
	}
	return nil
}

// Planner settings derived from the venue. Call after Validate.
func (v *Venue) PlannerConfig() services.PlannerConfig {
	cfg := services.DefaultPlannerConfig()
	if m, ok := domain.ParseTimeToMinutes(v.Hours.Open); ok {
		cfg.OpenMinutes = m
	}
	if m, ok := domain.ParseTimeToMinutes(v.Hours.Close); ok {
		cfg.CloseMinutes = m
	}
	if m, ok := domain.ParseTimeToMinutes(v.Hours.EarliestEnd); ok {
		cfg.EarliestEndMinutes = m
	}
	if v.Walking.SpeedMetersPerMinute > 0 {
		cfg.WalkingSpeed = v.Walking.SpeedMetersPerMinute
	}
	cfg.FallbackWaitMinutes = v.Defaults.WaitMinutes
	cfg.DepartFromExit = v.Walking.DepartFromExit
	return cfg
}

// Zero bound when the venue has none, which accepts everything.
func (v *Venue) Bound() orb.Bound {
	if v.Bounds == nil {
		return orb.Bound{}
	}
	return orb.Bound{
		Min: orb.Point{v.Bounds.SouthWest.Lng, v.Bounds.SouthWest.Lat},
		Max: orb.Point{v.Bounds.NorthEast.Lng, v.Bounds.NorthEast.Lat},
	}
}

func (v *Venue) EntranceCoordinates() domain.Coordinates {
	return domain.Coordinates{Lat: v.Entrance.Lat, Lng: v.Entrance.Lng}
}
