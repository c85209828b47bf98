package domain

// Represents a single visitable location inside the venue.
// Attractions are read-only reference data loaded once from the catalog.
// OfficialID joins the attraction to its waiting-time series.
type Attraction struct {
	ID              int
	OfficialID      string
	Name            string
	Entrance        Coordinates
	Exit            *Coordinates
	AreaName        string
	DurationMinutes int
}

// Exit coordinate of the attraction, falling back to the entrance.
func (a Attraction) ExitCoordinates() Coordinates {
	if a.Exit == nil {
		return a.Entrance
	}
	return *a.Exit
}

// Read-only attraction lookup keyed by Attraction.ID.
type AttractionCatalog map[int]Attraction

func NewAttractionCatalog(attractions []Attraction) AttractionCatalog {
	c := make(AttractionCatalog, len(attractions))
	for _, a := range attractions {
		c[a.ID] = a
	}
	return c
}
