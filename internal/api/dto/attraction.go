package dto

type CoordinateResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type AttractionResponse struct {
	ID              int                 `json:"id"`
	OfficialID      string              `json:"official_id"`
	Name            string              `json:"name"`
	AreaName        string              `json:"area_name"`
	Entrance        CoordinateResponse  `json:"entrance"`
	Exit            *CoordinateResponse `json:"exit,omitempty"`
	DurationMinutes int                 `json:"duration_minutes"`
}

type VenueResponse struct {
	Name     string             `json:"name"`
	Entrance CoordinateResponse `json:"entrance"`
}

type ListAttractionsResponse struct {
	Venue       VenueResponse        `json:"venue"`
	Attractions []AttractionResponse `json:"attractions"`
}
