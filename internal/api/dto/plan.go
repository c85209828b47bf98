package dto

type SelectionRequest struct {
	AttractionID int    `json:"attraction_id"`
	Priority     string `json:"priority"`
	Order        *int   `json:"order,omitempty"`
}

type PlanRequest struct {
	Selections    []SelectionRequest `json:"selections"`
	StartTime     string             `json:"start_time"`
	EndMode       string             `json:"end_mode"`
	EndTime       string             `json:"end_time"`
	Mode          string             `json:"mode"`
	OverrunChoice string             `json:"overrun_choice"`
}

type PlanItemResponse struct {
	Index                 int     `json:"index"`
	Type                  string  `json:"type"`
	AttractionID          int     `json:"attraction_id"`
	OfficialID            string  `json:"official_id"`
	Name                  string  `json:"name"`
	AreaName              string  `json:"area_name"`
	Priority              string  `json:"priority"`
	TravelMinutes         int     `json:"travel_minutes"`
	SegmentDistanceMeters float64 `json:"segment_distance_meters"`
	ArrivalMinutes        int     `json:"arrival_minutes"`
	ArrivalTime           string  `json:"arrival_time"`
	WaitingMinutes        int     `json:"waiting_minutes"`
	DurationMinutes       int     `json:"duration_minutes"`
	DepartureMinutes      int     `json:"departure_minutes"`
	DepartureTime         string  `json:"departure_time"`
}

type PlanResultResponse struct {
	Items               []PlanItemResponse `json:"items"`
	TotalDistanceMeters float64            `json:"total_distance_meters"`
	TotalMinutes        int                `json:"total_minutes"`
	StartTime           string             `json:"start_time"`
	EndTime             string             `json:"end_time"`
	FinishTime          string             `json:"finish_time"`
	Exceeded            bool               `json:"exceeded"`
}

type PlanResponse struct {
	Mode    string             `json:"mode"`
	Plan    PlanResultResponse `json:"plan"`
	Options []string           `json:"options,omitempty"`
	// Set when overrun_choice is drop_low_priority and the plan overran.
	Reduced   *PlanResultResponse `json:"reduced,omitempty"`
	Abandoned bool                `json:"abandoned,omitempty"`
}
