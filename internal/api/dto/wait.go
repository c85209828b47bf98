package dto

type WaitResponse struct {
	OfficialID  string `json:"official_id"`
	At          string `json:"at"`
	WaitMinutes int    `json:"wait_minutes"`
	// Timestamp of the sample used; empty when the estimate is a fallback.
	SampleTimestamp string `json:"sample_timestamp,omitempty"`
	Matched         bool   `json:"matched"`
}
