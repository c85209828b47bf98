package domain

// One observed queue length at a point in time.
// Timestamp is kept as the raw catalog text; only its wall-clock
// hour and minute are used for matching.
type WaitingSample struct {
	Timestamp   string
	WaitMinutes int
}

// Waiting-time history for a single attraction.
// WaitMinutes is the series-level default used when no sample can be matched.
type WaitingSeries struct {
	OfficialID  string
	WaitMinutes int
	UpdatedAt   string
	Samples     []WaitingSample
}

// Read-only mapping from OfficialID to its waiting series.
// Any attraction may be missing.
type WaitingCatalog map[string]WaitingSeries

func NewWaitingCatalog(series []WaitingSeries) WaitingCatalog {
	c := make(WaitingCatalog, len(series))
	for _, s := range series {
		c[s.OfficialID] = s
	}
	return c
}
