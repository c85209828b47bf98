package services

import (
	"strings"
	"time"

	"park-itinerary-service/internal/domain"
)

// Layouts accepted for waiting-sample timestamps, tried in order.
var sampleLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"15:04:05",
	"15:04",
}

// Result of a wait lookup.
// Timestamp is the matched sample (or the series' UpdatedAt on fallback);
// Matched is false when no sample was used.
type WaitEstimate struct {
	Minutes   int
	Timestamp string
	Matched   bool
}

// WaitEstimator estimates queue waits from an injected waiting catalog.
// It holds no mutable state and is safe for concurrent use.
type WaitEstimator struct {
	catalog  domain.WaitingCatalog
	fallback int
}

// Build an estimator. fallbackMinutes is returned for attractions that have
// no waiting series at all.
func NewWaitEstimator(catalog domain.WaitingCatalog, fallbackMinutes int) *WaitEstimator {
	if fallbackMinutes < 0 {
		fallbackMinutes = 0
	}
	return &WaitEstimator{catalog: catalog, fallback: fallbackMinutes}
}

func (e *WaitEstimator) EstimateWaitMinutes(officialID string, arrivalMinutes int) int {
	return e.EstimateWait(officialID, arrivalMinutes).Minutes
}

// Estimate the wait for an attraction at the given arrival time.
// Missing or empty data is not an error; it degrades to a fallback value.
func (e *WaitEstimator) EstimateWait(officialID string, arrivalMinutes int) WaitEstimate {
	if e == nil {
		return WaitEstimate{}
	}

	series, ok := e.catalog[strings.TrimSpace(officialID)]
	if !ok {
		return WaitEstimate{Minutes: e.fallback}
	}

	return EstimateFromSeries(series, arrivalMinutes)
}

// Nearest-timestamp lookup within a single series.
//
// Every sample is scanned; the one whose time of day is closest to the
// arrival wins and ties keep the earliest sample in series order.
// Malformed timestamps are skipped. When nothing matches, the series-level
// default is returned.
func EstimateFromSeries(series domain.WaitingSeries, arrivalMinutes int) WaitEstimate {
	fallback := WaitEstimate{Minutes: nonNegative(series.WaitMinutes), Timestamp: series.UpdatedAt}

	bestIdx := -1
	bestDiff := 0
	for i, s := range series.Samples {
		tod, ok := TimeOfDayMinutes(s.Timestamp)
		if !ok {
			continue
		}

		diff := absInt(arrivalMinutes - tod)
		// Strict comparison keeps the first sample on ties.
		if bestIdx == -1 || diff < bestDiff {
			bestIdx = i
			bestDiff = diff
		}
	}

	if bestIdx == -1 {
		return fallback
	}

	best := series.Samples[bestIdx]
	return WaitEstimate{
		Minutes:   nonNegative(best.WaitMinutes),
		Timestamp: best.Timestamp,
		Matched:   true,
	}
}

// Extract hour*60+minute from a timestamp's wall-clock fields,
// discarding the date and zone.
func TimeOfDayMinutes(ts string) (int, bool) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return 0, false
	}

	for _, layout := range sampleLayouts {
		t, err := time.Parse(layout, ts)
		if err == nil {
			return t.Hour()*60 + t.Minute(), true
		}
	}

	return 0, false
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
