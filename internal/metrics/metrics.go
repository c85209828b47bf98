package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Dedicated registry served on /metrics.
	Registry = prometheus.NewRegistry()

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// Plans computed, by optimization mode and whether they ran past the deadline.
	Plans = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "itinerary_plans_total", Help: "Itinerary plans computed."},
		[]string{"mode", "exceeded"},
	)
	PlanStops = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "itinerary_plan_stops", Help: "Stops per computed itinerary.", Buckets: []float64{2, 4, 6, 8, 12, 16, 24, 32}},
	)
	// Plan cache lookups by result: hit, miss or error.
	PlanCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "itinerary_plan_cache_total", Help: "Plan cache lookups by result."},
		[]string{"result"},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on Registry. Safe to call repeatedly.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(Plans)
		Registry.MustRegister(PlanStops)
		Registry.MustRegister(PlanCache)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

func ObservePlan(mode string, exceeded bool, stops int) {
	Plans.WithLabelValues(mode, strconv.FormatBool(exceeded)).Inc()
	PlanStops.Observe(float64(stops))
}
