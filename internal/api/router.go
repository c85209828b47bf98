package api

import (
	"net/http"
	"time"

	"park-itinerary-service/internal/api/handlers"
	"park-itinerary-service/internal/domain"
	"park-itinerary-service/internal/metrics"
	"park-itinerary-service/internal/ports"
	"park-itinerary-service/internal/services"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Dependencies handed to the HTTP layer by the composition root.
type Deps struct {
	VenueName   string
	Entrance    domain.Coordinates
	Attractions []domain.Attraction
	Planner     *services.Planner

	// Optional plan cache.
	Cache          ports.PlanCache
	CacheTTL       time.Duration
	CatalogVersion string

	// Requests per second allowed on /plans; zero disables the limit.
	PlanRateLimit float64
	PlanBurst     int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	metrics.RegisterDefault()

	mux := http.NewServeMux()

	attractionHandler := &handlers.AttractionHandler{
		Attractions: d.Attractions,
		VenueName:   d.VenueName,
		Entrance:    d.Entrance,
	}
	waitHandler := &handlers.WaitHandler{Waits: d.Planner.Waits()}
	planHandler := &handlers.PlanHandler{
		Planner:        d.Planner,
		Catalog:        domain.NewAttractionCatalog(d.Attractions),
		Cache:          d.Cache,
		CacheTTL:       d.CacheTTL,
		CatalogVersion: d.CatalogVersion,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/attractions", attractionHandler.List)
	mux.HandleFunc("/waits/{official_id}", waitHandler.Estimate)
	mux.Handle("/plans", rateLimit(planLimiter(d), http.HandlerFunc(planHandler.Plan)))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return requestIDMiddleware(loggingMiddleware(mux))
}

func planLimiter(d Deps) *rate.Limiter {
	if d.PlanRateLimit <= 0 {
		return nil
	}
	burst := d.PlanBurst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(d.PlanRateLimit), burst)
}
