package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"park-itinerary-service/internal/adapters/cache"
	"park-itinerary-service/internal/adapters/repositories"
	"park-itinerary-service/internal/adapters/waiting"
	"park-itinerary-service/internal/api"
	"park-itinerary-service/internal/config"
	"park-itinerary-service/internal/domain"
	"park-itinerary-service/internal/platform/db"
	"park-itinerary-service/internal/ports"
	"park-itinerary-service/internal/services"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It loads the attraction and waiting catalogs once, wires them into the
// planner and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("ATTRACTIONS_SEED_PATH", "data/seeds/attractions.json")
	venuePath := config.Get("VENUE_CONFIG_PATH", "config/venue.yaml")
	port := config.Get("PORT", "8080")
	cacheTTL := config.GetDuration("PLAN_CACHE_TTL", 10*time.Minute)

	venue, err := config.LoadVenue(venuePath)
	if err != nil {
		log.Fatal(err)
	}

	sqliteDB, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sqliteDB.Close()

	// Initialize schema and seed the catalog on startup.
	if err := initAndSeed(sqliteDB, seedPath); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var repo ports.AttractionRepository = repositories.NewSqliteAttractionRepository(sqliteDB, venue.Defaults.DurationMinutes)
	all, err := repo.ListAttractions(ctx)
	if err != nil {
		log.Fatal(err)
	}
	attractions, outside := services.FilterToVenue(all, venue.Bound())
	if len(outside) > 0 {
		log.Printf("catalog: skipped attractions outside venue bounds ids=%v", outside)
	}

	source, closeSource, err := waitingSource()
	if err != nil {
		log.Fatal(err)
	}
	defer closeSource()

	series, err := source.LoadWaitingSeries(ctx)
	if err != nil {
		// Waits degrade to per-venue fallbacks, so planning still works.
		log.Printf("waiting catalog unavailable, using fallbacks: %v", err)
		series = nil
	}

	version := services.CatalogVersion(attractions, series)
	log.Printf("catalog loaded venue=%q attractions=%d waiting_series=%d version=%s",
		venue.Name, len(attractions), len(series), version)

	planner := services.NewPlanner(venue.PlannerConfig(), domain.NewWaitingCatalog(series))

	planCache, closeCache := planCacheFor(ctx, sqliteDB, cacheTTL)
	defer closeCache()

	router := api.NewRouter(api.Deps{
		VenueName:      venue.Name,
		Entrance:       venue.EntranceCoordinates(),
		Attractions:    attractions,
		Planner:        planner,
		Cache:          planCache,
		CacheTTL:       cacheTTL,
		CatalogVersion: version,
		PlanRateLimit:  float64(config.GetInt("PLAN_RATE_LIMIT", 0)),
		PlanBurst:      config.GetInt("PLAN_RATE_BURST", 10),
	})

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	n, err := repositories.SeedFromJSON(db, seedPath)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	log.Printf("catalog seeded rows=%d path=%s", n, seedPath)

	return nil
}

// Pick the waiting catalog source: Postgres, then a hosted export, then a
// local file. The returned func releases the source.
func waitingSource() (ports.WaitingSource, func(), error) {
	if databaseURL := config.Get("WAITING_DATABASE_URL", ""); databaseURL != "" {
		day := time.Now()
		if d := config.Get("WAITING_DATE", ""); d != "" {
			parsed, err := time.ParseInLocation("2006-01-02", d, time.Local)
			if err != nil {
				return nil, nil, fmt.Errorf("WAITING_DATE %q: %w", d, err)
			}
			day = parsed
		}

		zone := time.Local
		if name := config.Get("WAITING_TZ", ""); name != "" {
			loc, err := time.LoadLocation(name)
			if err != nil {
				return nil, nil, fmt.Errorf("WAITING_TZ %q: %w", name, err)
			}
			zone = loc
		}

		pg, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("waiting source=postgres day=%s", day.Format("2006-01-02"))
		return waiting.NewPostgresCatalogSource(pg, day, zone), func() { pg.Close() }, nil
	}

	if url := config.Get("WAITING_TIMES_URL", ""); url != "" {
		src, err := waiting.NewHTTPCatalogSource(url)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("waiting source=http url=%s", url)
		return src, func() {}, nil
	}

	path := config.Get("WAITING_TIMES_PATH", "data/waiting_times.json")
	log.Printf("waiting source=file path=%s", path)
	return waiting.NewJSONCatalogSource(path), func() {}, nil
}

// Redis when REDIS_ADDR is set, else the SQLite plan_cache table.
// A non-positive TTL disables caching.
func planCacheFor(ctx context.Context, sqliteDB *sql.DB, ttl time.Duration) (ports.PlanCache, func()) {
	if ttl <= 0 {
		log.Println("plan cache disabled")
		return nil, func() {}
	}

	if addr := config.Get("REDIS_ADDR", ""); addr != "" {
		rc, err := cache.DialRedisPlanCache(ctx, addr)
		if err == nil {
			log.Printf("plan cache=redis addr=%s ttl=%s", addr, ttl)
			return rc, func() { _ = rc.Close() }
		}
		log.Printf("plan cache: redis unavailable, falling back to sqlite: %v", err)
	}

	sc := cache.NewSqlitePlanCache(sqliteDB)
	if n, err := sc.Purge(ctx); err != nil {
		log.Printf("plan cache purge failed: %v", err)
	} else if n > 0 {
		log.Printf("plan cache purged rows=%d", n)
	}
	log.Printf("plan cache=sqlite ttl=%s", ttl)
	return sc, func() {}
}
