package main

import (
	"context"
	"flag"
	"log"
	"time"

	"park-itinerary-service/internal/adapters/waiting"
	"park-itinerary-service/internal/config"
	"park-itinerary-service/internal/platform/db"

	"github.com/joho/godotenv"
)

// dbtool prepares the Postgres waiting-time store: it creates trk_waitingtime
// and loads a flat waiting export into it.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	seedPath := flag.String("seed", config.Get("WAITING_SEED_PATH", "data/seeds/waiting_flat.json"), "flat waiting export to load")
	schemaOnly := flag.Bool("schema-only", false, "create the schema without loading data")
	flag.Parse()

	databaseURL := config.Get("WAITING_DATABASE_URL", "")
	if databaseURL == "" {
		log.Fatal("WAITING_DATABASE_URL is required")
	}

	zone, err := loadZone(config.Get("WAITING_TZ", ""))
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	log.Println("Initializing waiting schema...")
	if err := waiting.InitPostgresSchema(ctx, conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if *schemaOnly {
		return
	}

	log.Printf("Seeding waiting times path=%s", *seedPath)
	records, skipped, err := waiting.LoadFlatFile(*seedPath, zone)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	n, err := waiting.SeedPostgres(ctx, conn, records)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Printf("Seeding complete. rows=%d skipped=%d", n, skipped)
}

func loadZone(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
