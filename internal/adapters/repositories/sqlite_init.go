package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the SQLite attraction catalog and plan cache schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createAttractionsQuery := `
	CREATE TABLE IF NOT EXISTS attractions (
		attraction_id INTEGER PRIMARY KEY,
		official_id TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL,
		entrance_lat REAL NOT NULL,
		entrance_lng REAL NOT NULL,
		exit_lat REAL,
		exit_lng REAL,
		area_name TEXT NOT NULL DEFAULT '',
		duration_minutes INTEGER
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_attractions_official_id
	ON attractions(official_id);
	`

	createPlanCacheQuery := `
	CREATE TABLE IF NOT EXISTS plan_cache (
		cache_key TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		expires_at INTEGER NOT NULL
	);
	`

	statements := []string{
		createAttractionsQuery,
		createIndexQuery,
		createPlanCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// One record of the attractions.json export.
// Optional numeric fields are pointers so "absent" and "zero" stay distinct.
type AttractionSeed struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	OfficialID      string   `json:"official_id"`
	EntranceLat     float64  `json:"entrance_lat"`
	EntranceLng     float64  `json:"entrance_lng"`
	ExitLat         *float64 `json:"exit_lat"`
	ExitLng         *float64 `json:"exit_lng"`
	AreaName        string   `json:"area_name"`
	DurationMinutes *int     `json:"duration_minutes"`
	IsActive        *bool    `json:"is_active"`
	IsInvalid       bool     `json:"is_invalid"`
}

// Inactive or invalid records are not part of the catalog.
func (s AttractionSeed) usable() bool {
	if s.IsInvalid {
		return false
	}
	return s.IsActive == nil || *s.IsActive
}

// Populate the database with attraction data from a JSON file.
// Returns the number of attractions stored.
func SeedFromJSON(db *sql.DB, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed attractions: read %q: %w", jsonPath, err)
	}

	var data []AttractionSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return 0, fmt.Errorf("seed attractions: parse json: %w", err)
	}

	rows := make([]AttractionSeed, 0, len(data))
	for i, item := range data {
		if item.ID <= 0 {
			return 0, fmt.Errorf("seed attractions: invalid id at index %d: %d", i+1, item.ID)
		}

		item.Name = strings.TrimSpace(item.Name)
		if item.Name == "" {
			return 0, fmt.Errorf("seed attractions: item at index %d: name cannot be empty", i+1)
		}

		if !item.usable() {
			continue
		}

		// Half an exit coordinate is no exit coordinate.
		if item.ExitLat == nil || item.ExitLng == nil {
			item.ExitLat, item.ExitLng = nil, nil
		}
		if item.DurationMinutes != nil && *item.DurationMinutes <= 0 {
			item.DurationMinutes = nil
		}

		item.OfficialID = strings.TrimSpace(item.OfficialID)
		rows = append(rows, item)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("seed attractions: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT OR REPLACE INTO attractions (
		attraction_id,
		official_id,
		name,
		entrance_lat,
		entrance_lng,
		exit_lat,
		exit_lng,
		area_name,
		duration_minutes
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("seed attractions: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range rows {
		_, err := stmt.Exec(
			a.ID, a.OfficialID, a.Name,
			a.EntranceLat, a.EntranceLng,
			a.ExitLat, a.ExitLng,
			a.AreaName, a.DurationMinutes,
		)
		if err != nil {
			return 0, fmt.Errorf("seed attractions: insert attraction_id=%d: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed attractions: commit tx: %w", err)
	}

	return len(rows), nil
}
