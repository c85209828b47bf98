package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"park-itinerary-service/internal/domain"
	"park-itinerary-service/internal/platform/obs"
)

// SQLite-backed implementation of the AttractionRepository port.
// DefaultDuration fills in attractions stored without a visit length.
type SqliteAttractionRepository struct {
	DB              *sql.DB
	DefaultDuration int
}

func NewSqliteAttractionRepository(db *sql.DB, defaultDuration int) *SqliteAttractionRepository {
	return &SqliteAttractionRepository{DB: db, DefaultDuration: defaultDuration}
}

// Return all attractions stored in the database.
func (s *SqliteAttractionRepository) ListAttractions(ctx context.Context) (_ []domain.Attraction, err error) {
	defer obs.Time(ctx, "attractions.ListAttractions")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite attraction repository: DB is nil")
	}

	query := `
	SELECT
		attraction_id,
		official_id,
		name,
		entrance_lat,
		entrance_lng,
		exit_lat,
		exit_lng,
		area_name,
		duration_minutes
	FROM attractions
	ORDER BY attraction_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list attractions: query attractions table: %w", err)
	}
	defer rows.Close()

	attractions := make([]domain.Attraction, 0, 64)
	for rows.Next() {
		var (
			a                domain.Attraction
			exitLat, exitLng sql.NullFloat64
			duration         sql.NullInt64
		)
		err := rows.Scan(
			&a.ID, &a.OfficialID, &a.Name,
			&a.Entrance.Lat, &a.Entrance.Lng,
			&exitLat, &exitLng,
			&a.AreaName, &duration,
		)
		if err != nil {
			return nil, fmt.Errorf("list attractions: scan row: %w", err)
		}

		if exitLat.Valid && exitLng.Valid {
			a.Exit = &domain.Coordinates{Lat: exitLat.Float64, Lng: exitLng.Float64}
		}

		a.DurationMinutes = s.DefaultDuration
		if duration.Valid && duration.Int64 > 0 {
			a.DurationMinutes = int(duration.Int64)
		}

		attractions = append(attractions, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attractions: row iteration: %w", err)
	}

	return attractions, nil
}
