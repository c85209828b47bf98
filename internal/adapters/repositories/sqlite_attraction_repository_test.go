package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"park-itinerary-service/internal/platform/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedJSON = `[
  {"id": 3, "name": "Haunted Mansion", "official_id": "171", "entrance_lat": 35.6335, "entrance_lng": 139.8801,
   "exit_lat": 35.6337, "exit_lng": 139.8799, "area_name": "Fantasyland", "duration_minutes": 15, "is_active": true},
  {"id": 1, "name": " Big Thunder Mountain ", "official_id": " 160 ", "entrance_lat": 35.6312, "entrance_lng": 139.8772,
   "area_name": "Westernland", "is_active": true, "is_invalid": false},
  {"id": 2, "name": "Closed Ride", "official_id": "999", "entrance_lat": 35.63, "entrance_lng": 139.88,
   "area_name": "Tomorrowland", "is_active": false},
  {"id": 4, "name": "Broken Entry", "official_id": "998", "entrance_lat": 35.63, "entrance_lng": 139.88,
   "is_active": true, "is_invalid": true},
  {"id": 5, "name": "Half Exit", "entrance_lat": 35.63, "entrance_lng": 139.88, "exit_lat": 35.631,
   "duration_minutes": 0}
]`

func newSeededDB(t *testing.T) *SqliteAttractionRepository {
	t.Helper()

	dir := t.TempDir()
	seedPath := filepath.Join(dir, "attractions.json")
	require.NoError(t, os.WriteFile(seedPath, []byte(seedJSON), 0o644))

	conn, err := db.OpenSQLite(filepath.Join(dir, "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, InitSchema(conn))
	n, err := SeedFromJSON(conn, seedPath)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	return NewSqliteAttractionRepository(conn, 15)
}

func TestSeedAndListAttractions(t *testing.T) {
	repo := newSeededDB(t)

	got, err := repo.ListAttractions(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	thunder := got[0]
	assert.Equal(t, 1, thunder.ID)
	assert.Equal(t, "Big Thunder Mountain", thunder.Name)
	assert.Equal(t, "160", thunder.OfficialID)
	assert.Nil(t, thunder.Exit)
	assert.Equal(t, thunder.Entrance, thunder.ExitCoordinates())
	assert.Equal(t, 15, thunder.DurationMinutes, "missing duration uses the default")

	mansion := got[1]
	assert.Equal(t, 3, mansion.ID)
	require.NotNil(t, mansion.Exit)
	assert.InDelta(t, 35.6337, mansion.Exit.Lat, 1e-9)
	assert.Equal(t, 15, mansion.DurationMinutes)
	assert.Equal(t, "Fantasyland", mansion.AreaName)

	half := got[2]
	assert.Equal(t, 5, half.ID)
	assert.Nil(t, half.Exit, "one-sided exit coordinate is dropped")
	assert.Equal(t, 15, half.DurationMinutes)
}

func TestSeedIsIdempotent(t *testing.T) {
	repo := newSeededDB(t)

	dir := t.TempDir()
	seedPath := filepath.Join(dir, "attractions.json")
	require.NoError(t, os.WriteFile(seedPath, []byte(seedJSON), 0o644))

	_, err := SeedFromJSON(repo.DB, seedPath)
	require.NoError(t, err)

	got, err := repo.ListAttractions(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestSeedRejectsBadRecords(t *testing.T) {
	dir := t.TempDir()
	conn, err := db.OpenSQLite(filepath.Join(dir, "catalog.db"))
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, InitSchema(conn))

	for name, body := range map[string]string{
		"bad id":     `[{"id": 0, "name": "x", "entrance_lat": 1, "entrance_lng": 1}]`,
		"empty name": `[{"id": 1, "name": "  ", "entrance_lat": 1, "entrance_lng": 1}]`,
		"not json":   `{"id": 1`,
	} {
		path := filepath.Join(dir, "seed.json")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

		_, err := SeedFromJSON(conn, path)
		assert.Error(t, err, name)
	}

	_, err = SeedFromJSON(conn, filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestListAttractionsNilDB(t *testing.T) {
	_, err := (&SqliteAttractionRepository{}).ListAttractions(context.Background())
	assert.Error(t, err)
}
