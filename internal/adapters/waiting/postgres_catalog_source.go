package waiting

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"park-itinerary-service/internal/domain"
	"park-itinerary-service/internal/platform/obs"
)

// Latest observation per attraction per 10-minute bucket for [$1, $2).
const sampledWaitsQuery = `
SELECT attr_id::text, waitingperiod, at_t
FROM (
	SELECT
		attr_id,
		waitingperiod,
		at_t,
		ROW_NUMBER() OVER (
			PARTITION BY attr_id,
			EXTRACT(EPOCH FROM DATE_TRUNC('hour', at_t))::bigint / 3600 +
			FLOOR(EXTRACT(MINUTE FROM at_t) / 10)
			ORDER BY at_t DESC
		) AS rn
	FROM trk_waitingtime
	WHERE waitingperiod IS NOT NULL
	  AND at_t >= $1
	  AND at_t < $2
) w
WHERE w.rn = 1
ORDER BY attr_id, at_t`

// One sampled row of trk_waitingtime.
type WaitRow struct {
	AttrID  string
	Minutes int
	At      time.Time
}

// PostgresCatalogSource builds the waiting catalog for one day straight from
// the tracking table.
type PostgresCatalogSource struct {
	DB   *sql.DB
	Day  time.Time
	Zone *time.Location
}

func NewPostgresCatalogSource(db *sql.DB, day time.Time, zone *time.Location) *PostgresCatalogSource {
	if zone == nil {
		zone = time.Local
	}
	return &PostgresCatalogSource{DB: db, Day: day, Zone: zone}
}

// Bounds of the calendar day containing t, in zone.
func DayWindow(t time.Time, zone *time.Location) (time.Time, time.Time) {
	t = t.In(zone)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, zone)
	return start, start.AddDate(0, 0, 1)
}

func (p *PostgresCatalogSource) LoadWaitingSeries(ctx context.Context) (_ []domain.WaitingSeries, err error) {
	defer obs.Time(ctx, "waiting.postgres.Load")(&err)

	if p.DB == nil {
		return nil, errors.New("waiting postgres source: db is nil")
	}

	from, to := DayWindow(p.Day, p.Zone)

	rows, err := p.DB.QueryContext(ctx, sampledWaitsQuery, from, to)
	if err != nil {
		return nil, fmt.Errorf("query waiting samples: %w", err)
	}
	defer rows.Close()

	var sampled []WaitRow
	for rows.Next() {
		var r WaitRow
		if err := rows.Scan(&r.AttrID, &r.Minutes, &r.At); err != nil {
			return nil, fmt.Errorf("scan waiting sample: %w", err)
		}
		sampled = append(sampled, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate waiting samples: %w", err)
	}

	return GroupRows(sampled, p.Zone), nil
}

// GroupRows folds sampled rows into one series per attraction.
// Samples are sorted oldest first and the newest one supplies the
// series-level wait and UpdatedAt. Output is ordered by attraction id.
func GroupRows(rows []WaitRow, zone *time.Location) []domain.WaitingSeries {
	if zone == nil {
		zone = time.Local
	}

	byAttr := make(map[string][]WaitRow)
	for _, r := range rows {
		if r.AttrID == "" {
			continue
		}
		byAttr[r.AttrID] = append(byAttr[r.AttrID], r)
	}

	ids := make([]string, 0, len(byAttr))
	for id := range byAttr {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]domain.WaitingSeries, 0, len(ids))
	for _, id := range ids {
		group := byAttr[id]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].At.Before(group[j].At)
		})

		series := domain.WaitingSeries{
			OfficialID: id,
			Samples:    make([]domain.WaitingSample, 0, len(group)),
		}
		for _, r := range group {
			series.Samples = append(series.Samples, domain.WaitingSample{
				Timestamp:   r.At.In(zone).Format("2006-01-02T15:04:05"),
				WaitMinutes: r.Minutes,
			})
		}

		latest := series.Samples[len(series.Samples)-1]
		series.WaitMinutes = latest.WaitMinutes
		series.UpdatedAt = latest.Timestamp

		out = append(out, series)
	}

	return out
}
