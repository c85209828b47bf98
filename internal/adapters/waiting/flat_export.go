package waiting

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// One row of the flat waiting export (waiting_times_YYYYMMDD.json).
type FlatRecord struct {
	AttrID        string
	WaitingPeriod int
	At            time.Time
}

type flatRecordJSON struct {
	AttrID        attrID `json:"attr_id"`
	WaitingPeriod *int   `json:"waitingperiod"`
	AtT           string `json:"at_t"`
}

var flatLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// DecodeFlat reads a flat export. Rows without an id, a wait value or a
// parseable timestamp are skipped; the count of skipped rows is returned.
// Timestamps without an offset are read in zone.
func DecodeFlat(r io.Reader, zone *time.Location) ([]FlatRecord, int, error) {
	if zone == nil {
		zone = time.Local
	}

	var raw []flatRecordJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, 0, fmt.Errorf("decode flat waiting export: %w", err)
	}

	out := make([]FlatRecord, 0, len(raw))
	skipped := 0
	for _, rec := range raw {
		if rec.AttrID == "" || rec.WaitingPeriod == nil {
			skipped++
			continue
		}
		at, ok := parseFlatTime(rec.AtT, zone)
		if !ok {
			skipped++
			continue
		}
		out = append(out, FlatRecord{
			AttrID:        string(rec.AttrID),
			WaitingPeriod: *rec.WaitingPeriod,
			At:            at,
		})
	}

	return out, skipped, nil
}

func LoadFlatFile(path string, zone *time.Location) ([]FlatRecord, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open flat waiting export %q: %w", path, err)
	}
	defer f.Close()

	return DecodeFlat(f, zone)
}

func parseFlatTime(s string, zone *time.Location) (time.Time, bool) {
	for _, layout := range flatLayouts {
		if t, err := time.ParseInLocation(layout, s, zone); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
