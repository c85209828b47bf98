package waiting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"park-itinerary-service/internal/domain"
	"park-itinerary-service/internal/platform/obs"
)

// Attraction key in waiting exports. Older exports write it as a number,
// newer ones as a string; both decode to the same official id.
type attrID string

func (a *attrID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = attrID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("attr_id: %w", err)
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return fmt.Errorf("attr_id: not an integer: %s", n)
	}
	*a = attrID(n.String())
	return nil
}

type waitingPoint struct {
	Timestamp      string `json:"timestamp"`
	WaitingMinutes *int   `json:"waiting_minutes"`
}

// One record of the waiting_times.json export.
type waitingRecord struct {
	AttrID         attrID         `json:"attr_id"`
	WaitingMinutes int            `json:"waiting_minutes"`
	UpdatedAt      string         `json:"updated_at"`
	TimeSeries     []waitingPoint `json:"time_series"`
}

// Decode a waiting_times.json document.
// Records without an attraction id are skipped, as are samples without a
// wait value. Sample order is preserved.
func DecodeCatalog(r io.Reader) ([]domain.WaitingSeries, error) {
	var records []waitingRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode waiting catalog: %w", err)
	}

	out := make([]domain.WaitingSeries, 0, len(records))
	for _, rec := range records {
		id := string(rec.AttrID)
		if id == "" {
			continue
		}

		samples := make([]domain.WaitingSample, 0, len(rec.TimeSeries))
		for _, p := range rec.TimeSeries {
			if p.WaitingMinutes == nil {
				continue
			}
			samples = append(samples, domain.WaitingSample{
				Timestamp:   p.Timestamp,
				WaitMinutes: *p.WaitingMinutes,
			})
		}

		out = append(out, domain.WaitingSeries{
			OfficialID:  id,
			WaitMinutes: rec.WaitingMinutes,
			UpdatedAt:   rec.UpdatedAt,
			Samples:     samples,
		})
	}

	return out, nil
}

// Read and decode a waiting_times.json file.
func LoadJSONCatalog(path string) ([]domain.WaitingSeries, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load waiting file %q: %w", path, err)
	}
	defer file.Close()

	series, err := DecodeCatalog(file)
	if err != nil {
		return nil, fmt.Errorf("load waiting file %q: %w", path, err)
	}

	return series, nil
}

// JSONCatalogSource serves a waiting_times.json file as a WaitingSource.
type JSONCatalogSource struct {
	Path string
}

func NewJSONCatalogSource(path string) *JSONCatalogSource {
	return &JSONCatalogSource{Path: path}
}

func (j *JSONCatalogSource) LoadWaitingSeries(ctx context.Context) (_ []domain.WaitingSeries, err error) {
	defer obs.Time(ctx, "waiting.file.Load")(&err)

	return LoadJSONCatalog(j.Path)
}
