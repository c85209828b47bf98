package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"park-itinerary-service/internal/domain"
	"park-itinerary-service/internal/geo"

	"github.com/paulmach/orb"
)

// Keep attractions whose entrance lies inside bound, ordered by ID.
// The second return lists the IDs that were left out.
func FilterToVenue(attractions []domain.Attraction, bound orb.Bound) ([]domain.Attraction, []int) {
	kept := make([]domain.Attraction, 0, len(attractions))
	var outside []int
	for _, a := range attractions {
		if geo.InBounds(bound, a.Entrance) {
			kept = append(kept, a)
			continue
		}
		outside = append(outside, a.ID)
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].ID < kept[j].ID })
	sort.Ints(outside)
	return kept, outside
}

// Short content hash of the loaded catalogs.
// Cached plans are only valid for the catalogs they were computed from.
func CatalogVersion(attractions []domain.Attraction, series []domain.WaitingSeries) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	_ = enc.Encode(attractions)
	_ = enc.Encode(series)
	return hex.EncodeToString(h.Sum(nil))[:12]
}
