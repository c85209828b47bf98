package ports

import (
	"context"
	"park-itinerary-service/internal/domain"
)

// Port: a boundary for retrieving Attraction reference data from a data source.
type AttractionRepository interface {
	// Retrieve all active attractions available for planning.
	ListAttractions(ctx context.Context) ([]domain.Attraction, error)
}
