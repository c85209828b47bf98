package ports

import (
	"context"
	"park-itinerary-service/internal/domain"
)

// Contract for loading per-attraction waiting-time series.
// Sources are read once at startup; the result is treated as immutable.
type WaitingSource interface {
	LoadWaitingSeries(ctx context.Context) ([]domain.WaitingSeries, error)
}
