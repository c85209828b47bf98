package ports

import (
	"context"
	"time"
)

// Optional cache for serialized plan responses.
// Plans are pure functions of their request and the loaded catalogs,
// so keys must include a catalog version.
type PlanCache interface {
	// Return the cached payload and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}
