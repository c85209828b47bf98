package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"park-itinerary-service/internal/platform/obs"
)

// SQLite backed cache for serialized plan responses.
// Expired rows are ignored on read and overwritten on the next Put.
type SqlitePlanCache struct {
	DB  *sql.DB
	now func() time.Time
}

func NewSqlitePlanCache(db *sql.DB) *SqlitePlanCache {
	return &SqlitePlanCache{DB: db, now: time.Now}
}

func (s *SqlitePlanCache) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "plan.cache.sqlite.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("plan cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false, errors.New("get plan cache: key must not be empty")
	}

	var payload []byte
	err = s.DB.QueryRowContext(ctx, `
	SELECT payload
	FROM plan_cache
	WHERE cache_key = ? AND expires_at > ?;
	`, key, s.now().UnixMilli()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache key=%q: %w", key, err)
	}

	return payload, true, nil
}

func (s *SqlitePlanCache) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "plan.cache.sqlite.Put")(&err)

	if s.DB == nil {
		return errors.New("plan cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("insert plan cache: empty key")
	}
	if ttl <= 0 {
		return nil
	}

	expires := s.now().Add(ttl).UnixMilli()
	if _, err := s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO plan_cache (
		cache_key,
		payload,
		expires_at
	)
	VALUES (?, ?, ?);
	`, key, payload, expires); err != nil {
		return fmt.Errorf("insert plan cache key=%q: %w", key, err)
	}

	return nil
}

// Drop expired rows. Returns the number removed.
func (s *SqlitePlanCache) Purge(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("plan cache: db is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM plan_cache WHERE expires_at <= ?;`, s.now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("purge plan cache: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge plan cache: rows affected: %w", err)
	}
	return n, nil
}
