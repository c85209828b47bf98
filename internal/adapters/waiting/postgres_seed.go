package waiting

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Create the trk_waitingtime tracking table in Postgres.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init waiting schema: DB is nil")
	}

	statements := []string{
		`
	CREATE TABLE IF NOT EXISTS trk_waitingtime (
		id BIGSERIAL PRIMARY KEY,
		attr_id TEXT NOT NULL,
		waitingperiod INTEGER,
		at_t TIMESTAMPTZ NOT NULL,
		UNIQUE (attr_id, at_t)
	);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_trk_waitingtime_at_t
	ON trk_waitingtime(at_t);
	`,
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init waiting schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init waiting schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init waiting schema: commit tx: %w", err)
	}
	return nil
}

// Upsert flat export rows into trk_waitingtime. Returns rows written.
func SeedPostgres(ctx context.Context, db *sql.DB, records []FlatRecord) (int, error) {
	if db == nil {
		return 0, errors.New("seed waiting times: DB is nil")
	}
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed waiting times: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO trk_waitingtime (attr_id, waitingperiod, at_t)
	VALUES ($1, $2, $3)
	ON CONFLICT (attr_id, at_t) DO UPDATE
	SET waitingperiod = EXCLUDED.waitingperiod;
	`)
	if err != nil {
		return 0, fmt.Errorf("seed waiting times: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.AttrID, r.WaitingPeriod, r.At); err != nil {
			return 0, fmt.Errorf("seed waiting times attr_id=%s at=%s: %w", r.AttrID, r.At.Format("2006-01-02T15:04"), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed waiting times: commit: %w", err)
	}
	return len(records), nil
}
