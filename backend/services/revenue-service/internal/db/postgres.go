package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	libdb "everse/backend/libs/db"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS tariffs (
		id            BIGSERIAL PRIMARY KEY,
		name          TEXT NOT NULL,
		price_per_kwh NUMERIC(12, 4) NOT NULL CHECK (price_per_kwh > 0),
		is_active     BOOLEAN NOT NULL DEFAULT false,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id             BIGSERIAL PRIMARY KEY,
		booking_id     TEXT NOT NULL,
		station_name   TEXT NOT NULL,
		connector_type TEXT NOT NULL,
		energy_kwh     NUMERIC(12, 3) NOT NULL,
		price_per_kwh  NUMERIC(12, 4) NOT NULL,
		amount         NUMERIC(14, 2) NOT NULL,
		status         TEXT NOT NULL,
		user_id        BIGINT NOT NULL DEFAULT 0,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS payments_booking_uq ON payments (booking_id)`,
	`CREATE INDEX IF NOT EXISTS payments_station_created_idx ON payments (station_name, created_at)`,
}

// NewPostgres opens a decimal-aware pgx pool and applies the revenue schema.
func NewPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := libdb.NewPostgresPool(ctx, dsn)
	if err != nil {
		return nil, err
	}
	for i, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			pool.Close()
			return nil, fmt.Errorf("db: schema statement %d: %w", i, err)
		}
	}
	return pool, nil
}
