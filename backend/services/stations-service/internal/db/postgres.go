package db

import (
	"context"
	"database/sql"

	libdb "everse/backend/libs/db"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS stations (
		id               BIGSERIAL PRIMARY KEY,
		name             TEXT NOT NULL,
		slug             TEXT NOT NULL,
		lat              DOUBLE PRECISION NOT NULL,
		lng              DOUBLE PRECISION NOT NULL,
		address          TEXT NOT NULL DEFAULT '',
		types            JSONB NOT NULL DEFAULT '[]',
		connectors       JSONB NOT NULL DEFAULT '[]',
		ports            INTEGER NOT NULL,
		power_kw         DOUBLE PRECISION NOT NULL DEFAULT 0,
		owner_id         BIGINT NOT NULL DEFAULT 0,
		last_serviced_at TIMESTAMPTZ,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS stations_slug_idx ON stations (slug)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id           BIGSERIAL PRIMARY KEY,
		station_name TEXT NOT NULL,
		slot         TEXT NOT NULL,
		booking_date TEXT NOT NULL,
		email        TEXT NOT NULL,
		user_id      BIGINT NOT NULL DEFAULT 0,
		booked_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS bookings_station_date_slot_uq
		ON bookings (station_name, booking_date, slot)`,
}

// NewPostgres connects using the shared helper and applies the stations schema.
func NewPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	sqlDB, err := libdb.NewPostgresDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := libdb.ApplySchema(ctx, sqlDB, schema...); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}
