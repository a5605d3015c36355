package db

import (
	"context"
	"database/sql"

	libdb "everse/backend/libs/db"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS emergency_requests (
		id             UUID PRIMARY KEY,
		latitude       DOUBLE PRECISION NOT NULL,
		longitude      DOUBLE PRECISION NOT NULL,
		location       TEXT NOT NULL,
		car_model      TEXT NOT NULL,
		charger_type   TEXT NOT NULL,
		requester_name TEXT NOT NULL,
		phone          TEXT NOT NULL,
		battery_level  INTEGER NOT NULL CHECK (battery_level BETWEEN 0 AND 100),
		priority       TEXT NOT NULL,
		status         TEXT NOT NULL,
		requester_id   BIGINT NOT NULL DEFAULT 0,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS emergency_requests_status_idx ON emergency_requests (status, created_at DESC)`,
}

// NewPostgres connects using the shared helper and applies the assist schema.
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
