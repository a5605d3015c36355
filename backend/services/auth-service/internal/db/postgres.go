package db

import (
	"context"
	"database/sql"

	libdb "everse/backend/libs/db"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id                BIGSERIAL PRIMARY KEY,
		email             TEXT NOT NULL UNIQUE,
		password_hash     TEXT NOT NULL,
		role              TEXT NOT NULL DEFAULT 'customer',
		name              TEXT NOT NULL DEFAULT '',
		phone             TEXT NOT NULL DEFAULT '',
		car_model         TEXT NOT NULL DEFAULT '',
		charger_model     TEXT NOT NULL DEFAULT '',
		company_name      TEXT NOT NULL DEFAULT '',
		business_email    TEXT NOT NULL DEFAULT '',
		license_number    TEXT NOT NULL DEFAULT '',
		manufacturer_type TEXT NOT NULL DEFAULT '',
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// NewPostgres connects using the shared helper and makes sure the users table exists.
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
