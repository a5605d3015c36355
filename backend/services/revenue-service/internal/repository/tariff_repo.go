package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"everse/backend/services/revenue-service/internal/models"
)

// ErrNoActiveTariff is returned when no tariff row is active.
var ErrNoActiveTariff = errors.New("no active tariff")

// TariffRepository handles tariff lookups.
type TariffRepository struct {
	pool *pgxpool.Pool
}

// NewTariffRepository returns repository.
func NewTariffRepository(pool *pgxpool.Pool) *TariffRepository {
	return &TariffRepository{pool: pool}
}

// GetActive returns currently active tariff (latest updated active row).
func (r *TariffRepository) GetActive(ctx context.Context) (*models.Tariff, error) {
	const query = `
		SELECT id, name, price_per_kwh, is_active, created_at, updated_at
		FROM tariffs
		WHERE is_active = true
		ORDER BY updated_at DESC
		LIMIT 1
	`
	var t models.Tariff
	err := r.pool.QueryRow(ctx, query).Scan(&t.ID, &t.Name, &t.PricePerKWh, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoActiveTariff
	}
	if err != nil {
		return nil, fmt.Errorf("tariffs.GetActive: %w", err)
	}
	return &t, nil
}

// Activate stores t as the only active tariff.
func (r *TariffRepository) Activate(ctx context.Context, t *models.Tariff) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("tariffs.Activate begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(ctx, `UPDATE tariffs SET is_active = false, updated_at = now() WHERE is_active`); err != nil {
		return fmt.Errorf("tariffs.Activate deactivate: %w", err)
	}

	const insert = `
		INSERT INTO tariffs (name, price_per_kwh, is_active)
		VALUES ($1, $2, true)
		RETURNING id, is_active, created_at, updated_at
	`
	if err := tx.QueryRow(ctx, insert, t.Name, t.PricePerKWh).Scan(&t.ID, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return fmt.Errorf("tariffs.Activate insert: %w", err)
	}
	return tx.Commit(ctx)
}
