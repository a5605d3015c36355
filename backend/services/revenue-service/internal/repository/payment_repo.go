package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"everse/backend/services/revenue-service/internal/models"
)

// ErrDuplicatePayment is returned when a booking was already paid.
var ErrDuplicatePayment = errors.New("booking already paid")

const uniqueViolation = "23505"

// MonthKeyLayout formats the keys returned by MonthlyRevenue.
const MonthKeyLayout = "2006-01"

// PaymentRepository persists payments and aggregates revenue.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository returns repository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

// Create inserts a payment.
func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	const query = `
		INSERT INTO payments (booking_id, station_name, connector_type, energy_kwh, price_per_kwh, amount, status, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		p.BookingID, p.StationName, p.ConnectorType, p.EnergyKWh, p.PricePerKWh, p.Amount, p.Status, p.UserID, p.CreatedAt.UTC(),
	).Scan(&p.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicatePayment
		}
		return fmt.Errorf("payments.Create: %w", err)
	}
	return nil
}

const summaryColumns = `
	SELECT station_name,
	       COALESCE(SUM(amount), 0)                                  AS total_revenue,
	       COUNT(DISTINCT (created_at AT TIME ZONE 'UTC')::date)     AS active_days,
	       COUNT(*)                                                  AS payments
	FROM payments
`

// StationSummaries returns one row per station with payments, highest revenue first.
func (r *PaymentRepository) StationSummaries(ctx context.Context) ([]models.StationRevenue, error) {
	rows, err := r.pool.Query(ctx, summaryColumns+` GROUP BY station_name ORDER BY total_revenue DESC, station_name`)
	if err != nil {
		return nil, fmt.Errorf("payments.StationSummaries: %w", err)
	}
	defer rows.Close()

	out := make([]models.StationRevenue, 0)
	for rows.Next() {
		var s models.StationRevenue
		if err := rows.Scan(&s.StationName, &s.TotalRevenue, &s.ActiveDays, &s.Payments); err != nil {
			return nil, fmt.Errorf("payments.StationSummaries scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// StationSummary returns the totals of one station. A station without payments has zero totals.
func (r *PaymentRepository) StationSummary(ctx context.Context, stationName string) (models.StationRevenue, error) {
	s := models.StationRevenue{StationName: stationName, TotalRevenue: decimal.Zero}
	err := r.pool.QueryRow(ctx, summaryColumns+` WHERE station_name = $1 GROUP BY station_name`, stationName).
		Scan(&s.StationName, &s.TotalRevenue, &s.ActiveDays, &s.Payments)
	if errors.Is(err, pgx.ErrNoRows) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("payments.StationSummary: %w", err)
	}
	return s, nil
}

// MonthlyRevenue sums a station's revenue per UTC month since the given time, keyed by MonthKeyLayout.
func (r *PaymentRepository) MonthlyRevenue(ctx context.Context, stationName string, since time.Time) (map[string]decimal.Decimal, error) {
	const query = `
		SELECT to_char(date_trunc('month', created_at AT TIME ZONE 'UTC'), 'YYYY-MM') AS month,
		       SUM(amount)
		FROM payments
		WHERE station_name = $1 AND created_at >= $2
		GROUP BY 1
	`
	rows, err := r.pool.Query(ctx, query, stationName, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("payments.MonthlyRevenue: %w", err)
	}
	defer rows.Close()

	out := make(map[string]decimal.Decimal)
	for rows.Next() {
		var (
			month string
			total decimal.Decimal
		)
		if err := rows.Scan(&month, &total); err != nil {
			return nil, fmt.Errorf("payments.MonthlyRevenue scan: %w", err)
		}
		out[month] = total
	}
	return out, rows.Err()
}

// ConnectorCounts counts a station's payments per connector type.
func (r *PaymentRepository) ConnectorCounts(ctx context.Context, stationName string) (map[string]int, error) {
	const query = `SELECT connector_type, COUNT(*) FROM payments WHERE station_name = $1 GROUP BY connector_type`
	rows, err := r.pool.Query(ctx, query, stationName)
	if err != nil {
		return nil, fmt.Errorf("payments.ConnectorCounts: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			connector string
			n         int
		)
		if err := rows.Scan(&connector, &n); err != nil {
			return nil, fmt.Errorf("payments.ConnectorCounts scan: %w", err)
		}
		out[connector] = n
	}
	return out, rows.Err()
}
