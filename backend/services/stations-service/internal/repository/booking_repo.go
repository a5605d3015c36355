package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"everse/backend/services/stations-service/internal/models"
)

// ErrSlotTaken is returned when (station, date, slot) is already reserved.
var ErrSlotTaken = errors.New("slot already booked")

const uniqueViolation = "23505"

// BookingRepository persists bookings.
type BookingRepository struct {
	db *sql.DB
}

// NewBookingRepository returns repository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts a booking. The unique index on (station_name, booking_date, slot) turns
// concurrent double bookings into ErrSlotTaken.
func (r *BookingRepository) Create(ctx context.Context, b *models.Booking) error {
	const query = `
		INSERT INTO bookings (station_name, slot, booking_date, email, user_id, booked_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, b.StationName, b.Slot, b.Date, b.Email, b.UserID, b.Timestamp.UTC()).
		Scan(&b.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrSlotTaken
		}
		return err
	}
	return nil
}

// ListByStationDate returns the bookings of a station on one day.
func (r *BookingRepository) ListByStationDate(ctx context.Context, stationName, date string) ([]models.Booking, error) {
	const query = `
		SELECT id, station_name, slot, booking_date, email, user_id, booked_at
		FROM bookings
		WHERE station_name = $1 AND booking_date = $2
		ORDER BY booked_at
	`
	rows, err := r.db.QueryContext(ctx, query, stationName, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]models.Booking, 0)
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.StationName, &b.Slot, &b.Date, &b.Email, &b.UserID, &b.Timestamp); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CountByStation returns total bookings per station name.
func (r *BookingRepository) CountByStation(ctx context.Context) (map[string]int, error) {
	const query = `SELECT station_name, COUNT(*) FROM bookings GROUP BY station_name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			name  string
			count int
		)
		if err := rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		counts[name] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}
