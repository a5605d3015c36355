package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"everse/backend/services/assist-service/internal/models"
)

var (
	// ErrRequestNotFound is returned when no request has the id.
	ErrRequestNotFound = errors.New("emergency request not found")
	// ErrStatusChanged is returned when the stored status no longer matches the expected one.
	ErrStatusChanged = errors.New("emergency request status changed concurrently")
)

const selectColumns = `
	SELECT id, latitude, longitude, location, car_model, charger_type, requester_name, phone,
	       battery_level, priority, status, requester_id, created_at, updated_at
	FROM emergency_requests
`

// EmergencyRepository persists emergency requests.
type EmergencyRepository struct {
	db *sql.DB
}

// NewEmergencyRepository returns repository.
func NewEmergencyRepository(db *sql.DB) *EmergencyRepository {
	return &EmergencyRepository{db: db}
}

// Create inserts a request.
func (r *EmergencyRepository) Create(ctx context.Context, req *models.EmergencyRequest) error {
	const query = `
		INSERT INTO emergency_requests (id, latitude, longitude, location, car_model, charger_type,
			requester_name, phone, battery_level, priority, status, requester_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.ExecContext(ctx, query,
		req.ID, req.Latitude, req.Longitude, req.Location, req.CarModel, req.ChargerType,
		req.RequesterName, req.Phone, req.BatteryLevel, req.Priority, req.Status, req.RequesterID,
		req.Timestamp.UTC(), req.UpdatedAt.UTC(),
	)
	return err
}

// Get returns one request.
func (r *EmergencyRepository) Get(ctx context.Context, id string) (*models.EmergencyRequest, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id)
	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	return req, err
}

// List returns requests newest first. Query matches requester name, car model or location.
func (r *EmergencyRepository) List(ctx context.Context, filter models.Filter) ([]models.EmergencyRequest, error) {
	const where = `
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR requester_name ILIKE $2 OR car_model ILIKE $2 OR location ILIKE $2)
		ORDER BY created_at DESC
	`
	pattern := ""
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern = "%" + escapeLike(q) + "%"
	}

	rows, err := r.db.QueryContext(ctx, selectColumns+where, filter.Status, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.EmergencyRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *req)
	}
	return out, rows.Err()
}

// UpdateStatus moves a request from one status to another. The update only applies while
// the stored status still equals from.
func (r *EmergencyRepository) UpdateStatus(ctx context.Context, id, from, to string, at time.Time) (*models.EmergencyRequest, error) {
	const query = `
		UPDATE emergency_requests SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2
		RETURNING id, latitude, longitude, location, car_model, charger_type, requester_name, phone,
		          battery_level, priority, status, requester_id, created_at, updated_at
	`
	row := r.db.QueryRowContext(ctx, query, id, from, to, at.UTC())
	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStatusChanged
	}
	return req, err
}

// Stats counts requests per status.
func (r *EmergencyRepository) Stats(ctx context.Context) (models.Stats, error) {
	var stats models.Stats
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM emergency_requests GROUP BY status`)
	if err != nil {
		return stats, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return stats, err
		}
		stats.Add(status, n)
	}
	return stats, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(s scanner) (*models.EmergencyRequest, error) {
	var req models.EmergencyRequest
	err := s.Scan(
		&req.ID, &req.Latitude, &req.Longitude, &req.Location, &req.CarModel, &req.ChargerType,
		&req.RequesterName, &req.Phone, &req.BatteryLevel, &req.Priority, &req.Status, &req.RequesterID,
		&req.Timestamp, &req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
