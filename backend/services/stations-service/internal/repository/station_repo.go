package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"everse/backend/services/stations-service/internal/models"
)

// ErrStationNotFound is returned for unknown station ids or names.
var ErrStationNotFound = errors.New("station not found")

// StationRepository persists stations.
type StationRepository struct {
	db *sql.DB
}

// NewStationRepository returns repository.
func NewStationRepository(db *sql.DB) *StationRepository {
	return &StationRepository{db: db}
}

const stationColumns = `id, name, slug, lat, lng, address, types, connectors, ports, power_kw, owner_id, last_serviced_at, created_at`

// Create inserts station and fills generated fields.
func (r *StationRepository) Create(ctx context.Context, st *models.Station) error {
	types, err := json.Marshal(st.Types)
	if err != nil {
		return err
	}
	connectors, err := json.Marshal(st.Connectors)
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO stations (name, slug, lat, lng, address, types, connectors, ports, power_kw, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		st.Name, st.Slug, st.Location.Lat, st.Location.Lng, st.Location.Address,
		string(types), string(connectors), st.Ports, st.PowerKW, st.OwnerID,
	).Scan(&st.ID, &st.CreatedAt)
}

// List returns every station ordered by id.
func (r *StationRepository) List(ctx context.Context) ([]models.Station, error) {
	query := `SELECT ` + stationColumns + ` FROM stations ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stations := make([]models.Station, 0)
	for rows.Next() {
		st, err := scanStation(rows)
		if err != nil {
			return nil, err
		}
		stations = append(stations, *st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stations, nil
}

// GetByID fetches one station.
func (r *StationRepository) GetByID(ctx context.Context, id int64) (*models.Station, error) {
	query := `SELECT ` + stationColumns + ` FROM stations WHERE id = $1`
	st, err := scanStation(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStationNotFound
	}
	return st, err
}

// GetByName fetches the oldest station with the given display name.
func (r *StationRepository) GetByName(ctx context.Context, name string) (*models.Station, error) {
	query := `SELECT ` + stationColumns + ` FROM stations WHERE name = $1 ORDER BY id LIMIT 1`
	st, err := scanStation(r.db.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStationNotFound
	}
	return st, err
}

// Delete removes station by id.
func (r *StationRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

// MarkServiced stores the last maintenance date.
func (r *StationRepository) MarkServiced(ctx context.Context, id int64, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE stations SET last_serviced_at = $2 WHERE id = $1`, id, at.UTC())
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStation(row rowScanner) (*models.Station, error) {
	var (
		st         models.Station
		types      []byte
		connectors []byte
		serviced   sql.NullTime
	)
	if err := row.Scan(&st.ID, &st.Name, &st.Slug, &st.Location.Lat, &st.Location.Lng, &st.Location.Address,
		&types, &connectors, &st.Ports, &st.PowerKW, &st.OwnerID, &serviced, &st.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(types, &st.Types); err != nil {
		return nil, fmt.Errorf("decode station types: %w", err)
	}
	if err := json.Unmarshal(connectors, &st.Connectors); err != nil {
		return nil, fmt.Errorf("decode station connectors: %w", err)
	}
	if serviced.Valid {
		t := serviced.Time.UTC()
		st.LastServicedAt = &t
	}
	return &st, nil
}

func expectOneRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStationNotFound
	}
	return nil
}
