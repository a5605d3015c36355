package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"everse/backend/libs/geo"
	"everse/backend/services/stations-service/internal/models"
)

// StationRepository is the storage contract for stations.
type StationRepository interface {
	Create(ctx context.Context, st *models.Station) error
	List(ctx context.Context) ([]models.Station, error)
	GetByID(ctx context.Context, id int64) (*models.Station, error)
	GetByName(ctx context.Context, name string) (*models.Station, error)
	Delete(ctx context.Context, id int64) error
	MarkServiced(ctx context.Context, id int64, at time.Time) error
}

// CreateStationInput is the payload for a new station.
type CreateStationInput struct {
	Name       string
	Location   models.Location
	Types      []string
	Connectors []string
	Ports      int
	PowerKW    float64
	OwnerID    int64
}

// StationsService implements station CRUD and proximity search.
type StationsService struct {
	repo   StationRepository
	logger *zap.Logger
}

// NewStationsService builds service.
func NewStationsService(repo StationRepository, logger *zap.Logger) *StationsService {
	return &StationsService{repo: repo, logger: logger}
}

// Create validates input and stores a station.
func (s *StationsService) Create(ctx context.Context, in CreateStationInput) (*models.Station, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if !geo.ValidLatLng(in.Location.Lat, in.Location.Lng) {
		return nil, invalid("location is out of range")
	}
	if in.Ports <= 0 {
		return nil, invalid("ports must be positive")
	}
	if in.PowerKW < 0 {
		return nil, invalid("power must not be negative")
	}

	types, err := normalizeTypes(in.Types)
	if err != nil {
		return nil, err
	}

	st := &models.Station{
		Name: name,
		Slug: slug.Make(name),
		Location: models.Location{
			Lat:     in.Location.Lat,
			Lng:     in.Location.Lng,
			Address: strings.TrimSpace(in.Location.Address),
		},
		Types:      types,
		Connectors: compact(in.Connectors),
		Ports:      in.Ports,
		PowerKW:    in.PowerKW,
		OwnerID:    in.OwnerID,
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}

	s.logger.Info("station created",
		zap.Int64("station_id", st.ID),
		zap.String("name", st.Name),
		zap.Int64("owner_id", st.OwnerID),
	)
	return st, nil
}

// List returns all stations.
func (s *StationsService) List(ctx context.Context) ([]models.Station, error) {
	return s.repo.List(ctx)
}

// Get returns a station by id.
func (s *StationsService) Get(ctx context.Context, id int64) (*models.Station, error) {
	return s.repo.GetByID(ctx, id)
}

// Delete removes a station by id.
func (s *StationsService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("station deleted", zap.Int64("station_id", id))
	return nil
}

// Nearby returns stations within radiusKm of from, closest first. limit <= 0 means no cap.
func (s *StationsService) Nearby(ctx context.Context, from geo.Point, radiusKm float64, limit int) ([]models.NearbyStation, error) {
	if !from.Valid() {
		return nil, invalid("location is out of range")
	}
	if radiusKm <= 0 {
		return nil, invalid("radius must be positive")
	}

	stations, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.NearbyStation, 0, len(stations))
	for _, st := range stations {
		d := geo.DistanceKm(from, st.Location.Point())
		if d <= radiusKm {
			out = append(out, models.NearbyStation{Station: st, DistanceKm: d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func normalizeTypes(in []string) ([]string, error) {
	types := compact(in)
	for i, t := range types {
		types[i] = strings.ToLower(t)
		if !models.ValidType(types[i]) {
			return nil, invalid("type must be charging or swapping")
		}
	}
	if len(types) == 0 {
		return nil, invalid("at least one type is required")
	}
	return dedupe(types), nil
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
