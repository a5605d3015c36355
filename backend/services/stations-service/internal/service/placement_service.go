package service

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"everse/backend/services/stations-service/internal/placement"
)

// PlacementService feeds live stations and booking counts into the placement heuristic.
type PlacementService struct {
	stations StationRepository
	bookings BookingRepository
	params   placement.Params
	logger   *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewPlacementService builds service. seed 0 seeds from the clock.
func NewPlacementService(stations StationRepository, bookings BookingRepository, params placement.Params, seed uint64, logger *zap.Logger) *PlacementService {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &PlacementService{
		stations: stations,
		bookings: bookings,
		params:   params,
		logger:   logger,
		rng:      rand.New(rand.NewPCG(seed, seed>>1|1)),
	}
}

// Suggest computes fresh suggestions. k and limit override the configured values when positive.
func (s *PlacementService) Suggest(ctx context.Context, k, limit int) (placement.Result, error) {
	if k > 50 || limit > 50 {
		return placement.Result{}, invalid("k and limit must be at most 50")
	}

	stations, err := s.stations.List(ctx)
	if err != nil {
		return placement.Result{}, err
	}
	counts, err := s.bookings.CountByStation(ctx)
	if err != nil {
		return placement.Result{}, err
	}

	sites := make([]placement.Site, 0, len(stations))
	for _, st := range stations {
		sites = append(sites, placement.Site{
			Name:   st.Name,
			Point:  st.Location.Point(),
			Demand: float64(counts[st.Name]),
		})
	}

	params := s.params
	if k > 0 {
		params.K = k
	}
	if limit > 0 {
		params.Limit = limit
	}

	// rand.Rand is not safe for concurrent use
	s.mu.Lock()
	res := placement.Suggest(sites, params, s.rng)
	s.mu.Unlock()

	s.logger.Debug("placement computed",
		zap.Int("sites", len(sites)),
		zap.Int("suggestions", len(res.Suggestions)),
	)
	return res, nil
}
