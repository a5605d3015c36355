package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"everse/backend/services/stations-service/internal/models"
)

const (
	// DefaultServiceIntervalDays is how long a station runs between services.
	DefaultServiceIntervalDays = 365
	// attentionHealthPercent flags stations that are nearly due.
	attentionHealthPercent = 10.0
	// DefaultDemandScale is the booking count that maps to full heat intensity.
	DefaultDemandScale = 150
)

// InsightsService derives maintenance health and booking demand for manufacturers.
type InsightsService struct {
	stations     StationRepository
	bookings     BookingRepository
	intervalDays int
	demandScale  float64
	logger       *zap.Logger
	now          func() time.Time
}

// NewInsightsService builds service.
func NewInsightsService(stations StationRepository, bookings BookingRepository, intervalDays int, demandScale float64, logger *zap.Logger) *InsightsService {
	if intervalDays <= 0 {
		intervalDays = DefaultServiceIntervalDays
	}
	if demandScale <= 0 {
		demandScale = DefaultDemandScale
	}
	return &InsightsService{
		stations:     stations,
		bookings:     bookings,
		intervalDays: intervalDays,
		demandScale:  demandScale,
		logger:       logger,
		now:          time.Now,
	}
}

// Maintenance reports service health for every station.
func (s *InsightsService) Maintenance(ctx context.Context) ([]models.MaintenanceStatus, error) {
	stations, err := s.stations.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	out := make([]models.MaintenanceStatus, 0, len(stations))
	for _, st := range stations {
		out = append(out, s.maintenanceStatus(st, now))
	}
	return out, nil
}

// MarkServiced records a maintenance visit. A zero date means today.
func (s *InsightsService) MarkServiced(ctx context.Context, id int64, at time.Time) (*models.MaintenanceStatus, error) {
	if at.IsZero() {
		at = s.now()
	}
	if at.After(s.now().Add(24 * time.Hour)) {
		return nil, invalid("service date cannot be in the future")
	}
	if err := s.stations.MarkServiced(ctx, id, at); err != nil {
		return nil, err
	}
	st, err := s.stations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("station serviced", zap.Int64("station_id", id), zap.Time("at", at))
	status := s.maintenanceStatus(*st, s.now().UTC())
	return &status, nil
}

// maintenanceStatus treats a never serviced station as a full interval overdue.
func (s *InsightsService) maintenanceStatus(st models.Station, now time.Time) models.MaintenanceStatus {
	daysSince := s.intervalDays
	if st.LastServicedAt != nil {
		daysSince = int(now.Sub(*st.LastServicedAt).Hours() / 24)
		if daysSince < 0 {
			daysSince = 0
		}
	}
	daysLeft := max(s.intervalDays-daysSince, 0)
	health := math.Round(float64(daysLeft)/float64(s.intervalDays)*1000) / 10

	return models.MaintenanceStatus{
		StationID:      st.ID,
		Name:           st.Name,
		LastServicedAt: st.LastServicedAt,
		DaysSince:      daysSince,
		DaysLeft:       daysLeft,
		HealthPercent:  health,
		NeedsAttention: health < attentionHealthPercent,
	}
}

// Demand returns booking counts and heat intensity per station.
func (s *InsightsService) Demand(ctx context.Context) ([]models.DemandPoint, error) {
	stations, err := s.stations.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.bookings.CountByStation(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.DemandPoint, 0, len(stations))
	for _, st := range stations {
		n := counts[st.Name]
		out = append(out, models.DemandPoint{
			StationID: st.ID,
			Name:      st.Name,
			Location:  st.Location,
			Bookings:  n,
			Intensity: math.Min(1, float64(n)/s.demandScale),
		})
	}
	return out, nil
}
