package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"everse/backend/services/stations-service/internal/models"
	redisstore "everse/backend/services/stations-service/internal/redis"
)

// DefaultSlots are the hourly booking windows offered at every station.
var DefaultSlots = []string{
	"10:00 AM - 11:00 AM",
	"11:00 AM - 12:00 PM",
	"12:00 PM - 1:00 PM",
	"1:00 PM - 2:00 PM",
	"2:00 PM - 3:00 PM",
	"3:00 PM - 4:00 PM",
}

// BookingRepository is the storage contract for bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	ListByStationDate(ctx context.Context, stationName, date string) ([]models.Booking, error)
	CountByStation(ctx context.Context) (map[string]int, error)
}

// SlotCache caches booked slot labels per station and day. Get returns redis.Nil on a miss.
// Version and SaveIfCurrent let a reader skip caching a list that a concurrent
// Invalidate made stale.
type SlotCache interface {
	Get(ctx context.Context, stationName, date string) ([]string, error)
	Version(ctx context.Context, stationName, date string) (int64, error)
	SaveIfCurrent(ctx context.Context, stationName, date string, version int64, slots []string) error
	Invalidate(ctx context.Context, stationName, date string) error
}

// CreateBookingInput is a booking request.
type CreateBookingInput struct {
	StationName string
	Slot        string
	Date        string
	Email       string
	UserID      int64
	Timestamp   time.Time
}

// BookingsService reserves slots and reports availability.
type BookingsService struct {
	bookings BookingRepository
	stations StationRepository
	cache    SlotCache
	slots    []string
	logger   *zap.Logger
	now      func() time.Time
}

// NewBookingsService builds service. cache may be nil; slots falls back to DefaultSlots.
func NewBookingsService(bookings BookingRepository, stations StationRepository, cache SlotCache, slots []string, logger *zap.Logger) *BookingsService {
	if len(slots) == 0 {
		slots = DefaultSlots
	}
	return &BookingsService{
		bookings: bookings,
		stations: stations,
		cache:    cache,
		slots:    slots,
		logger:   logger,
		now:      time.Now,
	}
}

// Slots returns the configured slot labels.
func (s *BookingsService) Slots() []string {
	return append([]string(nil), s.slots...)
}

// Create books one slot. Double bookings surface as repository.ErrSlotTaken.
func (s *BookingsService) Create(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	in.StationName = strings.TrimSpace(in.StationName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.StationName == "" {
		return nil, invalid("stationName is required")
	}
	if _, err := time.Parse(models.DateLayout, in.Date); err != nil {
		return nil, invalid("date must be YYYY-MM-DD")
	}
	if !s.knownSlot(in.Slot) {
		return nil, invalid("unknown slot")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, invalid("a valid email is required")
	}

	if _, err := s.stations.GetByName(ctx, in.StationName); err != nil {
		return nil, err
	}

	if in.Timestamp.IsZero() {
		in.Timestamp = s.now()
	}
	b := &models.Booking{
		StationName: in.StationName,
		Slot:        in.Slot,
		Date:        in.Date,
		Email:       in.Email,
		UserID:      in.UserID,
		Timestamp:   in.Timestamp.UTC(),
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, b.StationName, b.Date); err != nil {
			s.logger.Warn("failed to invalidate booked slots cache", zap.Error(err))
		}
	}

	s.logger.Info("slot booked",
		zap.Int64("booking_id", b.ID),
		zap.String("station", b.StationName),
		zap.String("date", b.Date),
		zap.String("slot", b.Slot),
	)
	return b, nil
}

// List returns bookings for a station on a date.
func (s *BookingsService) List(ctx context.Context, stationName, date string) ([]models.Booking, error) {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, invalid("date must be YYYY-MM-DD")
	}
	return s.bookings.ListByStationDate(ctx, stationName, date)
}

// Availability lists every configured slot with whether it is still free.
// Unknown stations surface as repository.ErrStationNotFound.
func (s *BookingsService) Availability(ctx context.Context, stationName, date string) ([]models.SlotAvailability, error) {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, invalid("date must be YYYY-MM-DD")
	}
	if _, err := s.stations.GetByName(ctx, stationName); err != nil {
		return nil, err
	}

	booked, err := s.bookedSlots(ctx, stationName, date)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]struct{}, len(booked))
	for _, slot := range booked {
		taken[slot] = struct{}{}
	}
	out := make([]models.SlotAvailability, 0, len(s.slots))
	for _, slot := range s.slots {
		_, isTaken := taken[slot]
		out = append(out, models.SlotAvailability{Slot: slot, Available: !isTaken})
	}
	return out, nil
}

func (s *BookingsService) bookedSlots(ctx context.Context, stationName, date string) ([]string, error) {
	cacheable := false
	var version int64
	if s.cache != nil {
		slots, err := s.cache.Get(ctx, stationName, date)
		if err == nil {
			return slots, nil
		}
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("booked slots cache read failed", zap.Error(err))
		}
		// the version must be read before the bookings so a later insert is detected
		if version, err = s.cache.Version(ctx, stationName, date); err == nil {
			cacheable = true
		} else {
			s.logger.Warn("booked slots cache version read failed", zap.Error(err))
		}
	}

	bookings, err := s.bookings.ListByStationDate(ctx, stationName, date)
	if err != nil {
		return nil, err
	}
	slots := make([]string, 0, len(bookings))
	for _, b := range bookings {
		slots = append(slots, b.Slot)
	}

	if cacheable {
		err := s.cache.SaveIfCurrent(ctx, stationName, date, version, slots)
		switch {
		case errors.Is(err, redisstore.ErrStale):
			s.logger.Debug("booked slots changed while loading, not cached",
				zap.String("station", stationName), zap.String("date", date))
		case err != nil:
			s.logger.Warn("failed to cache booked slots", zap.Error(err))
		}
	}
	return slots, nil
}

func (s *BookingsService) knownSlot(slot string) bool {
	for _, known := range s.slots {
		if known == slot {
			return true
		}
	}
	return false
}
