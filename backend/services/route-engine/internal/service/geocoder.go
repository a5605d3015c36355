package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"everse/backend/libs/geo"
	"everse/backend/services/route-engine/internal/cache"
	"everse/backend/services/route-engine/internal/clients"
	"everse/backend/services/route-engine/internal/models"
)

// UnknownLocation is the reverse geocoding fallback label.
const UnknownLocation = "Unknown Location"

// GeocodingProvider resolves addresses and coordinates.
type GeocodingProvider interface {
	Search(ctx context.Context, query string) (*models.Place, error)
	Reverse(ctx context.Context, lat, lng float64) (*models.Place, error)
}

// Geocoder fronts the provider with validation and caching.
type Geocoder struct {
	provider GeocodingProvider
	cache    Cache
	logger   *zap.Logger
}

// NewGeocoder builds geocoder. cache may be nil.
func NewGeocoder(provider GeocodingProvider, cache Cache, logger *zap.Logger) *Geocoder {
	return &Geocoder{provider: provider, cache: cache, logger: logger}
}

// Search returns the first match for query.
func (g *Geocoder) Search(ctx context.Context, query string) (*models.Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalid("q is required")
	}

	key := "search:" + cache.TextKey(strings.ToLower(query))
	if place, ok := g.cached(ctx, key); ok {
		return place, nil
	}

	place, err := g.provider.Search(ctx, query)
	if errors.Is(err, clients.ErrPlaceNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	g.store(ctx, key, place)
	return place, nil
}

// Reverse labels a coordinate. Provider failures and empty names fall back to UnknownLocation.
func (g *Geocoder) Reverse(ctx context.Context, lat, lng float64) (*models.Place, error) {
	if !geo.ValidLatLng(lat, lng) {
		return nil, invalid("lat/lng out of range")
	}

	key := "reverse:" + strconv.FormatFloat(lat, 'f', 5, 64) + "," + strconv.FormatFloat(lng, 'f', 5, 64)
	if place, ok := g.cached(ctx, key); ok {
		return place, nil
	}

	place, err := g.provider.Reverse(ctx, lat, lng)
	if err != nil {
		g.logger.Warn("reverse geocoding failed", zap.Float64("lat", lat), zap.Float64("lng", lng), zap.Error(err))
		return &models.Place{Lat: lat, Lng: lng, Address: UnknownLocation}, nil
	}
	if strings.TrimSpace(place.Address) == "" {
		place.Address = UnknownLocation
		return place, nil
	}

	g.store(ctx, key, place)
	return place, nil
}

func (g *Geocoder) cached(ctx context.Context, key string) (*models.Place, bool) {
	if g.cache == nil {
		return nil, false
	}
	var place models.Place
	err := g.cache.Get(ctx, key, &place)
	if err == nil {
		return &place, true
	}
	if !errors.Is(err, redis.Nil) {
		g.logger.Warn("geocode cache read failed", zap.Error(err))
	}
	return nil, false
}

func (g *Geocoder) store(ctx context.Context, key string, place *models.Place) {
	if g.cache == nil {
		return
	}
	if err := g.cache.Set(ctx, key, place); err != nil {
		g.logger.Warn("geocode cache write failed", zap.Error(err))
	}
}
