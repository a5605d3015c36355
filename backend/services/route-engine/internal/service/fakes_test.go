package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"

	"everse/backend/libs/geo"
	"everse/backend/services/route-engine/internal/clients"
	"everse/backend/services/route-engine/internal/models"
)

type fakeDirections struct {
	mu    sync.Mutex
	calls [][]geo.Point
	err   error
}

func (f *fakeDirections) Directions(_ context.Context, points []geo.Point) (*models.Directions, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, points)
	if f.err != nil {
		return nil, f.err
	}
	// 10 km and 12 minutes per leg keeps variants distinguishable
	legs := float64(len(points) - 1)
	return &models.Directions{
		DurationSeconds: 720 * legs,
		DistanceMeters:  10004 * legs,
		Geometry:        points,
	}, nil
}

func (f *fakeDirections) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type memCache struct {
	mu     sync.Mutex
	items  map[string][]byte
	getErr error
}

func newMemCache() *memCache {
	return &memCache{items: map[string][]byte{}}
}

func (c *memCache) Get(_ context.Context, key string, dst interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return c.getErr
	}
	data, ok := c.items[key]
	if !ok {
		return redis.Nil
	}
	return json.Unmarshal(data, dst)
}

func (c *memCache) Set(_ context.Context, key string, value interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.items[key] = data
	return nil
}

type fakeGeocoding struct {
	searches int
	reverses int
	places   map[string]models.Place
	reverse  string
	err      error
}

func (f *fakeGeocoding) Search(_ context.Context, query string) (*models.Place, error) {
	f.searches++
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.places[query]
	if !ok {
		return nil, clients.ErrPlaceNotFound
	}
	return &p, nil
}

func (f *fakeGeocoding) Reverse(_ context.Context, lat, lng float64) (*models.Place, error) {
	f.reverses++
	if f.err != nil {
		return nil, f.err
	}
	return &models.Place{Lat: lat, Lng: lng, Address: f.reverse}, nil
}

var errProviderDown = errors.New("provider down")
