package service

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"everse/backend/services/stations-service/internal/models"
	redisstore "everse/backend/services/stations-service/internal/redis"
	"everse/backend/services/stations-service/internal/repository"
)

type fakeStations struct {
	mu       sync.Mutex
	stations []models.Station
	nextID   int64
}

func (f *fakeStations) Create(_ context.Context, st *models.Station) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	st.ID = f.nextID
	st.CreatedAt = time.Now()
	f.stations = append(f.stations, *st)
	return nil
}

func (f *fakeStations) List(context.Context) ([]models.Station, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Station(nil), f.stations...), nil
}

func (f *fakeStations) GetByID(_ context.Context, id int64) (*models.Station, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, st := range f.stations {
		if st.ID == id {
			cp := st
			return &cp, nil
		}
	}
	return nil, repository.ErrStationNotFound
}

func (f *fakeStations) GetByName(_ context.Context, name string) (*models.Station, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, st := range f.stations {
		if st.Name == name {
			cp := st
			return &cp, nil
		}
	}
	return nil, repository.ErrStationNotFound
}

func (f *fakeStations) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, st := range f.stations {
		if st.ID == id {
			f.stations = append(f.stations[:i], f.stations[i+1:]...)
			return nil
		}
	}
	return repository.ErrStationNotFound
}

func (f *fakeStations) MarkServiced(_ context.Context, id int64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.stations {
		if f.stations[i].ID == id {
			t := at.UTC()
			f.stations[i].LastServicedAt = &t
			return nil
		}
	}
	return repository.ErrStationNotFound
}

type fakeBookings struct {
	mu       sync.Mutex
	bookings []models.Booking
	lists    int
	// onList runs after the bookings are read, before they are returned.
	onList func()
}

func (f *fakeBookings) Create(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.bookings {
		if existing.StationName == b.StationName && existing.Date == b.Date && existing.Slot == b.Slot {
			return repository.ErrSlotTaken
		}
	}
	b.ID = int64(len(f.bookings) + 1)
	f.bookings = append(f.bookings, *b)
	return nil
}

func (f *fakeBookings) ListByStationDate(_ context.Context, stationName, date string) ([]models.Booking, error) {
	f.mu.Lock()
	f.lists++
	out := []models.Booking{}
	for _, b := range f.bookings {
		if b.StationName == stationName && b.Date == date {
			out = append(out, b)
		}
	}
	hook := f.onList
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return out, nil
}

func (f *fakeBookings) CountByStation(context.Context) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[string]int{}
	for _, b := range f.bookings {
		out[b.StationName]++
	}
	return out, nil
}

type fakeSlotCache struct {
	entries       map[string][]string
	versions      map[string]int64
	invalidations int
	stale         int
}

func newFakeSlotCache() *fakeSlotCache {
	return &fakeSlotCache{entries: map[string][]string{}, versions: map[string]int64{}}
}

func (c *fakeSlotCache) Get(_ context.Context, stationName, date string) ([]string, error) {
	v, ok := c.entries[stationName+"|"+date]
	if !ok {
		return nil, redis.Nil
	}
	return v, nil
}

func (c *fakeSlotCache) Version(_ context.Context, stationName, date string) (int64, error) {
	return c.versions[stationName+"|"+date], nil
}

func (c *fakeSlotCache) SaveIfCurrent(_ context.Context, stationName, date string, version int64, slots []string) error {
	key := stationName + "|" + date
	if c.versions[key] != version {
		c.stale++
		return redisstore.ErrStale
	}
	c.entries[key] = slots
	return nil
}

func (c *fakeSlotCache) Invalidate(_ context.Context, stationName, date string) error {
	key := stationName + "|" + date
	c.invalidations++
	c.versions[key]++
	delete(c.entries, key)
	return nil
}
