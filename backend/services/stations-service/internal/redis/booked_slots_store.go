package redisstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"github.com/redis/go-redis/v9"
)

// ErrStale is returned by SaveIfCurrent when a booking invalidated the entry after the
// caller read the version.
var ErrStale = errors.New("redisstore: cached slots are stale")

// Store caches the booked slot labels of a station per day. Each entry has a version
// counter bumped on every invalidation, so a reader that loaded bookings before a
// concurrent insert cannot overwrite the invalidation with its stale list.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore returns redis-backed store.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// keys returns the data and version keys. Station names are only unique as exact strings,
// so the slug is kept for readability and a hash of the exact name separates names that
// slugify alike.
func (s *Store) keys(stationName, date string) (string, string) {
	sum := sha256.Sum256([]byte(stationName))
	base := fmt.Sprintf("bookings:slots:%s-%s:%s", slug.Make(stationName), hex.EncodeToString(sum[:6]), date)
	return base, base + ":version"
}

// Get returns cached slots or redis.Nil on a miss.
func (s *Store) Get(ctx context.Context, stationName, date string) ([]string, error) {
	dataKey, _ := s.keys(stationName, date)
	result, err := s.client.Get(ctx, dataKey).Bytes()
	if err != nil {
		return nil, err
	}
	var slots []string
	if err := json.Unmarshal(result, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// Version returns the invalidation counter of the entry, zero when never invalidated.
func (s *Store) Version(ctx context.Context, stationName, date string) (int64, error) {
	_, versionKey := s.keys(stationName, date)
	v, err := s.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// SaveIfCurrent caches slots only while the version still equals version.
func (s *Store) SaveIfCurrent(ctx context.Context, stationName, date string, version int64, slots []string) error {
	data, err := json.Marshal(slots)
	if err != nil {
		return err
	}
	dataKey, versionKey := s.keys(stationName, date)

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return ErrStale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, dataKey, data, s.ttl)
			return nil
		})
		return err
	}, versionKey)
	if errors.Is(err, redis.TxFailedErr) {
		return ErrStale
	}
	return err
}

// Invalidate drops the cached entry and bumps its version.
func (s *Store) Invalidate(ctx context.Context, stationName, date string) error {
	dataKey, versionKey := s.keys(stationName, date)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, dataKey)
		pipe.Incr(ctx, versionKey)
		if s.ttl > 0 {
			// outlive any data entry written against the previous version
			pipe.Expire(ctx, versionKey, 2*s.ttl)
		}
		return nil
	})
	return err
}
