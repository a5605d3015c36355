package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"everse/backend/libs/geo"
)

// JSONCache stores JSON documents in redis under a namespaced key.
type JSONCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewJSONCache returns redis-backed cache.
func NewJSONCache(client *redis.Client, prefix string, ttl time.Duration) *JSONCache {
	return &JSONCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *JSONCache) key(k string) string {
	return fmt.Sprintf("%s:%s", c.prefix, k)
}

// Get decodes the cached value into dst. A miss returns redis.Nil.
func (c *JSONCache) Get(ctx context.Context, key string, dst interface{}) error {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

// Set stores value with the configured TTL.
func (c *JSONCache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(key), data, c.ttl).Err()
}

// PointsKey hashes an ordered coordinate list. Coordinates are rounded to 5 decimals (~1 m).
func PointsKey(points []geo.Point) string {
	var b strings.Builder
	for _, p := range points {
		b.WriteString(strconv.FormatFloat(p.Lat, 'f', 5, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(p.Lng, 'f', 5, 64))
		b.WriteByte(';')
	}
	return TextKey(b.String())
}

// TextKey hashes free-form text so it is safe to embed in a key.
func TextKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
