package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/time/rate"

	"everse/backend/libs/httpx"
	"everse/backend/services/route-engine/internal/models"
)

// ErrPlaceNotFound is returned when a search has no hits.
var ErrPlaceNotFound = errors.New("nominatim: place not found")

// NominatimClient geocodes through a Nominatim instance. Calls share one token bucket
// because the public instance allows a single request per second.
type NominatimClient struct {
	base    *httpx.Client
	limiter *rate.Limiter
}

// NewNominatimClient returns client. rps <= 0 disables throttling.
func NewNominatimClient(baseURL, userAgent string, rps float64, httpClient httpx.HTTPDoer) *NominatimClient {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &NominatimClient{
		base: httpx.NewClient(baseURL, httpClient, map[string]string{
			"User-Agent": userAgent,
			"Accept":     "application/json",
		}),
		limiter: rate.NewLimiter(limit, 1),
	}
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Search returns the best match for a free-form query.
func (c *NominatimClient) Search(ctx context.Context, query string) (*models.Place, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("q", query)

	var hits []nominatimPlace
	if err := c.get(ctx, "/search?"+params.Encode(), &hits); err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, ErrPlaceNotFound
	}
	return toPlace(hits[0])
}

// Reverse returns the display name of the place at lat/lng.
func (c *NominatimClient) Reverse(ctx context.Context, lat, lng float64) (*models.Place, error) {
	params := url.Values{}
	params.Set("format", "jsonv2")
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))

	var hit nominatimPlace
	if err := c.get(ctx, "/reverse?"+params.Encode(), &hit); err != nil {
		return nil, err
	}
	return &models.Place{Lat: lat, Lng: lng, Address: hit.DisplayName}, nil
}

func (c *NominatimClient) get(ctx context.Context, path string, dst interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("nominatim: throttle: %w", err)
	}
	status, body, err := c.base.Do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return fmt.Errorf("nominatim: request: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("nominatim: unexpected status %d", status)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("nominatim: decode response: %w", err)
	}
	return nil
}

func toPlace(p nominatimPlace) (*models.Place, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim: bad lat %q: %w", p.Lat, err)
	}
	lng, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim: bad lon %q: %w", p.Lon, err)
	}
	return &models.Place{Lat: lat, Lng: lng, Address: p.DisplayName}, nil
}
