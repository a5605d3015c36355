package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/twpayne/go-polyline"

	"everse/backend/libs/geo"
	"everse/backend/libs/httpx"
	"everse/backend/services/route-engine/internal/models"
)

// ErrNoRoute is returned when the provider answers without any route.
var ErrNoRoute = errors.New("ors: no route in response")

const directionsPath = "/v2/directions/driving-car"

// ORSClient calls the OpenRouteService directions API.
type ORSClient struct {
	base *httpx.Client
}

// NewORSClient returns client. The API key is sent verbatim in the Authorization header.
func NewORSClient(baseURL, apiKey string, httpClient httpx.HTTPDoer) *ORSClient {
	return &ORSClient{base: httpx.NewClient(baseURL, httpClient, map[string]string{
		"Authorization": apiKey,
		"Accept":        "application/json",
	})}
}

type orsRequest struct {
	Coordinates [][2]float64 `json:"coordinates"`
}

type orsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
		Geometry string `json:"geometry"`
	} `json:"routes"`
}

// Directions fetches a driving route through points in order.
func (c *ORSClient) Directions(ctx context.Context, points []geo.Point) (*models.Directions, error) {
	req := orsRequest{Coordinates: make([][2]float64, len(points))}
	for i, p := range points {
		// ORS expects [lng, lat]
		req.Coordinates[i] = [2]float64{p.Lng, p.Lat}
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	status, respBody, err := c.base.Do(ctx, http.MethodPost, directionsPath, body, nil)
	if err != nil {
		return nil, fmt.Errorf("ors: request: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("ors: unexpected status %d", status)
	}

	var resp orsResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("ors: decode response: %w", err)
	}
	if len(resp.Routes) == 0 {
		return nil, ErrNoRoute
	}
	route := resp.Routes[0]

	geometry, err := decodeGeometry(route.Geometry)
	if err != nil {
		return nil, err
	}

	return &models.Directions{
		DurationSeconds: route.Summary.Duration,
		DistanceMeters:  route.Summary.Distance,
		Geometry:        geometry,
	}, nil
}

func decodeGeometry(encoded string) ([]geo.Point, error) {
	if encoded == "" {
		return []geo.Point{}, nil
	}
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("ors: decode geometry: %w", err)
	}
	out := make([]geo.Point, 0, len(coords))
	for _, c := range coords {
		out = append(out, geo.Point{Lat: c[0], Lng: c[1]})
	}
	return out, nil
}
