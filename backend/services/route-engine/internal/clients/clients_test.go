package clients

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"everse/backend/libs/geo"
	"everse/backend/libs/httpx"
)

const samplePolyline = "_p~iF~ps|U_ulLnnqC_mqNvxq`@"

func TestDirectionsPostsLngLatAndDecodesGeometry(t *testing.T) {
	var got struct {
		Coordinates [][]float64 `json:"coordinates"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/directions/driving-car", r.URL.Path)
		assert.Equal(t, "secret-key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"routes":[{"summary":{"distance":12345.6,"duration":1830},"geometry":"` + samplePolyline + `"}]}`))
	}))
	defer srv.Close()

	c := NewORSClient(srv.URL, "secret-key", srv.Client())
	d, err := c.Directions(context.Background(), []geo.Point{{Lat: 38.5, Lng: -120.2}, {Lat: 43.252, Lng: -126.453}})
	require.NoError(t, err)

	assert.Equal(t, [][]float64{{-120.2, 38.5}, {-126.453, 43.252}}, got.Coordinates)
	assert.InDelta(t, 1830, d.DurationSeconds, 1e-9)
	assert.InDelta(t, 12345.6, d.DistanceMeters, 1e-9)
	require.Len(t, d.Geometry, 3)
	assert.InDelta(t, 38.5, d.Geometry[0].Lat, 1e-5)
	assert.InDelta(t, -120.2, d.Geometry[0].Lng, 1e-5)
	assert.InDelta(t, 43.252, d.Geometry[2].Lat, 1e-5)
}

func TestDirectionsErrors(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
	}{
		"upstream error": {status: http.StatusForbidden, body: `{"error":"quota"}`},
		"no routes":      {status: http.StatusOK, body: `{"routes":[]}`},
		"bad json":       {status: http.StatusOK, body: `{"routes":`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewORSClient(srv.URL, "k", srv.Client())
			_, err := c.Directions(context.Background(), []geo.Point{{}, {Lat: 1, Lng: 1}})
			require.Error(t, err)
		})
	}
}

func TestDirectionsNoRouteSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"routes":[]}`))
	}))
	defer srv.Close()

	_, err := NewORSClient(srv.URL, "k", srv.Client()).Directions(context.Background(), []geo.Point{{}, {}})
	assert.True(t, errors.Is(err, ErrNoRoute))
}

func TestNominatimSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "everse-test", r.Header.Get("User-Agent"))
		if r.URL.Query().Get("q") == "nowhere" {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		_, _ = w.Write([]byte(`[{"lat":"12.9716","lon":"77.5946","display_name":"Bengaluru, India"}]`))
	}))
	defer srv.Close()

	c := NewNominatimClient(srv.URL, "everse-test", 0, srv.Client())

	place, err := c.Search(context.Background(), "Bengaluru")
	require.NoError(t, err)
	assert.InDelta(t, 12.9716, place.Lat, 1e-9)
	assert.InDelta(t, 77.5946, place.Lng, 1e-9)
	assert.Equal(t, "Bengaluru, India", place.Address)

	_, err = c.Search(context.Background(), "nowhere")
	assert.True(t, errors.Is(err, ErrPlaceNotFound))
}

func TestNominatimReverse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, "12.5", r.URL.Query().Get("lat"))
		assert.Equal(t, "77.25", r.URL.Query().Get("lon"))
		_, _ = w.Write([]byte(`{"display_name":"Somewhere, Karnataka"}`))
	}))
	defer srv.Close()

	place, err := NewNominatimClient(srv.URL, "ua", 0, srv.Client()).Reverse(context.Background(), 12.5, 77.25)
	require.NoError(t, err)
	assert.Equal(t, "Somewhere, Karnataka", place.Address)
}

func TestNominatimThrottleHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"display_name":"x"}`))
	}))
	defer srv.Close()

	c := NewNominatimClient(srv.URL, "ua", 0.01, httpx.NewHTTPClient(time.Second))
	_, err := c.Reverse(context.Background(), 1, 1)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.Reverse(ctx, 1, 1)
	require.Error(t, err)
}
