package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"everse/backend/libs/httpx"
	"everse/backend/services/api-gateway/internal/http/middleware"
)

const routerSecret = "router-secret"

func named(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Upstream", name)
		w.WriteHeader(http.StatusOK)
	})
}

func newTestRouter() http.Handler {
	return NewRouter(Upstreams{
		Auth:     named("auth"),
		Stations: named("stations"),
		Routes:   named("routes"),
		Assist:   named("assist"),
		AssistWS: named("assist-ws"),
		Revenue:  named("revenue"),
		Metrics:  named("metrics"),
		Health:   httpx.HealthHandler(),
	}, NewGuards(middleware.NewAuthenticator(routerSecret)))
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"email":   "user@everse.test",
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(routerSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRouterAccess(t *testing.T) {
	router := newTestRouter()

	cases := []struct {
		name     string
		method   string
		path     string
		role     string
		want     int
		upstream string
	}{
		{name: "login is public", method: http.MethodPost, path: "/api/auth/login", want: http.StatusOK, upstream: "auth"},
		{name: "profile needs token", method: http.MethodGet, path: "/api/auth/me", want: http.StatusUnauthorized},
		{name: "profile", method: http.MethodGet, path: "/api/auth/me", role: "customer", want: http.StatusOK, upstream: "auth"},
		{name: "stations list is public", method: http.MethodGet, path: "/api/stations", want: http.StatusOK, upstream: "stations"},
		{name: "nearby", method: http.MethodGet, path: "/api/stations/nearby?lat=1&lng=2", want: http.StatusOK, upstream: "stations"},
		{name: "create station needs token", method: http.MethodPost, path: "/api/stations", want: http.StatusUnauthorized},
		{name: "create station needs manufacturer", method: http.MethodPost, path: "/api/stations", role: "customer", want: http.StatusForbidden},
		{name: "manufacturer creates station", method: http.MethodPost, path: "/api/stations", role: "manufacturer", want: http.StatusOK, upstream: "stations"},
		{name: "booking needs token", method: http.MethodPost, path: "/api/bookings", want: http.StatusUnauthorized},
		{name: "customer books", method: http.MethodPost, path: "/api/bookings", role: "customer", want: http.StatusOK, upstream: "stations"},
		{name: "availability", method: http.MethodGet, path: "/api/bookings/Hub/2024-05-01/availability", want: http.StatusOK, upstream: "stations"},
		{name: "placement is manufacturer only", method: http.MethodGet, path: "/api/placement/suggestions", role: "customer", want: http.StatusForbidden},
		{name: "routes", method: http.MethodPost, path: "/api/routes", want: http.StatusOK, upstream: "routes"},
		{name: "geocode", method: http.MethodGet, path: "/api/geocode/reverse?lat=1&lng=2", want: http.StatusOK, upstream: "routes"},
		{name: "emergency create", method: http.MethodPost, path: "/api/emergency", want: http.StatusOK, upstream: "assist"},
		{name: "emergency status by manufacturer", method: http.MethodPatch, path: "/api/emergency/abc/status", role: "manufacturer", want: http.StatusOK, upstream: "assist"},
		{name: "emergency feed needs token", method: http.MethodGet, path: "/api/emergency/ws", want: http.StatusUnauthorized},
		{name: "emergency feed with bearer", method: http.MethodGet, path: "/api/emergency/ws", role: "customer", want: http.StatusOK, upstream: "assist-ws"},
		{name: "revenue by customer", method: http.MethodGet, path: "/api/revenue/stations", role: "customer", want: http.StatusForbidden},
		{name: "revenue report", method: http.MethodGet, path: "/api/revenue/stations/Hub", role: "manufacturer", want: http.StatusOK, upstream: "revenue"},
		{name: "tariff read", method: http.MethodGet, path: "/api/tariffs/active", want: http.StatusOK, upstream: "revenue"},
		{name: "metrics", method: http.MethodGet, path: "/metrics", want: http.StatusOK, upstream: "metrics"},
		{name: "wrong method", method: http.MethodPut, path: "/api/routes", want: http.StatusMethodNotAllowed},
		{name: "unknown", method: http.MethodGet, path: "/api/unknown", want: http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.role != "" {
				req.Header.Set("Authorization", bearer(t, tc.role))
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code)
			assert.Equal(t, tc.upstream, rec.Header().Get("X-Upstream"))
		})
	}
}

func TestRouterEmergencyFeedAcceptsQueryToken(t *testing.T) {
	router := newTestRouter()
	token := strings.TrimPrefix(bearer(t, "customer"), "Bearer ")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/emergency/ws?access_token="+token, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "assist-ws", rec.Header().Get("X-Upstream"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/emergency/ws?access_token=forged", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Upstream"))
}

func TestRouterHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
