package httpserver

import (
	"net/http"

	"everse/backend/services/api-gateway/internal/http/middleware"
)

// RoleManufacturer is the role allowed to manage stations and read revenue.
const RoleManufacturer = "manufacturer"

// Upstreams holds one handler per backend service.
type Upstreams struct {
	Auth     http.Handler
	Stations http.Handler
	Routes   http.Handler
	Assist   http.Handler
	AssistWS http.Handler
	Revenue  http.Handler
	Metrics  http.Handler
	Health   http.Handler
}

// Guards wraps handlers with the access level a route needs.
type Guards struct {
	Public        func(http.Handler) http.Handler
	Authenticated func(http.Handler) http.Handler
	Manufacturer  func(http.Handler) http.Handler
	Stream        func(http.Handler) http.Handler
}

// NewGuards builds guards from the authenticator.
func NewGuards(auth *middleware.Authenticator) Guards {
	return Guards{
		Public:        auth.Optional,
		Authenticated: auth.Require,
		Manufacturer: func(h http.Handler) http.Handler {
			return middleware.Chain(h, auth.Require, middleware.RequireRole(RoleManufacturer))
		},
		Stream: auth.RequireStream,
	}
}

// NewRouter registers public API routes.
func NewRouter(up Upstreams, g Guards) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("POST /api/auth/signup", up.Auth)
	mux.Handle("POST /api/auth/login", up.Auth)
	mux.Handle("GET /api/auth/me", g.Authenticated(up.Auth))

	mux.Handle("GET /api/stations", g.Public(up.Stations))
	mux.Handle("POST /api/stations", g.Manufacturer(up.Stations))
	mux.Handle("GET /api/stations/nearby", g.Public(up.Stations))
	mux.Handle("GET /api/stations/{id}", g.Public(up.Stations))
	mux.Handle("DELETE /api/stations/{id}", g.Manufacturer(up.Stations))
	mux.Handle("PUT /api/stations/{id}/service", g.Manufacturer(up.Stations))

	mux.Handle("POST /api/bookings", g.Authenticated(up.Stations))
	mux.Handle("GET /api/bookings/{stationName}/{date}", g.Public(up.Stations))
	mux.Handle("GET /api/bookings/{stationName}/{date}/availability", g.Public(up.Stations))

	mux.Handle("GET /api/maintenance", g.Public(up.Stations))
	mux.Handle("GET /api/demand", g.Manufacturer(up.Stations))
	mux.Handle("GET /api/placement/suggestions", g.Manufacturer(up.Stations))

	mux.Handle("POST /api/routes", g.Public(up.Routes))
	mux.Handle("GET /api/geocode/search", g.Public(up.Routes))
	mux.Handle("GET /api/geocode/reverse", g.Public(up.Routes))

	mux.Handle("POST /api/emergency", g.Public(up.Assist))
	mux.Handle("GET /api/emergency", g.Authenticated(up.Assist))
	mux.Handle("GET /api/emergency/stats", g.Authenticated(up.Assist))
	mux.Handle("PATCH /api/emergency/{id}/status", g.Manufacturer(up.Assist))
	if up.AssistWS != nil {
		mux.Handle("GET /api/emergency/ws", g.Stream(up.AssistWS))
	}

	mux.Handle("POST /api/payments", g.Authenticated(up.Revenue))
	mux.Handle("GET /api/revenue/stations", g.Manufacturer(up.Revenue))
	mux.Handle("GET /api/revenue/stations/{name}", g.Manufacturer(up.Revenue))
	mux.Handle("GET /api/tariffs/active", g.Public(up.Revenue))
	mux.Handle("PUT /api/tariffs/active", g.Manufacturer(up.Revenue))

	if up.Metrics != nil {
		mux.Handle("GET /metrics", up.Metrics)
	}
	mux.Handle("GET /health", up.Health)
	return mux
}
