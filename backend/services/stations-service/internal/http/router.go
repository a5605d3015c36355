package httpserver

import (
	"net/http"

	"everse/backend/libs/httpx"
)

// Routes groups handlers.
type Routes struct {
	ListStations         http.HandlerFunc
	CreateStation        http.HandlerFunc
	GetStation           http.HandlerFunc
	DeleteStation        http.HandlerFunc
	NearbyStations       http.HandlerFunc
	MarkServiced         http.HandlerFunc
	CreateBooking        http.HandlerFunc
	ListBookings         http.HandlerFunc
	Availability         http.HandlerFunc
	Maintenance          http.HandlerFunc
	Demand               http.HandlerFunc
	PlacementSuggestions http.HandlerFunc
	Health               http.HandlerFunc
}

// NewRouter registers endpoints. Nil handlers are skipped.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/stations", methods(map[string]http.HandlerFunc{
		http.MethodGet:  routes.ListStations,
		http.MethodPost: routes.CreateStation,
	}))
	mux.Handle("/stations/{id}", methods(map[string]http.HandlerFunc{
		http.MethodGet:    routes.GetStation,
		http.MethodDelete: routes.DeleteStation,
	}))
	handle(mux, "/stations/nearby", http.MethodGet, routes.NearbyStations)
	handle(mux, "/stations/{id}/service", http.MethodPut, routes.MarkServiced)

	handle(mux, "/bookings", http.MethodPost, routes.CreateBooking)
	handle(mux, "/bookings/{stationName}/{date}", http.MethodGet, routes.ListBookings)
	handle(mux, "/bookings/{stationName}/{date}/availability", http.MethodGet, routes.Availability)

	handle(mux, "/maintenance", http.MethodGet, routes.Maintenance)
	handle(mux, "/demand", http.MethodGet, routes.Demand)
	handle(mux, "/placement/suggestions", http.MethodGet, routes.PlacementSuggestions)
	handle(mux, "/health", http.MethodGet, routes.Health)
	return mux
}

func handle(mux *http.ServeMux, pattern, method string, h http.HandlerFunc) {
	if h != nil {
		mux.Handle(pattern, httpx.Method(method, h))
	}
}

func methods(byMethod map[string]http.HandlerFunc) http.Handler {
	m := httpx.Methods{}
	for method, h := range byMethod {
		if h != nil {
			m[method] = h
		}
	}
	return m
}
