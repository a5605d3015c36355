package httpserver

import (
	"net/http"

	"everse/backend/libs/httpx"
)

// Routes groups handlers.
type Routes struct {
	ListRequests  http.HandlerFunc
	CreateRequest http.HandlerFunc
	Stats         http.HandlerFunc
	UpdateStatus  http.HandlerFunc
	Feed          http.HandlerFunc
	Health        http.HandlerFunc
}

// NewRouter registers endpoints. Nil handlers are skipped.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()

	m := httpx.Methods{}
	if routes.ListRequests != nil {
		m[http.MethodGet] = routes.ListRequests
	}
	if routes.CreateRequest != nil {
		m[http.MethodPost] = routes.CreateRequest
	}
	mux.Handle("/emergency", m)

	handle(mux, "/emergency/stats", http.MethodGet, routes.Stats)
	handle(mux, "/emergency/{id}/status", http.MethodPatch, routes.UpdateStatus)
	handle(mux, "/emergency/ws", http.MethodGet, routes.Feed)
	handle(mux, "/health", http.MethodGet, routes.Health)
	return mux
}

func handle(mux *http.ServeMux, pattern, method string, h http.HandlerFunc) {
	if h != nil {
		mux.Handle(pattern, httpx.Method(method, h))
	}
}
