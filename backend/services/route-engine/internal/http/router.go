package httpserver

import (
	"net/http"

	"everse/backend/libs/httpx"
)

// Routes groups handlers.
type Routes struct {
	Routes         http.HandlerFunc
	GeocodeSearch  http.HandlerFunc
	GeocodeReverse http.HandlerFunc
	Health         http.HandlerFunc
}

// NewRouter registers endpoints. Nil handlers are skipped.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	handle(mux, "/routes", http.MethodPost, routes.Routes)
	handle(mux, "/geocode/search", http.MethodGet, routes.GeocodeSearch)
	handle(mux, "/geocode/reverse", http.MethodGet, routes.GeocodeReverse)
	handle(mux, "/health", http.MethodGet, routes.Health)
	return mux
}

func handle(mux *http.ServeMux, pattern, method string, h http.HandlerFunc) {
	if h != nil {
		mux.Handle(pattern, httpx.Method(method, h))
	}
}
