package httpserver

import (
	"net/http"

	"everse/backend/libs/httpx"
)

// Routes aggregates handlers for HTTP server.
type Routes struct {
	Signup http.HandlerFunc
	Login  http.HandlerFunc
	Me     http.HandlerFunc
	Health http.HandlerFunc
}

// NewRouter wires all HTTP routes.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	if routes.Signup != nil {
		mux.Handle("/auth/signup", httpx.Method(http.MethodPost, routes.Signup))
	}
	if routes.Login != nil {
		mux.Handle("/auth/login", httpx.Method(http.MethodPost, routes.Login))
	}
	if routes.Me != nil {
		mux.Handle("/auth/me", httpx.Method(http.MethodGet, routes.Me))
	}
	if routes.Health != nil {
		mux.Handle("/health", httpx.Method(http.MethodGet, routes.Health))
	}
	return mux
}
