package httpserver

import (
	"net/http"

	"everse/backend/libs/httpx"
)

// Routes groups HTTP handlers.
type Routes struct {
	CreatePayment   http.HandlerFunc
	StationsRevenue http.HandlerFunc
	StationReport   http.HandlerFunc
	GetTariff       http.HandlerFunc
	SetTariff       http.HandlerFunc
	Health          http.HandlerFunc
}

// NewRouter registers service endpoints. Nil handlers are skipped.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	handle(mux, "/payments", http.MethodPost, routes.CreatePayment)
	handle(mux, "/revenue/stations", http.MethodGet, routes.StationsRevenue)
	handle(mux, "/revenue/stations/{name}", http.MethodGet, routes.StationReport)

	tariffs := httpx.Methods{}
	if routes.GetTariff != nil {
		tariffs[http.MethodGet] = routes.GetTariff
	}
	if routes.SetTariff != nil {
		tariffs[http.MethodPut] = routes.SetTariff
	}
	mux.Handle("/tariffs/active", tariffs)

	handle(mux, "/health", http.MethodGet, routes.Health)
	return mux
}

func handle(mux *http.ServeMux, pattern, method string, h http.HandlerFunc) {
	if h != nil {
		mux.Handle(pattern, httpx.Method(method, h))
	}
}
