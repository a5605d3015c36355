package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"everse/backend/services/api-gateway/internal/metrics"
)

func TestMetricsMiddlewareUsesRoutePattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("GET /api/stations/{id}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	h := MetricsMiddleware(mux)

	counter := metrics.HTTPRequests.WithLabelValues(http.MethodGet, "GET /api/stations/{id}", "200")
	before := testutil.ToFloat64(counter)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/stations/1", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/stations/2", nil))

	assert.InDelta(t, before+2, testutil.ToFloat64(counter), 1e-9)
}
