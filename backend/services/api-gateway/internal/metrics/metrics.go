package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the gateway.
	Registry = prometheus.NewRegistry()
	// HTTPRequests counts requests by method, route pattern and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)
	// UpstreamErrors counts failed calls to backend services.
	UpstreamErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "upstream_errors_total", Help: "Backend service calls that failed before a response."},
		[]string{"service"},
	)
	// RateLimited counts requests rejected by the per-client limiter.
	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "rate_limited_requests_total", Help: "Requests rejected with 429."},
	)
)

var regOnce sync.Once

// RegisterDefault registers collectors to the gateway registry once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(UpstreamErrors)
		Registry.MustRegister(RateLimited)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
