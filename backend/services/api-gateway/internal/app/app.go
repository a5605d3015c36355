package app

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"everse/backend/libs/httpx"
	"everse/backend/services/api-gateway/internal/clients"
	"everse/backend/services/api-gateway/internal/config"
	httpserver "everse/backend/services/api-gateway/internal/http"
	"everse/backend/services/api-gateway/internal/http/handlers"
	"everse/backend/services/api-gateway/internal/http/middleware"
	"everse/backend/services/api-gateway/internal/metrics"
)

const limiterCleanupInterval = time.Minute

// App wires API gateway dependencies.
type App struct {
	server  *httpx.Server
	limiter *middleware.RateLimiter
	logger  *zap.Logger
}

// New constructs application graph.
func New(_ context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	metrics.RegisterDefault()

	httpClient := httpx.NewHTTPClient(cfg.HTTPClient.Timeout)
	proxy := func(name, baseURL string) *handlers.Proxy {
		return handlers.NewProxy(clients.NewUpstream(name, baseURL, httpClient), logger)
	}

	assistWS, err := handlers.NewWebSocketProxy(clients.ServiceAssist, cfg.Services.AssistURL, logger)
	if err != nil {
		return nil, err
	}

	router := httpserver.NewRouter(httpserver.Upstreams{
		Auth:     proxy(clients.ServiceAuth, cfg.Services.AuthURL),
		Stations: proxy(clients.ServiceStations, cfg.Services.StationsURL),
		Routes:   proxy(clients.ServiceRoutes, cfg.Services.RoutesURL),
		Assist:   proxy(clients.ServiceAssist, cfg.Services.AssistURL),
		AssistWS: assistWS,
		Revenue:  proxy(clients.ServiceRevenue, cfg.Services.RevenueURL),
		Metrics:  promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}),
		Health:   httpx.HealthHandler(),
	}, httpserver.NewGuards(middleware.NewAuthenticator(cfg.JWT.Secret)))

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	server := httpx.NewServer(
		"api-gateway",
		cfg.HTTPAddress(),
		router,
		logger,
		middleware.RecoveryMiddleware(logger),
		middleware.RequestIDMiddleware,
		middleware.LoggingMiddleware(logger),
		middleware.MetricsMiddleware,
		middleware.CORSMiddleware(cfg.CORS.AllowedOrigins),
		limiter.Middleware,
	)

	return &App{server: server, limiter: limiter, logger: logger}, nil
}

// Run starts serving HTTP traffic.
func (a *App) Run(ctx context.Context) error {
	go a.sweepLimiter(ctx)
	return a.server.Run(ctx)
}

func (a *App) sweepLimiter(ctx context.Context) {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.limiter.Cleanup()
		}
	}
}

// Close releases resources (none yet).
func (a *App) Close() {}
