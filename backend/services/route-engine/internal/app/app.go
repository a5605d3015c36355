package app

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"everse/backend/libs/httpx"
	libredis "everse/backend/libs/redis"
	"everse/backend/services/route-engine/internal/cache"
	"everse/backend/services/route-engine/internal/clients"
	"everse/backend/services/route-engine/internal/config"
	httpserver "everse/backend/services/route-engine/internal/http"
	"everse/backend/services/route-engine/internal/http/handlers"
	"everse/backend/services/route-engine/internal/service"
)

// App wires route-engine dependencies.
type App struct {
	server      *httpx.Server
	redisClient *redis.Client
	logger      *zap.Logger
}

// New constructs the application graph. Without Redis every request goes upstream.
func New(_ context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	var (
		redisClient  *redis.Client
		routeCache   service.Cache
		geocodeCache service.Cache
	)
	if cfg.Redis.Enabled() {
		var err error
		redisClient, err = libredis.NewRedisClient(cfg.Redis.Options)
		if err != nil {
			return nil, err
		}
		routeCache = cache.NewJSONCache(redisClient, "routes:directions", cfg.Redis.RoutesTTL)
		geocodeCache = cache.NewJSONCache(redisClient, "routes:geocode", cfg.Redis.GeocodeTTL)
	} else {
		logger.Info("redis not configured, route cache disabled")
	}

	ors := clients.NewORSClient(cfg.ORS.BaseURL, cfg.ORS.APIKey, httpx.NewHTTPClient(cfg.ORS.Timeout))
	nominatim := clients.NewNominatimClient(
		cfg.Nominatim.BaseURL,
		cfg.Nominatim.UserAgent,
		cfg.Nominatim.RPS,
		httpx.NewHTTPClient(cfg.Nominatim.Timeout),
	)

	planner := service.NewPlanner(ors, routeCache, cfg.MaxWaypoints, logger)
	geocoder := service.NewGeocoder(nominatim, geocodeCache, logger)
	geocodeHandlers := handlers.NewGeocodeHandlers(geocoder, logger)

	router := httpserver.NewRouter(httpserver.Routes{
		Routes:         handlers.NewRoutesHandler(planner, logger),
		GeocodeSearch:  geocodeHandlers.Search,
		GeocodeReverse: geocodeHandlers.Reverse,
		Health:         httpx.HealthHandler(),
	})
	server := httpx.NewServer("route-engine", cfg.HTTPAddress(), router, logger)

	return &App{server: server, redisClient: redisClient, logger: logger}, nil
}

// Run starts HTTP server.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
