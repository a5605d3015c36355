package app

import (
	"context"
	"database/sql"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"everse/backend/libs/httpx"
	libredis "everse/backend/libs/redis"
	"everse/backend/services/stations-service/internal/config"
	"everse/backend/services/stations-service/internal/db"
	httpserver "everse/backend/services/stations-service/internal/http"
	"everse/backend/services/stations-service/internal/http/handlers"
	redisstore "everse/backend/services/stations-service/internal/redis"
	"everse/backend/services/stations-service/internal/repository"
	"everse/backend/services/stations-service/internal/service"
)

// App wires stations-service dependencies.
type App struct {
	server      *httpx.Server
	db          *sql.DB
	redisClient *redis.Client
	logger      *zap.Logger
}

// New constructs the application graph. Redis is optional; without it availability is
// always read from Postgres.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgres(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	var (
		redisClient *redis.Client
		slotCache   service.SlotCache
	)
	if cfg.Redis.Enabled() {
		redisClient, err = libredis.NewRedisClient(cfg.Redis.Options)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		slotCache = redisstore.NewStore(redisClient, cfg.Redis.SlotsTTL)
	} else {
		logger.Info("redis not configured, booked slot cache disabled")
	}

	stationRepo := repository.NewStationRepository(sqlDB)
	bookingRepo := repository.NewBookingRepository(sqlDB)

	stationsSvc := service.NewStationsService(stationRepo, logger)
	bookingsSvc := service.NewBookingsService(bookingRepo, stationRepo, slotCache, cfg.Bookings.Slots, logger)
	insightsSvc := service.NewInsightsService(stationRepo, bookingRepo, cfg.Maintenance.IntervalDays, cfg.Demand.Scale, logger)
	placementSvc := service.NewPlacementService(stationRepo, bookingRepo, cfg.Placement.Params, cfg.Placement.Seed, logger)

	stationsHandlers := handlers.NewStationsHandlers(stationsSvc, logger)
	bookingsHandlers := handlers.NewBookingsHandlers(bookingsSvc, logger)

	routes := httpserver.Routes{
		ListStations:         stationsHandlers.List,
		CreateStation:        stationsHandlers.Create,
		GetStation:           stationsHandlers.Get,
		DeleteStation:        stationsHandlers.Delete,
		NearbyStations:       stationsHandlers.Nearby,
		MarkServiced:         handlers.NewMarkServicedHandler(insightsSvc, logger),
		CreateBooking:        bookingsHandlers.Create,
		ListBookings:         bookingsHandlers.List,
		Availability:         bookingsHandlers.Availability,
		Maintenance:          handlers.NewMaintenanceHandler(insightsSvc, logger),
		Demand:               handlers.NewDemandHandler(insightsSvc, logger),
		PlacementSuggestions: handlers.NewPlacementHandler(placementSvc, logger),
		Health:               httpx.HealthHandler(),
	}

	router := httpserver.NewRouter(routes)
	server := httpx.NewServer("stations-service", cfg.HTTPAddress(), router, logger)

	return &App{
		server:      server,
		db:          sqlDB,
		redisClient: redisClient,
		logger:      logger,
	}, nil
}

// Run starts HTTP server.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
