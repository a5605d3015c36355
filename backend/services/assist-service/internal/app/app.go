package app

import (
	"context"
	"database/sql"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"everse/backend/libs/httpx"
	libredis "everse/backend/libs/redis"
	"everse/backend/services/assist-service/internal/config"
	"everse/backend/services/assist-service/internal/db"
	"everse/backend/services/assist-service/internal/events"
	httpserver "everse/backend/services/assist-service/internal/http"
	"everse/backend/services/assist-service/internal/http/handlers"
	"everse/backend/services/assist-service/internal/repository"
	"everse/backend/services/assist-service/internal/service"
	"everse/backend/services/assist-service/internal/ws"
)

// App wires assist-service dependencies.
type App struct {
	server      *httpx.Server
	hub         *ws.Hub
	broker      events.Broker
	db          *sql.DB
	redisClient *redis.Client
	logger      *zap.Logger
}

// New constructs the application graph. With Redis configured events fan out across
// replicas; otherwise only this process's responders see them.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgres(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	var (
		redisClient *redis.Client
		broker      events.Broker
	)
	if cfg.Redis.Enabled() {
		redisClient, err = libredis.NewRedisClient(cfg.Redis.Options)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		broker = events.NewRedisBroker(redisClient, cfg.Redis.Channel, logger)
	} else {
		logger.Info("redis not configured, emergency events stay in-process")
		broker = events.NewMemoryBroker()
	}

	repo := repository.NewEmergencyRepository(sqlDB)
	svc := service.NewEmergencyService(repo, broker, logger)
	hub := ws.NewHub(logger)
	wsServer := ws.NewServer(hub, cfg.WebSocket.WriteTimeout, cfg.WebSocket.PingInterval, cfg.WebSocket.AllowedOrigins, logger)
	h := handlers.NewEmergencyHandlers(svc, logger)

	router := httpserver.NewRouter(httpserver.Routes{
		ListRequests:  h.List,
		CreateRequest: h.Create,
		Stats:         h.Stats,
		UpdateStatus:  h.UpdateStatus,
		Feed:          wsServer.HandleWS,
		Health:        httpx.HealthHandler(),
	})
	server := httpx.NewServer("assist-service", cfg.HTTPAddress(), router, logger)

	return &App{
		server:      server,
		hub:         hub,
		broker:      broker,
		db:          sqlDB,
		redisClient: redisClient,
		logger:      logger,
	}, nil
}

// Run subscribes the websocket hub to the event stream and starts HTTP server.
func (a *App) Run(ctx context.Context) error {
	feed, err := a.broker.Subscribe(ctx)
	if err != nil {
		return err
	}
	go a.hub.Run(ctx, feed)
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
