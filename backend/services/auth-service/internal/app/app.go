package app

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"everse/backend/libs/httpx"
	appconfig "everse/backend/services/auth-service/internal/config"
	"everse/backend/services/auth-service/internal/db"
	httpserver "everse/backend/services/auth-service/internal/http"
	"everse/backend/services/auth-service/internal/http/handlers"
	"everse/backend/services/auth-service/internal/password"
	"everse/backend/services/auth-service/internal/repository"
	"everse/backend/services/auth-service/internal/service"
)

// App wires dependencies for the auth service.
type App struct {
	server *httpx.Server
	db     *sql.DB
	logger *zap.Logger
}

// New builds application graph.
func New(ctx context.Context, cfg *appconfig.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgres(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(sqlDB)
	hasher := password.NewBcrypt(cfg.BcryptCost)
	tokens := service.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL)
	authSvc := service.NewAuthService(userRepo, hasher, tokens, logger)

	routes := httpserver.Routes{
		Signup: handlers.NewSignupHandler(authSvc),
		Login:  handlers.NewLoginHandler(authSvc),
		Me:     handlers.NewMeHandler(authSvc),
		Health: httpx.HealthHandler(),
	}

	router := httpserver.NewRouter(routes)
	server := httpx.NewServer("auth-service", cfg.HTTPAddress(), router, logger)

	return &App{
		server: server,
		db:     sqlDB,
		logger: logger,
	}, nil
}

// Run starts serving HTTP traffic until context cancellation.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases acquired resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
}
