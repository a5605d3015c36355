package app

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"everse/backend/libs/httpx"
	"everse/backend/services/revenue-service/internal/config"
	"everse/backend/services/revenue-service/internal/db"
	httpserver "everse/backend/services/revenue-service/internal/http"
	"everse/backend/services/revenue-service/internal/http/handlers"
	"everse/backend/services/revenue-service/internal/repository"
	"everse/backend/services/revenue-service/internal/service"
)

// App wires revenue service dependencies.
type App struct {
	server *httpx.Server
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// New constructs application graph.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	pool, err := db.NewPostgres(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	// dashboards chart amounts, so emit numbers rather than quoted strings
	decimal.MarshalJSONWithoutQuotes = true

	paymentRepo := repository.NewPaymentRepository(pool)
	tariffRepo := repository.NewTariffRepository(pool)

	tariffService := service.NewTariffService(tariffRepo, cfg.DefaultPrice(), logger)
	paymentService := service.NewPaymentService(paymentRepo, tariffService, logger)
	reportService := service.NewReportService(paymentRepo, cfg.Reports.HistoryMonths)

	tariffHandlers := handlers.NewTariffHandlers(tariffService, logger)

	routes := httpserver.Routes{
		CreatePayment:   handlers.NewCreatePaymentHandler(paymentService, logger),
		StationsRevenue: handlers.NewStationsRevenueHandler(reportService, logger),
		StationReport:   handlers.NewStationReportHandler(reportService, logger),
		GetTariff:       tariffHandlers.Get,
		SetTariff:       tariffHandlers.Set,
		Health:          httpx.HealthHandler(),
	}

	router := httpserver.NewRouter(routes)
	server := httpx.NewServer("revenue-service", cfg.HTTPAddress(), router, logger)

	return &App{
		server: server,
		pool:   pool,
		logger: logger,
	}, nil
}

// Run starts HTTP server.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}
