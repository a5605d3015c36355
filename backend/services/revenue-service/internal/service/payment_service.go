package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"everse/backend/services/revenue-service/internal/models"
)

// PaymentRepository is the storage contract for payments and their aggregates.
type PaymentRepository interface {
	Create(ctx context.Context, p *models.Payment) error
	StationSummaries(ctx context.Context) ([]models.StationRevenue, error)
	StationSummary(ctx context.Context, stationName string) (models.StationRevenue, error)
	MonthlyRevenue(ctx context.Context, stationName string, since time.Time) (map[string]decimal.Decimal, error)
	ConnectorCounts(ctx context.Context, stationName string) (map[string]int, error)
}

// CreatePaymentInput is a booking payment request.
type CreatePaymentInput struct {
	BookingID     string
	StationName   string
	ConnectorType string
	EnergyKWh     decimal.Decimal
	UserID        int64
}

// PaymentService prices and records booking payments.
type PaymentService struct {
	payments PaymentRepository
	tariffs  *TariffService
	logger   *zap.Logger
	now      func() time.Time
}

// NewPaymentService builds service.
func NewPaymentService(payments PaymentRepository, tariffs *TariffService, logger *zap.Logger) *PaymentService {
	return &PaymentService{payments: payments, tariffs: tariffs, logger: logger, now: time.Now}
}

// Create charges energy at the active tariff, rounded to two decimals.
func (s *PaymentService) Create(ctx context.Context, in CreatePaymentInput) (*models.Payment, error) {
	in.BookingID = strings.TrimSpace(in.BookingID)
	in.StationName = strings.TrimSpace(in.StationName)
	in.ConnectorType = strings.TrimSpace(in.ConnectorType)
	if in.BookingID == "" || in.StationName == "" || in.ConnectorType == "" {
		return nil, invalid("bookingId, stationName and connectorType are required")
	}
	if !in.EnergyKWh.IsPositive() {
		return nil, invalid("energyKwh must be positive")
	}

	tariff, err := s.tariffs.ActiveTariff(ctx)
	if err != nil {
		return nil, err
	}

	p := &models.Payment{
		BookingID:     in.BookingID,
		StationName:   in.StationName,
		ConnectorType: in.ConnectorType,
		EnergyKWh:     in.EnergyKWh,
		PricePerKWh:   tariff.PricePerKWh,
		Amount:        in.EnergyKWh.Mul(tariff.PricePerKWh).Round(2),
		Status:        models.PaymentCompleted,
		UserID:        in.UserID,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("payment recorded",
		zap.String("booking_id", p.BookingID),
		zap.String("station", p.StationName),
		zap.String("energy_kwh", p.EnergyKWh.String()),
		zap.String("amount", p.Amount.String()),
	)
	return p, nil
}
