package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"everse/backend/services/revenue-service/internal/models"
	"everse/backend/services/revenue-service/internal/repository"
)

// TariffRepository is the storage contract for tariffs.
type TariffRepository interface {
	GetActive(ctx context.Context) (*models.Tariff, error)
	Activate(ctx context.Context, t *models.Tariff) error
}

// TariffService provides tariff lookups with fallback.
type TariffService struct {
	repo          TariffRepository
	defaultTariff models.Tariff
	logger        *zap.Logger
}

// NewTariffService returns service instance. A non-positive defaultPrice disables the fallback.
func NewTariffService(repo TariffRepository, defaultPrice decimal.Decimal, logger *zap.Logger) *TariffService {
	return &TariffService{
		repo: repo,
		defaultTariff: models.Tariff{
			Name:        "Default",
			PricePerKWh: defaultPrice,
			IsActive:    true,
		},
		logger: logger,
	}
}

// ActiveTariff returns currently active tariff or default fallback.
func (s *TariffService) ActiveTariff(ctx context.Context) (*models.Tariff, error) {
	hasDefault := s.defaultTariff.PricePerKWh.IsPositive()

	tariff, err := s.repo.GetActive(ctx)
	if err == nil {
		return tariff, nil
	}
	if !hasDefault {
		if errors.Is(err, repository.ErrNoActiveTariff) {
			return nil, ErrNoTariff
		}
		return nil, err
	}
	if !errors.Is(err, repository.ErrNoActiveTariff) {
		s.logger.Warn("tariff lookup failed, using default", zap.Error(err))
	}
	fallback := s.defaultTariff
	return &fallback, nil
}

// SetActive replaces the active tariff.
func (s *TariffService) SetActive(ctx context.Context, name string, price decimal.Decimal) (*models.Tariff, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if !price.IsPositive() {
		return nil, invalid("pricePerKwh must be positive")
	}

	t := &models.Tariff{Name: name, PricePerKWh: price}
	if err := s.repo.Activate(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info("tariff activated", zap.String("name", name), zap.String("price_per_kwh", price.String()))
	return t, nil
}
