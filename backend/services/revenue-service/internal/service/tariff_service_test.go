package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"everse/backend/services/revenue-service/internal/models"
)

func TestActiveTariffPrefersStoredTariff(t *testing.T) {
	repo := &fakeTariffs{active: &models.Tariff{Name: "Peak", PricePerKWh: decimal.RequireFromString("18.50")}}
	svc := NewTariffService(repo, decimal.RequireFromString("12"), zap.NewNop())

	tariff, err := svc.ActiveTariff(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Peak", tariff.Name)
}

func TestActiveTariffFallsBackToDefault(t *testing.T) {
	for name, repo := range map[string]*fakeTariffs{
		"none active": {},
		"db error":    {err: errors.New("connection reset")},
	} {
		t.Run(name, func(t *testing.T) {
			svc := NewTariffService(repo, decimal.RequireFromString("12"), zap.NewNop())
			tariff, err := svc.ActiveTariff(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "Default", tariff.Name)
			assert.True(t, tariff.PricePerKWh.Equal(decimal.NewFromInt(12)))
		})
	}
}

func TestActiveTariffWithoutDefault(t *testing.T) {
	svc := NewTariffService(&fakeTariffs{}, decimal.Zero, zap.NewNop())
	_, err := svc.ActiveTariff(context.Background())
	assert.True(t, errors.Is(err, ErrNoTariff))

	boom := errors.New("boom")
	svc = NewTariffService(&fakeTariffs{err: boom}, decimal.Zero, zap.NewNop())
	_, err = svc.ActiveTariff(context.Background())
	assert.True(t, errors.Is(err, boom))
}

func TestSetActive(t *testing.T) {
	repo := &fakeTariffs{}
	svc := NewTariffService(repo, decimal.Zero, zap.NewNop())

	_, err := svc.SetActive(context.Background(), " ", decimal.NewFromInt(10))
	assert.True(t, errors.Is(err, ErrInvalidInput))
	_, err = svc.SetActive(context.Background(), "Night", decimal.NewFromInt(-1))
	assert.True(t, errors.Is(err, ErrInvalidInput))

	tariff, err := svc.SetActive(context.Background(), " Night ", decimal.RequireFromString("9.75"))
	require.NoError(t, err)
	assert.Equal(t, "Night", tariff.Name)

	active, err := svc.ActiveTariff(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "9.75", active.PricePerKWh.String())
}
