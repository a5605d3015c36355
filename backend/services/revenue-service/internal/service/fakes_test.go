package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"everse/backend/services/revenue-service/internal/models"
	"everse/backend/services/revenue-service/internal/repository"
)

type fakeTariffs struct {
	active *models.Tariff
	err    error
}

func (f *fakeTariffs) GetActive(context.Context) (*models.Tariff, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.active == nil {
		return nil, repository.ErrNoActiveTariff
	}
	t := *f.active
	return &t, nil
}

func (f *fakeTariffs) Activate(_ context.Context, t *models.Tariff) error {
	t.ID = 1
	t.IsActive = true
	f.active = t
	return nil
}

type fakePayments struct {
	created []models.Payment
	err     error
	summary models.StationRevenue
	monthly map[string]decimal.Decimal
	counts  map[string]int
	since   time.Time
}

func (f *fakePayments) Create(_ context.Context, p *models.Payment) error {
	if f.err != nil {
		return f.err
	}
	p.ID = int64(len(f.created) + 1)
	f.created = append(f.created, *p)
	return nil
}

func (f *fakePayments) StationSummaries(context.Context) ([]models.StationRevenue, error) {
	return []models.StationRevenue{f.summary}, nil
}

func (f *fakePayments) StationSummary(_ context.Context, name string) (models.StationRevenue, error) {
	s := f.summary
	s.StationName = name
	return s, nil
}

func (f *fakePayments) MonthlyRevenue(_ context.Context, _ string, since time.Time) (map[string]decimal.Decimal, error) {
	f.since = since
	return f.monthly, nil
}

func (f *fakePayments) ConnectorCounts(context.Context, string) (map[string]int, error) {
	return f.counts, nil
}
