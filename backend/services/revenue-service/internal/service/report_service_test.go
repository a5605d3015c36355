package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"everse/backend/services/revenue-service/internal/models"
)

func TestStationReportZeroFillsHistory(t *testing.T) {
	payments := &fakePayments{
		summary: models.StationRevenue{TotalRevenue: decimal.RequireFromString("1500.50"), ActiveDays: 3, Payments: 4},
		monthly: map[string]decimal.Decimal{
			"2026-01": decimal.RequireFromString("500.50"),
			"2026-03": decimal.NewFromInt(1000),
		},
		counts: map[string]int{"CCS": 3, "Type2": 1},
	}
	svc := NewReportService(payments, 0)
	svc.now = func() time.Time { return time.Date(2026, 3, 18, 8, 0, 0, 0, time.UTC) }

	report, err := svc.Station(context.Background(), "Station A", 4)
	require.NoError(t, err)

	assert.Equal(t, "Station A", report.StationName)
	assert.Equal(t, 3, report.ActiveDays)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), payments.since)

	require.Len(t, report.RevenueHistory, 4)
	months := []string{"Dec", "Jan", "Feb", "Mar"}
	revenue := []string{"0", "500.5", "0", "1000"}
	for i, m := range report.RevenueHistory {
		assert.Equal(t, months[i], m.Month)
		assert.Equal(t, revenue[i], m.Revenue.String())
	}

	assert.Equal(t, []models.PortUsage{{Type: "CCS", Value: 75}, {Type: "Type2", Value: 25}}, report.PortUsage)
}

func TestStationReportDefaultsAndValidation(t *testing.T) {
	svc := NewReportService(&fakePayments{}, 0)

	report, err := svc.Station(context.Background(), "Quiet Station", 0)
	require.NoError(t, err)
	assert.Len(t, report.RevenueHistory, DefaultHistoryMonths)
	assert.Empty(t, report.PortUsage)

	_, err = svc.Station(context.Background(), " ", 0)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	_, err = svc.Station(context.Background(), "A", 37)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestPortUsageSumsToHundred(t *testing.T) {
	cases := []map[string]int{
		{"CCS": 1, "Type2": 1, "CHAdeMO": 1},
		{"CCS": 2, "Type2": 5, "CHAdeMO": 7, "Bharat AC": 11},
		{"CCS": 1},
		{"A": 1, "B": 1, "C": 1, "D": 1, "E": 1, "F": 1, "G": 1},
	}
	for _, counts := range cases {
		usage := portUsage(counts)
		sum := 0
		for _, u := range usage {
			sum += u.Value
		}
		assert.Equal(t, 100, sum, "%v", counts)
		assert.Len(t, usage, len(counts))
	}
}

func TestPortUsageEvenSplit(t *testing.T) {
	usage := portUsage(map[string]int{"CCS": 1, "Type2": 1, "CHAdeMO": 1})
	// 33.3 each; the extra point goes to the first name alphabetically
	assert.Equal(t, []models.PortUsage{
		{Type: "CCS", Value: 34},
		{Type: "CHAdeMO", Value: 33},
		{Type: "Type2", Value: 33},
	}, usage)
}
