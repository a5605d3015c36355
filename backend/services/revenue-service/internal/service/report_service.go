package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"everse/backend/services/revenue-service/internal/models"
	"everse/backend/services/revenue-service/internal/repository"
)

// DefaultHistoryMonths is how many months the revenue trend covers.
const DefaultHistoryMonths = 6

const maxHistoryMonths = 36

// ReportService builds revenue dashboards.
type ReportService struct {
	payments PaymentRepository
	months   int
	now      func() time.Time
}

// NewReportService builds service. months <= 0 falls back to DefaultHistoryMonths.
func NewReportService(payments PaymentRepository, months int) *ReportService {
	if months <= 0 {
		months = DefaultHistoryMonths
	}
	return &ReportService{payments: payments, months: months, now: time.Now}
}

// Stations lists revenue totals for every station with payments.
func (s *ReportService) Stations(ctx context.Context) ([]models.StationRevenue, error) {
	return s.payments.StationSummaries(ctx)
}

// Station returns the dashboard of one station. months <= 0 uses the configured default.
func (s *ReportService) Station(ctx context.Context, stationName string, months int) (*models.StationReport, error) {
	stationName = strings.TrimSpace(stationName)
	if stationName == "" {
		return nil, invalid("station name is required")
	}
	if months <= 0 {
		months = s.months
	}
	if months > maxHistoryMonths {
		return nil, invalid("months must be at most 36")
	}

	summary, err := s.payments.StationSummary(ctx, stationName)
	if err != nil {
		return nil, err
	}

	start := monthStart(s.now()).AddDate(0, -(months - 1), 0)
	totals, err := s.payments.MonthlyRevenue(ctx, stationName, start)
	if err != nil {
		return nil, err
	}

	counts, err := s.payments.ConnectorCounts(ctx, stationName)
	if err != nil {
		return nil, err
	}

	return &models.StationReport{
		StationRevenue: summary,
		RevenueHistory: history(start, months, totals),
		PortUsage:      portUsage(counts),
	}, nil
}

func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// history lists months oldest first, zero-filling months without payments.
func history(start time.Time, months int, totals map[string]decimal.Decimal) []models.MonthlyRevenue {
	out := make([]models.MonthlyRevenue, 0, months)
	for i := 0; i < months; i++ {
		m := start.AddDate(0, i, 0)
		revenue, ok := totals[m.Format(repository.MonthKeyLayout)]
		if !ok {
			revenue = decimal.Zero
		}
		out = append(out, models.MonthlyRevenue{Month: m.Format("Jan"), Revenue: revenue})
	}
	return out
}

// portUsage converts counts to whole percentages that sum to exactly 100 using the
// largest remainder method. Output is ordered by share, then connector name.
func portUsage(counts map[string]int) []models.PortUsage {
	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return []models.PortUsage{}
	}

	type share struct {
		connector string
		percent   int
		remainder int
	}
	shares := make([]share, 0, len(counts))
	assigned := 0
	for connector, n := range counts {
		p := n * 100 / total
		shares = append(shares, share{connector: connector, percent: p, remainder: n * 100 % total})
		assigned += p
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].remainder != shares[j].remainder {
			return shares[i].remainder > shares[j].remainder
		}
		return shares[i].connector < shares[j].connector
	})
	for i := 0; assigned < 100; i++ {
		shares[i%len(shares)].percent++
		assigned++
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].percent != shares[j].percent {
			return shares[i].percent > shares[j].percent
		}
		return shares[i].connector < shares[j].connector
	})
	out := make([]models.PortUsage, 0, len(shares))
	for _, sh := range shares {
		out = append(out, models.PortUsage{Type: sh.connector, Value: sh.percent})
	}
	return out
}
