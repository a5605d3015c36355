package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"everse/backend/services/revenue-service/internal/models"
	"everse/backend/services/revenue-service/internal/repository"
)

func newPaymentService(payments *fakePayments, price string) *PaymentService {
	tariffs := NewTariffService(&fakeTariffs{}, decimal.RequireFromString(price), zap.NewNop())
	svc := NewPaymentService(payments, tariffs, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestCreatePaymentRoundsAmount(t *testing.T) {
	payments := &fakePayments{}
	svc := newPaymentService(payments, "12.345")

	p, err := svc.Create(context.Background(), CreatePaymentInput{
		BookingID:     "42",
		StationName:   "Station A",
		ConnectorType: "CCS",
		EnergyKWh:     decimal.RequireFromString("7.5"),
	})
	require.NoError(t, err)

	// 7.5 * 12.345 = 92.5875
	assert.Equal(t, "92.59", p.Amount.StringFixed(2))
	assert.Equal(t, "12.345", p.PricePerKWh.String())
	assert.Equal(t, models.PaymentCompleted, p.Status)
	assert.Equal(t, int64(1), p.ID)
	require.Len(t, payments.created, 1)
}

func TestCreatePaymentValidation(t *testing.T) {
	svc := newPaymentService(&fakePayments{}, "10")
	valid := CreatePaymentInput{BookingID: "1", StationName: "A", ConnectorType: "CCS", EnergyKWh: decimal.NewFromInt(1)}

	cases := map[string]func(in *CreatePaymentInput){
		"missing booking":   func(in *CreatePaymentInput) { in.BookingID = "" },
		"missing station":   func(in *CreatePaymentInput) { in.StationName = " " },
		"missing connector": func(in *CreatePaymentInput) { in.ConnectorType = "" },
		"zero energy":       func(in *CreatePaymentInput) { in.EnergyKWh = decimal.Zero },
		"negative energy":   func(in *CreatePaymentInput) { in.EnergyKWh = decimal.NewFromInt(-3) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := valid
			mutate(&in)
			_, err := svc.Create(context.Background(), in)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestCreatePaymentPropagatesDuplicate(t *testing.T) {
	svc := newPaymentService(&fakePayments{err: repository.ErrDuplicatePayment}, "10")
	_, err := svc.Create(context.Background(), CreatePaymentInput{
		BookingID: "1", StationName: "A", ConnectorType: "CCS", EnergyKWh: decimal.NewFromInt(1),
	})
	assert.True(t, errors.Is(err, repository.ErrDuplicatePayment))
}
