package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentCompleted is the only status payments are recorded with.
const PaymentCompleted = "completed"

// Payment is the charge for one booking.
type Payment struct {
	ID            int64           `json:"id"`
	BookingID     string          `json:"bookingId"`
	StationName   string          `json:"stationName"`
	ConnectorType string          `json:"connectorType"`
	EnergyKWh     decimal.Decimal `json:"energyKwh"`
	PricePerKWh   decimal.Decimal `json:"pricePerKwh"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	UserID        int64           `json:"userId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// StationRevenue summarises a station's payments.
type StationRevenue struct {
	StationName  string          `json:"stationName"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	ActiveDays   int             `json:"activeDays"`
	Payments     int             `json:"payments"`
}

// MonthlyRevenue is one point of the revenue trend.
type MonthlyRevenue struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

// PortUsage is the share of payments made on one connector type, in percent.
type PortUsage struct {
	Type  string `json:"type"`
	Value int    `json:"value"`
}

// StationReport is the per-station revenue dashboard.
type StationReport struct {
	StationRevenue
	RevenueHistory []MonthlyRevenue `json:"revenueHistory"`
	PortUsage      []PortUsage      `json:"portUsage"`
}
