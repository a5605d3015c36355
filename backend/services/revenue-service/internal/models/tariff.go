package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tariff is the price charged per kWh.
type Tariff struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	PricePerKWh decimal.Decimal `json:"pricePerKwh"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
