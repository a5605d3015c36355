package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	libconfig "everse/backend/libs/config"
	"everse/backend/services/revenue-service/internal/service"
)

// Config defines revenue service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"REVENUE_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"REVENUE_POSTGRES_DSN"`
	} `yaml:"database"`
	Tariff struct {
		DefaultPricePerKWh string `yaml:"defaultPricePerKwh" env:"REVENUE_DEFAULT_PRICE_PER_KWH"`
	} `yaml:"tariff"`
	Reports struct {
		HistoryMonths int `yaml:"historyMonths" env:"REVENUE_HISTORY_MONTHS"`
	} `yaml:"reports"`

	defaultPrice decimal.Decimal
}

// Load configuration from file/env.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8085"
	cfg.Tariff.DefaultPricePerKWh = "12.00"
	cfg.Reports.HistoryMonths = service.DefaultHistoryMonths

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}

	raw := strings.TrimSpace(cfg.Tariff.DefaultPricePerKWh)
	if raw == "" {
		raw = "0"
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("config: default price per kWh: %w", err)
	}
	if price.IsNegative() {
		return nil, errors.New("config: default price per kWh must not be negative")
	}
	cfg.defaultPrice = price
	return cfg, nil
}

// DefaultPrice is the fallback tariff; zero disables the fallback.
func (c *Config) DefaultPrice() decimal.Decimal {
	return c.defaultPrice
}

// HTTPAddress returns :port style string.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8085"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
