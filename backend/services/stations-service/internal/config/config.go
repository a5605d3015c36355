package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "everse/backend/libs/config"
	libredis "everse/backend/libs/redis"
	"everse/backend/services/stations-service/internal/placement"
	"everse/backend/services/stations-service/internal/service"
)

// Config defines stations service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"STATIONS_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"STATIONS_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		libredis.Options `yaml:",inline"`
		SlotsTTL         time.Duration `yaml:"slotsTTL" env:"STATIONS_SLOTS_CACHE_TTL"`
	} `yaml:"redis"`
	Bookings struct {
		Slots []string `yaml:"slots" env:"STATIONS_BOOKING_SLOTS"`
	} `yaml:"bookings"`
	Maintenance struct {
		IntervalDays int `yaml:"intervalDays" env:"STATIONS_SERVICE_INTERVAL_DAYS"`
	} `yaml:"maintenance"`
	Demand struct {
		Scale float64 `yaml:"scale" env:"STATIONS_DEMAND_SCALE"`
	} `yaml:"demand"`
	Placement struct {
		placement.Params `yaml:",inline"`
		Seed             uint64 `yaml:"seed" env:"STATIONS_PLACEMENT_SEED"`
	} `yaml:"placement"`
}

// Load reads configuration using the shared config loader.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8082"
	cfg.Redis.SlotsTTL = 10 * time.Minute
	cfg.Bookings.Slots = append([]string(nil), service.DefaultSlots...)
	cfg.Maintenance.IntervalDays = service.DefaultServiceIntervalDays
	cfg.Demand.Scale = service.DefaultDemandScale
	cfg.Placement.Params = placement.DefaultParams()

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	if cfg.Database.DSN == "" {
		return nil, errors.New("config: database DSN is required")
	}
	if len(cfg.Bookings.Slots) == 0 {
		return nil, errors.New("config: at least one booking slot is required")
	}
	return cfg, nil
}

// HTTPAddress ensures we always return host:port formatted string.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8082"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
