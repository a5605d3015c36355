package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "everse/backend/libs/config"
	libredis "everse/backend/libs/redis"
	"everse/backend/services/route-engine/internal/service"
)

// Config defines route engine configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"ROUTES_HTTP_PORT"`
	} `yaml:"http"`
	ORS struct {
		BaseURL string        `yaml:"baseURL" env:"ORS_BASE_URL"`
		APIKey  string        `yaml:"apiKey" env:"ORS_API_KEY"`
		Timeout time.Duration `yaml:"timeout" env:"ORS_TIMEOUT"`
	} `yaml:"ors"`
	Nominatim struct {
		BaseURL   string        `yaml:"baseURL" env:"NOMINATIM_BASE_URL"`
		UserAgent string        `yaml:"userAgent" env:"NOMINATIM_USER_AGENT"`
		RPS       float64       `yaml:"rps" env:"NOMINATIM_RPS"`
		Timeout   time.Duration `yaml:"timeout" env:"NOMINATIM_TIMEOUT"`
	} `yaml:"nominatim"`
	Redis struct {
		libredis.Options `yaml:",inline"`
		RoutesTTL        time.Duration `yaml:"routesTTL" env:"ROUTES_CACHE_TTL"`
		GeocodeTTL       time.Duration `yaml:"geocodeTTL" env:"GEOCODE_CACHE_TTL"`
	} `yaml:"redis"`
	MaxWaypoints int `yaml:"maxWaypoints" env:"ROUTES_MAX_WAYPOINTS"`
}

// Load reads configuration using the shared config loader.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8083"
	cfg.ORS.BaseURL = "https://api.openrouteservice.org"
	cfg.ORS.Timeout = 10 * time.Second
	cfg.Nominatim.BaseURL = "https://nominatim.openstreetmap.org"
	cfg.Nominatim.UserAgent = "everse-route-engine/1.0"
	cfg.Nominatim.RPS = 1
	cfg.Nominatim.Timeout = 5 * time.Second
	cfg.Redis.RoutesTTL = 15 * time.Minute
	cfg.Redis.GeocodeTTL = 24 * time.Hour
	cfg.MaxWaypoints = service.DefaultMaxWaypoints

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.ORS.APIKey) == "" {
		return nil, errors.New("config: ORS API key is required")
	}
	if cfg.ORS.BaseURL == "" || cfg.Nominatim.BaseURL == "" {
		return nil, errors.New("config: upstream base URLs are required")
	}
	return cfg, nil
}

// HTTPAddress ensures we always return host:port formatted string.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8083"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
