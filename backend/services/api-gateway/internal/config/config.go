package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "everse/backend/libs/config"
)

// Config defines gateway configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"API_GATEWAY_HTTP_PORT"`
	} `yaml:"http"`
	JWT struct {
		Secret string `yaml:"secret" env:"API_GATEWAY_JWT_SECRET"`
	} `yaml:"jwt"`
	Services struct {
		AuthURL     string `yaml:"authUrl" env:"AUTH_SERVICE_URL"`
		StationsURL string `yaml:"stationsUrl" env:"STATIONS_SERVICE_URL"`
		RoutesURL   string `yaml:"routesUrl" env:"ROUTE_ENGINE_URL"`
		AssistURL   string `yaml:"assistUrl" env:"ASSIST_SERVICE_URL"`
		RevenueURL  string `yaml:"revenueUrl" env:"REVENUE_SERVICE_URL"`
	} `yaml:"services"`
	HTTPClient struct {
		Timeout time.Duration `yaml:"timeout" env:"API_GATEWAY_HTTP_TIMEOUT"`
	} `yaml:"httpClient"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins" env:"CORS_ALLOWED_ORIGINS"`
	} `yaml:"cors"`
	RateLimit struct {
		RPS   float64 `yaml:"rps" env:"RATE_LIMIT_RPS"`
		Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST"`
	} `yaml:"rateLimit"`
}

// Load configuration via shared helper.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8080"
	cfg.Services.AuthURL = "http://localhost:8081"
	cfg.Services.StationsURL = "http://localhost:8082"
	cfg.Services.RoutesURL = "http://localhost:8083"
	cfg.Services.AssistURL = "http://localhost:8084"
	cfg.Services.RevenueURL = "http://localhost:8085"
	cfg.HTTPClient.Timeout = 15 * time.Second
	cfg.CORS.AllowedOrigins = []string{"http://localhost:5173"}
	cfg.RateLimit.RPS = 10
	cfg.RateLimit.Burst = 20

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return errors.New("config: jwt secret required")
	}
	for name, u := range map[string]string{
		"auth":     c.Services.AuthURL,
		"stations": c.Services.StationsURL,
		"routes":   c.Services.RoutesURL,
		"assist":   c.Services.AssistURL,
		"revenue":  c.Services.RevenueURL,
	} {
		if strings.TrimSpace(u) == "" {
			return fmt.Errorf("config: %s service url required", name)
		}
	}
	if c.RateLimit.RPS <= 0 {
		return errors.New("config: rate limit rps must be positive")
	}
	return nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
