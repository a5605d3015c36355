package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "everse/backend/libs/config"
	libredis "everse/backend/libs/redis"
	"everse/backend/services/assist-service/internal/events"
)

// Config defines assist service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"ASSIST_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"ASSIST_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		libredis.Options `yaml:",inline"`
		Channel          string `yaml:"channel" env:"ASSIST_EVENTS_CHANNEL"`
	} `yaml:"redis"`
	WebSocket struct {
		WriteTimeout   time.Duration `yaml:"writeTimeout" env:"ASSIST_WS_WRITE_TIMEOUT"`
		PingInterval   time.Duration `yaml:"pingInterval" env:"ASSIST_WS_PING_INTERVAL"`
		AllowedOrigins []string      `yaml:"allowedOrigins" env:"ASSIST_WS_ALLOWED_ORIGINS"`
	} `yaml:"websocket"`
}

// Load reads configuration using the shared config loader.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8084"
	cfg.Redis.Channel = events.DefaultChannel
	cfg.WebSocket.WriteTimeout = 10 * time.Second
	cfg.WebSocket.PingInterval = 30 * time.Second

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	if cfg.Database.DSN == "" {
		return nil, errors.New("config: database DSN is required")
	}
	return cfg, nil
}

// HTTPAddress ensures we always return host:port formatted string.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8084"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
