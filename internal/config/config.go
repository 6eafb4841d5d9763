package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "evcharge/libs/config"
)

// Config represents reservation service configuration loaded from YAML/env.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"EVCHARGE_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"EVCHARGE_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"EVCHARGE_REDIS_ADDR"`
		Password string `yaml:"password" env:"EVCHARGE_REDIS_PASSWORD"`
	} `yaml:"redis"`
	JWT struct {
		Secret           string `yaml:"secret" env:"EVCHARGE_JWT_SECRET"`
		ExpiresInMinutes int    `yaml:"expiresInMinutes" env:"EVCHARGE_JWT_EXPIRES_MINUTES"`
	} `yaml:"jwt"`
	Stream struct {
		PingInterval time.Duration `yaml:"pingInterval" env:"EVCHARGE_STREAM_PING_INTERVAL"`
	} `yaml:"stream"`
}

// Load reads configuration using the shared config loader.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8080"
	cfg.Redis.Addr = "localhost:6379"
	cfg.JWT.ExpiresInMinutes = 60
	cfg.Stream.PingInterval = 30 * time.Second

	if err := libconfig.Load(cfg); err != nil {
		return nil, err
	}

	if cfg.Database.DSN == "" {
		return nil, errors.New("config: database DSN is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("config: jwt secret is required")
	}
	if cfg.JWT.ExpiresInMinutes <= 0 {
		cfg.JWT.ExpiresInMinutes = 60
	}
	if cfg.Stream.PingInterval <= 0 {
		cfg.Stream.PingInterval = 30 * time.Second
	}

	return cfg, nil
}

// HTTPAddress ensures we always return host:port formatted string.
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

// JWTExpiration converts configured expiry to duration.
func (c *Config) JWTExpiration() time.Duration {
	return time.Duration(c.JWT.ExpiresInMinutes) * time.Minute
}
