package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

type ServerConfig struct {
	Port int `toml:"port" env:"CM_SERVER_PORT"`
	// RateLimit is requests per minute per client IP; 0 disables limiting
	RateLimit int `toml:"rate_limit" env:"CM_SERVER_RATE_LIMIT"`
	// CSRF requires the double-submit token on state-changing requests
	CSRF bool `toml:"csrf" env:"CM_SERVER_CSRF"`
}

type StorageConfig struct {
	Driver     string `toml:"driver" env:"CM_STORAGE_DRIVER"` // memory, file, bolt, sqlite, redis
	Path       string `toml:"path" env:"CM_STORAGE_PATH"`
	QuotaBytes int64  `toml:"quota_bytes" env:"CM_STORAGE_QUOTA_BYTES"`
}

type SessionConfig struct {
	// Secondary is the driver of the tab-scoped session replica
	Secondary string   `toml:"secondary" env:"CM_SESSION_SECONDARY"`
	TTL       Duration `toml:"ttl" env:"CM_SESSION_TTL"`
}

type RedisConfig struct {
	Addr     string `toml:"addr" env:"CM_REDIS_ADDR"`
	Password string `toml:"password" env:"CM_REDIS_PASSWORD"`
	DB       int    `toml:"db" env:"CM_REDIS_DB"`
	Prefix   string `toml:"prefix" env:"CM_REDIS_PREFIX"`
}

// SessionPrefix is the key namespace of the redis session replica. It does
// not start with Prefix, so a scan of the primary namespace skips replica keys.
func (c RedisConfig) SessionPrefix() string {
	return "session:" + c.Prefix
}

type SeedConfig struct {
	Enabled  bool   `toml:"enabled" env:"CM_SEED_ENABLED"`
	Username string `toml:"username" env:"CM_SEED_USERNAME"`
	Password string `toml:"password" env:"CM_SEED_PASSWORD"`
}

type LogConfig struct {
	Level string `toml:"level" env:"CM_LOG_LEVEL"`
}

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Session SessionConfig `toml:"session"`
	Redis   RedisConfig   `toml:"redis"`
	Seed    SeedConfig    `toml:"seed"`
	Log     LogConfig     `toml:"log"`
}

// Duration is a time.Duration read from strings such as "24h"
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for both toml and env
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// Default returns the configuration used when no file is present
func Default() *Config {
	var config Config

	config.Server.Port = 3000
	config.Server.RateLimit = 100
	config.Server.CSRF = true

	config.Storage.Driver = "bolt"
	config.Storage.Path = "./data"
	config.Storage.QuotaBytes = 5 * 1024 * 1024

	config.Session.Secondary = "memory"
	config.Session.TTL = Duration{24 * time.Hour}

	config.Redis.Addr = "localhost:6379"
	config.Redis.Prefix = "campaignmanager:"

	config.Seed.Enabled = true
	config.Seed.Username = "demo"
	config.Seed.Password = "demo123"

	config.Log.Level = "info"

	return &config
}

// LoadConfig reads filepath over the defaults, then applies CM_* environment
// overrides. A missing file is not an error.
func LoadConfig(filepath string) (*Config, error) {
	config := Default()

	if filepath != "" {
		if _, err := toml.DecodeFile(filepath, config); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects unknown drivers and impossible values
func (c *Config) Validate() error {
	if !knownDriver(c.Storage.Driver) {
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if !knownDriver(c.Session.Secondary) {
		return fmt.Errorf("unknown session secondary driver %q", c.Session.Secondary)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Storage.QuotaBytes < 0 {
		return fmt.Errorf("quota_bytes must not be negative")
	}
	if c.Storage.Driver != "memory" && c.Storage.Driver != "redis" && c.Storage.Path == "" {
		return fmt.Errorf("storage path is required for driver %q", c.Storage.Driver)
	}
	// An empty prefix scans the whole database, session replica included
	if c.Storage.Driver == "redis" && c.Redis.Prefix == "" {
		return fmt.Errorf("redis prefix is required for the redis storage driver")
	}
	return nil
}

func knownDriver(driver string) bool {
	switch driver {
	case "memory", "file", "bolt", "sqlite", "redis":
		return true
	}
	return false
}
