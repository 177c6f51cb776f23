// Package config loads server settings from built-in defaults, an optional
// YAML file and SHORTMARK_* environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the full server configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	ShortCode ShortCodeConfig `yaml:"short_code"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"SHORTMARK_ADDR"`
	BaseURL         string        `yaml:"base_url" env:"SHORTMARK_BASE_URL"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHORTMARK_SHUTDOWN_TIMEOUT"`
	Swagger         bool          `yaml:"swagger" env:"SHORTMARK_SWAGGER"`
}

type DatabaseConfig struct {
	Driver        string        `yaml:"driver" env:"SHORTMARK_DB_DRIVER"`
	DSN           string        `yaml:"dsn" env:"SHORTMARK_DB_DSN"`
	MaxOpenConns  int           `yaml:"max_open_conns" env:"SHORTMARK_DB_MAX_OPEN_CONNS"`
	SlowThreshold time.Duration `yaml:"slow_threshold" env:"SHORTMARK_DB_SLOW_THRESHOLD"`
	LogQueries    bool          `yaml:"log_queries" env:"SHORTMARK_DB_LOG_QUERIES"`
}

// RedisConfig configures the optional resolve cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `yaml:"addr" env:"SHORTMARK_REDIS_ADDR"`
	Username string        `yaml:"username" env:"SHORTMARK_REDIS_USERNAME"`
	Password string        `yaml:"password" env:"SHORTMARK_REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"SHORTMARK_REDIS_DB"`
	TTL      time.Duration `yaml:"ttl" env:"SHORTMARK_REDIS_TTL"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"SHORTMARK_JWT_SECRET"`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"SHORTMARK_TOKEN_TTL"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"SHORTMARK_LOG_LEVEL"`
	Pretty bool   `yaml:"pretty" env:"SHORTMARK_LOG_PRETTY"`
}

type ShortCodeConfig struct {
	MaxAttempts       int `yaml:"max_attempts" env:"SHORTMARK_SHORTCODE_MAX_ATTEMPTS"`
	MaxInsertAttempts int `yaml:"max_insert_attempts" env:"SHORTMARK_SHORTCODE_MAX_INSERT_ATTEMPTS"`
}

// Default returns the configuration used when nothing else is set
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			BaseURL:         "http://localhost:8080",
			ShutdownTimeout: 10 * time.Second,
			Swagger:         true,
		},
		Database: DatabaseConfig{
			Driver:        "sqlite",
			DSN:           "shortmark.db",
			SlowThreshold: 200 * time.Millisecond,
		},
		Redis: RedisConfig{
			TTL: time.Hour,
		},
		Auth: AuthConfig{
			// Development default only; set SHORTMARK_JWT_SECRET in production
			JWTSecret: "shortmark-dev-secret-change-in-production",
			TokenTTL:  24 * time.Hour,
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
		ShortCode: ShortCodeConfig{
			MaxAttempts:       32,
			MaxInsertAttempts: 5,
		},
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and the environment are used.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be > 0, got %v", c.Auth.TokenTTL)
	}
	if c.ShortCode.MaxAttempts <= 0 {
		return fmt.Errorf("short_code.max_attempts must be > 0, got %d", c.ShortCode.MaxAttempts)
	}
	if c.ShortCode.MaxInsertAttempts <= 0 {
		return fmt.Errorf("short_code.max_insert_attempts must be > 0, got %d", c.ShortCode.MaxInsertAttempts)
	}
	if c.Redis.Addr != "" && c.Redis.TTL <= 0 {
		return fmt.Errorf("redis.ttl must be > 0 when redis is enabled, got %v", c.Redis.TTL)
	}
	return nil
}

// Redacted returns a copy safe to log
func (c *Config) Redacted() Config {
	cp := *c
	if cp.Auth.JWTSecret != "" {
		cp.Auth.JWTSecret = "***REDACTED***"
	}
	if cp.Redis.Password != "" {
		cp.Redis.Password = "***REDACTED***"
	}
	return cp
}
