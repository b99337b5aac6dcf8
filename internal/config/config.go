// Package config loads application settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Supported DATABASE_DRIVER values.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds the application settings.
type Config struct {
	AppEnv         string
	AppPort        string
	DatabaseDriver string
	DatabaseDSN    string
	SessionSecret  string
	SessionTTL     time.Duration
	RabbitMQURL    string // empty disables catalogue events
	LogLevel       string
	CSRFEnabled    bool
}

// IsDevelopment reports whether APP_ENV is "development".
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// SetDefaults registers the default value of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "mechadex.db")
	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CSRF_ENABLED", true)
}

// Load reads the configuration from v, which should already have its
// sources (environment, files) attached.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		AppEnv:         v.GetString("APP_ENV"),
		AppPort:        v.GetString("APP_PORT"),
		DatabaseDriver: v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		SessionSecret:  v.GetString("SESSION_SECRET"),
		SessionTTL:     v.GetDuration("SESSION_TTL"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		CSRFEnabled:    v.GetBool("CSRF_ENABLED"),
	}
	if cfg.SessionSecret == "" && cfg.IsDevelopment() {
		cfg.SessionSecret = "development-only-secret"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv loads the configuration from environment variables.
func FromEnv() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	return Load(v)
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite, DriverPostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("DATABASE_DSN is required for driver %s", c.DatabaseDriver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required outside development")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.AppPort == "" {
		return fmt.Errorf("APP_PORT is required")
	}
	return nil
}
