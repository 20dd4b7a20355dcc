// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting for the court finder.
type Config struct {
	// Database
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:""`
	DBName     string `envconfig:"DB_NAME" default:"nyc_tennis"`
	DBSSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`

	// Scraping
	BaseURL       string        `envconfig:"RESERVATION_BASE_URL" default:"https://www.nycgovparks.org"`
	HTTPTimeout   time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	ScrapeTimeout time.Duration `envconfig:"SCRAPE_TIMEOUT" default:"2m"`
	ScrapeWorkers int           `envconfig:"SCRAPE_WORKERS" default:"4"`

	// Reconciliation. When true, rows for a (park, date) pair are purged
	// before the fresh batch is written; when false, slots absent from
	// the new batch are retained as history.
	PurgeStale bool `envconfig:"PURGE_STALE" default:"false"`

	// Logging
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`
}

// Load processes configuration from environment variables.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if c.ScrapeWorkers < 1 {
		return nil, fmt.Errorf("SCRAPE_WORKERS must be at least 1, got %d", c.ScrapeWorkers)
	}
	return &c, nil
}

// DSN returns the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}
