package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Anchor policies accepted by MARKET_ANCHOR_POLICY.
const (
	PolicyOpenGated   = "open-gated"
	PolicyCalendarDay = "calendar-day"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system:
// the HTTP server, the upstream dividends API, the market calendar, the detail table
// and the Postgres database used by archive mode.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	UPSTREAM_BASE_URL=http://localhost:8000
//	UPSTREAM_DAYS=14
//	MARKET_TIMEZONE=America/New_York
//	MARKET_OPEN=09:30
//	MARKET_ANCHOR_POLICY=open-gated
//	POSTGRES_HOST=localhost
//	POSTGRES_DB=exdivpulse
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Upstream UpstreamConfig // Dividends API the dashboard reads from
	Market   MarketConfig   // Market calendar used by the window resolver
	Table    TableConfig    // Detail table presentation
	Postgres PostgresConfig // PostgreSQL connection settings (archive mode)
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string // The TCP port the HTTP server will listen on (e.g., "8080")
	RateLimitPerMinute int    // Per-IP request budget; 0 disables the limiter
}

// UpstreamConfig describes the collaborator API.
//
// BaseURL is the API host; the client appends "/api/dividends/upcoming/ex".
type UpstreamConfig struct {
	BaseURL      string
	Days         int
	IncludeToday bool
	Timeout      time.Duration
}

// MarketConfig drives the calendar window resolver.
type MarketConfig struct {
	Timezone string
	Open     string // HH:MM wall clock in Timezone
	Policy   string // PolicyOpenGated or PolicyCalendarDay
}

// TableConfig holds presentation knobs for the ticker table.
type TableConfig struct {
	PageSize int
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// Load builds a Config by reading from a .env file or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// The result is returned as a value and injected by the caller; nothing is stored
// at package level.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 60)

	v.SetDefault("UPSTREAM_BASE_URL", "http://localhost:8000")
	v.SetDefault("UPSTREAM_DAYS", 14)
	v.SetDefault("UPSTREAM_INCLUDE_TODAY", false)
	v.SetDefault("UPSTREAM_TIMEOUT", "15s")

	v.SetDefault("MARKET_TIMEZONE", "America/New_York")
	v.SetDefault("MARKET_OPEN", "09:30")
	v.SetDefault("MARKET_ANCHOR_POLICY", PolicyOpenGated)

	v.SetDefault("TABLE_PAGE_SIZE", 10)

	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", 5432)
	v.SetDefault("POSTGRES_USER", "postgres")
	v.SetDefault("POSTGRES_PASSWORD", "postgres")
	v.SetDefault("POSTGRES_DB", "exdivpulse")
	v.SetDefault("POSTGRES_SSLMODE", "disable")

	// Optionally read from .env if present (common in local dev)
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()

	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port:               v.GetString("SERVER_PORT"),
			RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Upstream: UpstreamConfig{
			BaseURL:      strings.TrimRight(v.GetString("UPSTREAM_BASE_URL"), "/"),
			Days:         v.GetInt("UPSTREAM_DAYS"),
			IncludeToday: v.GetBool("UPSTREAM_INCLUDE_TODAY"),
			Timeout:      v.GetDuration("UPSTREAM_TIMEOUT"),
		},
		Market: MarketConfig{
			Timezone: v.GetString("MARKET_TIMEZONE"),
			Open:     v.GetString("MARKET_OPEN"),
			Policy:   strings.ToLower(v.GetString("MARKET_ANCHOR_POLICY")),
		},
		Table: TableConfig{
			PageSize: v.GetInt("TABLE_PAGE_SIZE"),
		},
		Postgres: PostgresConfig{
			Host:     v.GetString("POSTGRES_HOST"),
			Port:     v.GetInt("POSTGRES_PORT"),
			User:     v.GetString("POSTGRES_USER"),
			Password: v.GetString("POSTGRES_PASSWORD"),
			DBName:   v.GetString("POSTGRES_DB"),
			SSLMode:  v.GetString("POSTGRES_SSLMODE"),
		},
	}

	cfg.Postgres.URL = cfg.Postgres.DSN()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DSN renders the PostgreSQL connection string used by database/sql.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// Location loads the configured market timezone.
func (m MarketConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(m.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load market timezone %q: %w", m.Timezone, err)
	}
	return loc, nil
}

// Validate ensures required settings are present and well formed.
//
// Missing keys are collected and reported together; malformed values
// (timezone, open time, policy) are reported individually.
func (c *Config) Validate() error {
	var missing []string

	if c.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if c.Upstream.BaseURL == "" {
		missing = append(missing, "UPSTREAM_BASE_URL")
	}
	if c.Market.Timezone == "" {
		missing = append(missing, "MARKET_TIMEZONE")
	}
	if c.Market.Open == "" {
		missing = append(missing, "MARKET_OPEN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missing)
	}

	if c.Upstream.Days < 1 {
		return fmt.Errorf("UPSTREAM_DAYS must be positive, got %d", c.Upstream.Days)
	}
	if _, err := c.Market.Location(); err != nil {
		return err
	}
	if _, err := time.Parse("15:04", c.Market.Open); err != nil {
		return fmt.Errorf("MARKET_OPEN must be HH:MM, got %q: %w", c.Market.Open, err)
	}
	switch c.Market.Policy {
	case PolicyOpenGated, PolicyCalendarDay:
	default:
		return fmt.Errorf("MARKET_ANCHOR_POLICY must be %q or %q, got %q", PolicyOpenGated, PolicyCalendarDay, c.Market.Policy)
	}
	if c.Table.PageSize < 1 {
		c.Table.PageSize = 10
	}
	if c.Server.RateLimitPerMinute < 0 {
		c.Server.RateLimitPerMinute = 60
	}
	return nil
}
