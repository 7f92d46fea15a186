package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// MLB Stats API
	MLBAPIBaseURL string        `envconfig:"MLB_API_BASE_URL" default:"https://statsapi.mlb.com/api/v1"`
	MLBAPITimeout time.Duration `envconfig:"MLB_API_TIMEOUT" default:"30s"`

	// Database
	DatabaseHost     string `envconfig:"DATABASE_HOST" default:"localhost"`
	DatabasePort     int    `envconfig:"DATABASE_PORT" default:"5432"`
	DatabaseName     string `envconfig:"DATABASE_NAME" default:"hrderby"`
	DatabaseUser     string `envconfig:"DATABASE_USER" default:"hrderby_user"`
	DatabasePassword string `envconfig:"DATABASE_PASSWORD" required:"true"`
	DatabaseSSLMode  string `envconfig:"DATABASE_SSL_MODE" default:"disable"`

	// Redis (optional box score cache; disabled when REDIS_HOST is empty)
	RedisHost     string `envconfig:"REDIS_HOST" default:""`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Contest defaults
	SeasonYear      int `envconfig:"SEASON_YEAR" default:"0"`
	MinHomeRuns     int `envconfig:"MIN_HOME_RUNS" default:"20"`
	LeaderboardPage int `envconfig:"LEADERBOARD_PAGE_SIZE" default:"100"`

	// Application
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Worker
	DailyUpdateCron string `envconfig:"DAILY_UPDATE_CRON" default:"0 6 * * *"`
	MetricsPort     int    `envconfig:"METRICS_PORT" default:"9090"`

	// Caching TTL
	BoxScoreCacheTTL time.Duration `envconfig:"CACHE_TTL_BOX_SCORES" default:"6h"`
}

// Load loads configuration from environment variables
// It first attempts to load from a .env file if one is present
func Load() (*Config, error) {
	// Try to load .env file (ignore error if doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.DatabasePassword == "" {
		return fmt.Errorf("DATABASE_PASSWORD is required")
	}

	if c.MinHomeRuns < 0 {
		return fmt.Errorf("MIN_HOME_RUNS must not be negative")
	}

	if c.LeaderboardPage <= 0 {
		return fmt.Errorf("LEADERBOARD_PAGE_SIZE must be positive")
	}

	return nil
}

// DefaultSeasonYear returns the configured season year, falling back to the
// current calendar year when SEASON_YEAR is unset
func (c *Config) DefaultSeasonYear() int {
	if c.SeasonYear > 0 {
		return c.SeasonYear
	}
	return time.Now().Year()
}

// RedisEnabled reports whether a Redis cache endpoint was configured
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// RedisAddr returns the Redis address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// MustLoad loads configuration or exits on error
// Use this in main() where we want to fail fast
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
