package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/aussiebroadwan/contacts/pkg/httpx"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	// DatabaseDriver selects the store: sqlite (DatabaseFile) or postgres
	// (DatabaseURL).
	DatabaseDriver string `env:"CONTACTS_DATABASE_DRIVER" envDefault:"sqlite"`
	DatabaseFile   string `env:"CONTACTS_DATABASE_FILE" envDefault:"contacts.db"`
	DatabaseURL    string `env:"CONTACTS_DATABASE_URL"`

	// PepperFile holds the password pepper. It is created when missing.
	PepperFile string `env:"CONTACTS_PEPPER_FILE" envDefault:"pepper"`

	Issuer    string `env:"CONTACTS_JWT_ISSUER" envDefault:"contacts"`
	Algorithm string `env:"CONTACTS_JWT_ALGORITHM" envDefault:"HS256"`

	// Secret is the HS256 signing secret. When empty, random keys are
	// generated and tokens do not survive a restart.
	Secret   string        `env:"CONTACTS_JWT_SECRET"`
	NumKeys  int           `env:"CONTACTS_NUM_KEYS" envDefault:"1"`
	TokenTTL time.Duration `env:"CONTACTS_TOKEN_TTL" envDefault:"1h"`

	Env                  string        `env:"ENV" envDefault:"dev"`
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat            string        `env:"LOG_FORMAT" envDefault:"json"`
	Port                 int           `env:"PORT" envDefault:"3000"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`

	RateLimits RateLimitsConfig `envPrefix:"RATELIMIT_"`
}

// RateLimitsConfig overrides the httpx rate limit profiles. Zero values keep
// the defaults.
type RateLimitsConfig struct {
	Strict   RateLimitOverride `envPrefix:"STRICT_"`
	Moderate RateLimitOverride `envPrefix:"MODERATE_"`
	Lenient  RateLimitOverride `envPrefix:"LENIENT_"`
	Public   RateLimitOverride `envPrefix:"PUBLIC_"`
}

type RateLimitOverride struct {
	Requests  int `env:"REQUESTS"`
	WindowSec int `env:"WINDOW_SEC"`
	Burst     int `env:"BURST"`
}

func (o RateLimitOverride) apply(base httpx.RateLimitConfig) httpx.RateLimitConfig {
	return base.Override(o.Requests, o.WindowSec, o.Burst)
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects combinations the application cannot start with.
func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: CONTACTS_DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("config: unsupported database driver %q", c.DatabaseDriver)
	}

	if c.Issuer == "" {
		return fmt.Errorf("config: CONTACTS_JWT_ISSUER must not be empty")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("config: CONTACTS_TOKEN_TTL must be positive")
	}
	return nil
}
