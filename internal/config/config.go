// Package config parses and validates all application configuration from
// environment variables using caarlos0/env/v11.
//
// Call [Load] once at startup; pass the resulting [Config] to subcommands.
// Server exits if any field tagged "required" is missing.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration sourced from environment variables.
type Config struct {
	// ── Database ─────────────────────────────────────────────────────────────────
	DatabaseURL          string        `env:"DATABASE_URL,required"`
	DBMaxConns           int32         `env:"DB_MAX_CONNS"            envDefault:"25"`
	DBMaxConnIdleTime    time.Duration `env:"DB_MAX_CONN_IDLE_TIME"   envDefault:"5m"`
	DBStatementTimeoutMS int           `env:"DB_STATEMENT_TIMEOUT_MS" envDefault:"14000"`

	// ── Server ───────────────────────────────────────────────────────────────────
	ListenAddr             string `env:"LISTEN_ADDR"              envDefault:":8080"`
	AppEnv                 string `env:"APP_ENV"                  envDefault:"development"`
	ShutdownTimeoutSeconds int    `env:"SHUTDOWN_TIMEOUT_SECONDS" envDefault:"60"`

	// ── Sessions ─────────────────────────────────────────────────────────────────
	SessionSecret string        `env:"SESSION_SECRET,required"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	// Must be false for http://localhost; must be true in production with TLS.
	CookieSecure bool `env:"COOKIE_SECURE" envDefault:"false"`

	// ── Organization scoping ─────────────────────────────────────────────────────
	// OrgScope is the organization this deployment serves: an internal org
	// UUID or a human-readable slug. Empty disables org-scoped role
	// resolution; authorization then uses session-embedded roles only.
	OrgScope string `env:"ORG_SCOPE"`

	// ── Redirect policy ──────────────────────────────────────────────────────────
	// RedirectHome is where authenticated-but-forbidden browser requests land.
	RedirectHome string `env:"REDIRECT_HOME" envDefault:"/dashboard"`
	// LoginPath is the login entry point unauthenticated requests redirect to.
	LoginPath string `env:"LOGIN_PATH" envDefault:"/login"`

	// ── Rate limiting ────────────────────────────────────────────────────────────
	// RateLimitPerMinute and RateLimitBurst govern the per-IP limiter on the
	// session mint endpoint.
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"10"`
	RateLimitBurst     int           `env:"RATE_LIMIT_BURST"      envDefault:"10"`
	RateLimitEvictTTL  time.Duration `env:"RATE_LIMIT_EVICT_TTL"  envDefault:"15m"`

	// ── Logging ──────────────────────────────────────────────────────────────────
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load parses and returns Config from environment variables.
// Returns an error if any required field is missing.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsDevelopment reports whether the application is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
