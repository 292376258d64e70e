// Package config provides configuration loading and validation for tourctl.
// Configuration is loaded from YAML files with environment variable overrides
// using a layered system: defaults -> base.yaml -> {profile}.yaml -> env vars.
package config

import "time"

// Config holds all configuration for the guided tours lifecycle manager.
type Config struct {
	Log       LogConfig       `koanf:"log"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Database  DatabaseConfig  `koanf:"database"`
	Authz     AuthzConfig     `koanf:"authz"`
	Identity  IdentityConfig  `koanf:"identity"`
	Events    EventsConfig    `koanf:"events"`
	I18n      I18nConfig      `koanf:"i18n"`
	Cache     CacheConfig     `koanf:"cache"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// DatabaseConfig selects and tunes the tour store.
type DatabaseConfig struct {
	Driver          string        `koanf:"driver"`
	DSN             string        `koanf:"dsn"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	PingTimeout     time.Duration `koanf:"ping_timeout"`
	AutoMigrate     bool          `koanf:"auto_migrate"`
}

// Authorization modes.
const (
	AuthzModeRBAC   = "rbac"
	AuthzModeRemote = "remote"
)

// AuthzConfig selects the authorization backend. In rbac mode Rules lists
// the minimum role required per action, optionally narrowed to one scope.
type AuthzConfig struct {
	Mode   string       `koanf:"mode"`
	Rules  []AuthzRule  `koanf:"rules"`
	Remote ClientConfig `koanf:"remote"`
}

// AuthzRule grants Action on Scope (every scope when empty) to actors holding
// Role or a higher one.
type AuthzRule struct {
	Action string `koanf:"action"`
	Scope  string `koanf:"scope"`
	Role   string `koanf:"role"`
}

// IdentityConfig holds the settings used to verify actor tokens.
type IdentityConfig struct {
	Secret string `koanf:"secret"`
	Issuer string `koanf:"issuer"`
}

// EventsConfig configures the NATS delete-event publisher.
type EventsConfig struct {
	Enabled       bool          `koanf:"enabled"`
	URL           string        `koanf:"url"`
	SubjectPrefix string        `koanf:"subject_prefix"`
	ConnectWait   time.Duration `koanf:"connect_wait"`
}

// I18nConfig locates the translation catalogues. A relative Dir resolves
// against the configuration directory.
type I18nConfig struct {
	Dir             string `koanf:"dir"`
	DefaultLanguage string `koanf:"default_language"`
}

// CacheConfig tunes the tour list cache. A zero TTL disables caching.
type CacheConfig struct {
	TTL time.Duration `koanf:"ttl"`
}

// ClientConfig holds downstream HTTP client settings.
type ClientConfig struct {
	BaseURL        string               `koanf:"base_url"`
	Timeout        time.Duration        `koanf:"timeout"`
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
	RateLimit      RateLimitConfig      `koanf:"rate_limit"`
}

// RetryConfig holds retry policy settings with exponential backoff.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"`
	InitialInterval time.Duration `koanf:"initial_interval"`
	MaxInterval     time.Duration `koanf:"max_interval"`
	Multiplier      float64       `koanf:"multiplier"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// RateLimitConfig holds client-side rate limiting. Zero RequestsPerSecond
// disables the limiter.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}
