package config

const (
	defaultMaxOpenConns = 10
	defaultMaxIdleConns = 5

	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"log.level":  "info",
		"log.format": "json",

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "guidedtours",

		"database.driver":            DriverMemory,
		"database.dsn":               "",
		"database.max_open_conns":    defaultMaxOpenConns,
		"database.max_idle_conns":    defaultMaxIdleConns,
		"database.conn_max_lifetime": "30m",
		"database.ping_timeout":      "5s",
		"database.auto_migrate":      false,

		"authz.mode":                                   AuthzModeRBAC,
		"authz.remote.base_url":                        "http://localhost:8181",
		"authz.remote.timeout":                         "5s",
		"authz.remote.retry.max_attempts":              defaultRetryMaxAttempts,
		"authz.remote.retry.initial_interval":          "100ms",
		"authz.remote.retry.max_interval":              "2s",
		"authz.remote.retry.multiplier":                defaultRetryMultiplier,
		"authz.remote.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"authz.remote.circuit_breaker.timeout":         "30s",
		"authz.remote.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"authz.remote.rate_limit.requests_per_second":  0,
		"authz.remote.rate_limit.burst_size":           0,

		"identity.secret": "",
		"identity.issuer": "guidedtours",

		"events.enabled":        false,
		"events.url":            "nats://localhost:4222",
		"events.subject_prefix": "guidedtours",
		"events.connect_wait":   "2s",

		"i18n.dir":              "lang",
		"i18n.default_language": "en-GB",

		"cache.ttl": "30s",
	}
}
