package config

import (
	"errors"
	"fmt"
)

var roleNames = map[string]bool{"viewer": true, "editor": true, "admin": true}

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Log.validate(),
		c.Telemetry.validate(),
		c.Database.validate(),
		c.Authz.validate(),
		c.Events.validate(),
		c.I18n.validate(),
		c.Cache.validate(),
	)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (d *DatabaseConfig) validate() error {
	var errs []error

	switch d.Driver {
	case DriverMemory:
	case DriverPostgres:
		if d.DSN == "" {
			errs = append(errs, errors.New("database.dsn must not be empty when driver is postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("database.driver must be one of: postgres, memory; got %q", d.Driver))
	}
	if d.MaxOpenConns < 0 {
		errs = append(errs, fmt.Errorf("database.max_open_conns must be >= 0, got %d", d.MaxOpenConns))
	}
	if d.MaxIdleConns < 0 {
		errs = append(errs, fmt.Errorf("database.max_idle_conns must be >= 0, got %d", d.MaxIdleConns))
	}
	if d.PingTimeout <= 0 {
		errs = append(errs, errors.New("database.ping_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (a *AuthzConfig) validate() error {
	var errs []error

	switch a.Mode {
	case AuthzModeRBAC:
		for i, r := range a.Rules {
			if r.Action == "" {
				errs = append(errs, fmt.Errorf("authz.rules[%d].action must not be empty", i))
			}
			if !roleNames[r.Role] {
				errs = append(errs, fmt.Errorf("authz.rules[%d].role must be one of: viewer, editor, admin; got %q", i, r.Role))
			}
		}
	case AuthzModeRemote:
		errs = append(errs, a.Remote.validate("authz.remote"))
	default:
		errs = append(errs, fmt.Errorf("authz.mode must be one of: rbac, remote; got %q", a.Mode))
	}

	return errors.Join(errs...)
}

func (cl *ClientConfig) validate(prefix string) error {
	var errs []error

	if cl.BaseURL == "" {
		errs = append(errs, fmt.Errorf("%s.base_url must not be empty", prefix))
	}
	if cl.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%s.timeout must be positive", prefix))
	}
	if cl.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("%s.retry.max_attempts must be >= 1, got %d", prefix, cl.Retry.MaxAttempts))
	}
	if cl.Retry.Multiplier <= 0 {
		errs = append(errs, fmt.Errorf("%s.retry.multiplier must be positive, got %f", prefix, cl.Retry.Multiplier))
	}
	if cl.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("%s.circuit_breaker.max_failures must be >= 1, got %d",
			prefix, cl.CircuitBreaker.MaxFailures))
	}
	if cl.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("%s.rate_limit.requests_per_second must be >= 0", prefix))
	}
	if cl.RateLimit.RequestsPerSecond > 0 && cl.RateLimit.BurstSize < 1 {
		errs = append(errs, fmt.Errorf("%s.rate_limit.burst_size must be >= 1 when rate limiting is enabled", prefix))
	}

	return errors.Join(errs...)
}

func (e *EventsConfig) validate() error {
	if !e.Enabled {
		return nil
	}

	var errs []error
	if e.URL == "" {
		errs = append(errs, errors.New("events.url must not be empty when events are enabled"))
	}
	if e.SubjectPrefix == "" {
		errs = append(errs, errors.New("events.subject_prefix must not be empty when events are enabled"))
	}
	return errors.Join(errs...)
}

func (i *I18nConfig) validate() error {
	if i.Dir == "" {
		return errors.New("i18n.dir must not be empty")
	}
	return nil
}

func (c *CacheConfig) validate() error {
	if c.TTL < 0 {
		return fmt.Errorf("cache.ttl must be >= 0, got %s", c.TTL)
	}
	return nil
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	return errors.Join(errs...)
}
