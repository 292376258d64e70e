package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/jsamuelsen11/guidedtours/internal/adapters/authz"
	"github.com/jsamuelsen11/guidedtours/internal/adapters/clients/acl"
	natsevents "github.com/jsamuelsen11/guidedtours/internal/adapters/events"
	"github.com/jsamuelsen11/guidedtours/internal/adapters/i18n"
	"github.com/jsamuelsen11/guidedtours/internal/adapters/persistence/memory"
	"github.com/jsamuelsen11/guidedtours/internal/adapters/persistence/postgres"
	"github.com/jsamuelsen11/guidedtours/internal/app"
	"github.com/jsamuelsen11/guidedtours/internal/app/events"
	"github.com/jsamuelsen11/guidedtours/internal/domain/tour"
	"github.com/jsamuelsen11/guidedtours/internal/platform/cache"
	"github.com/jsamuelsen11/guidedtours/internal/platform/config"
	"github.com/jsamuelsen11/guidedtours/internal/platform/health"
	"github.com/jsamuelsen11/guidedtours/internal/platform/httpclient"
	"github.com/jsamuelsen11/guidedtours/internal/platform/telemetry"
	"github.com/jsamuelsen11/guidedtours/internal/ports"
)

// policyServiceName identifies the remote policy service in traces, metrics
// and health reports.
const policyServiceName = "policy-api"

// registerDependencies declares the providers for the lifecycle graph. Every
// provider is lazy: a command that never resolves the service never dials
// the database.
func (c *cli) registerDependencies() {
	cfg, logger := c.cfg, c.logger

	do.Provide(c.injector, func(_ do.Injector) (*authz.TokenParser, error) {
		return authz.NewTokenParser(cfg.Identity.Secret, cfg.Identity.Issuer), nil
	})

	do.Provide(c.injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(c.injector, func(i do.Injector) (ports.TourRepository, error) {
		repo, err := c.openRepository(context.Background(), cfg.Database)
		if err != nil {
			return nil, err
		}
		if checker, ok := repo.(ports.HealthChecker); ok {
			do.MustInvoke[ports.HealthRegistry](i).Register(checker)
		}
		return repo, nil
	})

	do.Provide(c.injector, func(i do.Injector) (*httpclient.Client, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return httpclient.New(&cfg.Authz.Remote, policyServiceName, metrics, logger), nil
	})

	do.Provide(c.injector, func(i do.Injector) (ports.Authorizer, error) {
		switch cfg.Authz.Mode {
		case config.AuthzModeRemote:
			client := acl.NewPolicyClient(do.MustInvoke[*httpclient.Client](i), logger)
			do.MustInvoke[ports.HealthRegistry](i).Register(client)
			return client, nil
		default:
			return authz.NewRBAC(cfg.Authz.Rules)
		}
	})

	do.Provide(c.injector, func(i do.Injector) (ports.DeleteNotifier, error) {
		dispatcher := events.NewDispatcher(logger, events.CheckoutGuard{})
		if !cfg.Events.Enabled {
			return dispatcher, nil
		}

		nc, err := natsevents.Connect(cfg.Events, logger)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, func() error { return nc.Drain() })
		do.MustInvoke[ports.HealthRegistry](i).Register(natsevents.NewConnHealth(nc))
		dispatcher.Register(natsevents.NewDeletePublisher(nc, cfg.Events.SubjectPrefix, logger))
		return dispatcher, nil
	})

	do.Provide(c.injector, func(_ do.Injector) (ports.Translator, error) {
		dir := cfg.I18n.Dir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(c.configDir, dir)
		}
		catalogue, err := i18n.Load(dir, cfg.I18n.DefaultLanguage, cfg.I18n.DefaultLanguage)
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("no language catalogue; keys are shown untranslated",
				slog.String("dir", dir),
				slog.String("language", cfg.I18n.DefaultLanguage),
			)
			return i18n.FromMap(cfg.I18n.DefaultLanguage, nil), nil
		}
		return catalogue, err
	})

	do.Provide(c.injector, func(_ do.Injector) (ports.TourCache, error) {
		return cache.New[[]tour.Tour](cfg.Cache.TTL), nil
	})

	do.Provide(c.injector, func(i do.Injector) (ports.TourService, error) {
		repo, err := do.Invoke[ports.TourRepository](i)
		if err != nil {
			return nil, err
		}
		authorizer, err := do.Invoke[ports.Authorizer](i)
		if err != nil {
			return nil, err
		}
		notifier, err := do.Invoke[ports.DeleteNotifier](i)
		if err != nil {
			return nil, err
		}
		translator, err := do.Invoke[ports.Translator](i)
		if err != nil {
			return nil, err
		}

		var opts []app.TourServiceOption
		if metrics := do.MustInvoke[*telemetry.Metrics](i); metrics != nil {
			opts = append(opts, app.WithMetrics(metrics))
		}
		return app.NewTourService(repo, authorizer, notifier,
			do.MustInvoke[ports.TourCache](i), translator, logger, opts...), nil
	})
}

// openRepository returns the configured tour store.
func (c *cli) openRepository(ctx context.Context, cfg config.DatabaseConfig) (ports.TourRepository, error) {
	if c.repo != nil {
		return c.repo, nil
	}

	switch cfg.Driver {
	case config.DriverPostgres:
		store, err := postgres.Open(ctx, cfg, c.logger)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, store.Close)
		if cfg.AutoMigrate {
			if err := store.Migrate(ctx); err != nil {
				return nil, err
			}
			c.logger.InfoContext(ctx, "schema migrated", slog.String("driver", cfg.Driver))
		}
		return store, nil
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
