package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/guidedtours/internal/adapters/authz"
	appctx "github.com/jsamuelsen11/guidedtours/internal/app/context"
	"github.com/jsamuelsen11/guidedtours/internal/platform/config"
	"github.com/jsamuelsen11/guidedtours/internal/platform/logging"
	"github.com/jsamuelsen11/guidedtours/internal/ports"
)

const (
	defaultProfile      = "local"
	otelShutdownTimeout = 5 * time.Second
)

// cli holds the state shared by every subcommand of one invocation.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	profile   string
	token     string
	configDir string
	envFile   string

	cfg      *config.Config
	logger   *slog.Logger
	injector *do.RootScope
	otel     *otelProviders
	closers  []func() error

	// repo replaces the configured store when set. Tests share one store
	// across invocations through it.
	repo ports.TourRepository
}

func newCLI(stdout, stderr io.Writer) *cli {
	return &cli{stdout: stdout, stderr: stderr}
}

func newRootCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tourctl",
		Short:         "Manage guided tours and their steps",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.bootstrap(cmd.Context())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&c.profile, "profile", "", "configuration profile (default $APP_PROFILE or \"local\")")
	flags.StringVar(&c.token, "token", "", "JWT identifying the acting user (default $APP_TOKEN)")
	flags.StringVar(&c.configDir, "config-dir", "configs", "directory holding base.yaml and profile files")
	flags.StringVar(&c.envFile, "env-file", ".env", "optional dotenv file loaded before configuration")

	cmd.AddCommand(
		newSaveCmd(c),
		newDeleteCmd(c),
		newDuplicateCmd(c),
		newStepsLanguageCmd(c),
		newNextOrderingCmd(c),
		newGetCmd(c),
		newListCmd(c),
		newStepsCmd(c),
		newMigrateCmd(c),
		newHealthCmd(c),
		newTokenCmd(c),
	)
	return cmd
}

// bootstrap loads configuration and wires the dependency graph.
func (c *cli) bootstrap(ctx context.Context) error {
	if err := godotenv.Load(c.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", c.envFile, err)
	}

	profile := c.profile
	if profile == "" {
		profile = os.Getenv("APP_PROFILE")
	}
	if profile == "" {
		profile = defaultProfile
	}
	if c.token == "" {
		c.token = os.Getenv("APP_TOKEN")
	}

	cfg, err := config.Load(profile, config.WithConfigDir(c.configDir))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	c.cfg = cfg
	c.logger = logging.New(cfg.Log.Level, cfg.Log.Format, c.stderr)

	providers, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	c.otel = providers

	c.injector = do.New()
	do.ProvideValue(c.injector, cfg)
	do.ProvideValue(c.injector, c.logger)
	do.ProvideValue(c.injector, providers.metrics)
	c.registerDependencies()
	return nil
}

// request starts one logged operation on behalf of the actor named by the
// token.
func (c *cli) request(ctx context.Context) (*appctx.RequestContext, *slog.Logger, error) {
	parser := do.MustInvoke[*authz.TokenParser](c.injector)
	actor, err := parser.Parse(c.token)
	if err != nil {
		return nil, nil, err
	}

	ctx, logger := logging.WithOperation(ctx, c.logger)
	logger = logger.With(slog.Int64("actor_id", actor.ID))
	ctx = logging.WithLogger(ctx, logger)
	return appctx.New(ctx, actor), logger, nil
}

// close releases connections and flushes telemetry.
func (c *cli) close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && c.logger != nil {
			c.logger.Warn("close failed", slog.Any("error", err))
		}
	}
	c.closers = nil

	if c.otel == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer cancel()
	if err := c.otel.Shutdown(ctx); err != nil && c.logger != nil {
		c.logger.Error("telemetry shutdown error", slog.Any("error", err))
	}
	c.otel = nil
}
