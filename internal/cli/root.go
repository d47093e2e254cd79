// Package cli implements the folio command line.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/folio/internal/auth"
	"github.com/dmitrymomot/folio/internal/config"
	"github.com/dmitrymomot/folio/middlewares"
	"github.com/dmitrymomot/folio/pkg/logger"
)

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "folio",
		Short:        "Folio - a blog CMS with canonical URLs done right",
		SilenceUsage: true,
	}
	cmd.AddCommand(
		serveCmd(),
		migrateCmd(),
		userCmd(),
		importCmd(),
	)
	return cmd
}

// setup loads the configuration and builds the logger shared by commands.
// The returned func flushes buffered error reports.
func setup() (*config.Config, *slog.Logger, func(context.Context) error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	log, flush := logger.New(cfg.Log, os.Stderr,
		middlewares.RequestIDExtractor(),
		logger.StringExtractor("user_id", auth.PrincipalID),
	)
	return cfg, log.With(slog.String("env", cfg.Env)), flush, nil
}
