// Package cli implements the readability command line on top of cobra.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	service "github.com/okian/readability/internal/app"
	"github.com/okian/readability/internal/config"
	"github.com/okian/readability/pkg/logger"
	"github.com/okian/readability/pkg/metrics"
)

// version is overridden at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

var (
	configPath string
	logLevel   string
	logFormat  string
)

// Set by setup before any subcommand runs.
var (
	cfg *config.Config
	mgr *metrics.Manager
	svc *service.Service
)

var rootCmd = &cobra.Command{
	Use:   "readability",
	Short: "Estimate the reading age of plain-text documents",
	Long: `Computes word, sentence, character and syllable counts for plain text
and scores it with the Automated Readability Index, Flesch-Kincaid,
SMOG and Coleman-Liau formulas, each mapped to an estimated reader age.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default $"+config.EnvFile+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log_level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "override log_format (text, json)")
}

// Execute runs the root command. Errors are returned, not printed.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// setup loads configuration, points logging at stderr and builds the service.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(cmd.Context(), configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.LogLevel = logLevel
	}
	if logFormat != "" {
		loaded.LogFormat = logFormat
	}

	if err := logger.SetOutput(cmd.ErrOrStderr()); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	if err := logger.SetFormat(loaded.LogFormat); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	if err := logger.SetLevelString(loaded.LogLevel); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	cfg = loaded
	mgr = metrics.Default()
	if !cfg.MetricsEnabled {
		mgr = metrics.NewManager(metrics.WithMetricsEnabled(false))
	}
	svc = service.New(
		service.WithLogger(logger.Named("service")),
		service.WithWorkerCount(cfg.Workers),
		service.WithMetrics(mgr),
	)
	logger.Get().Debug(cmd.Context(), "configuration loaded",
		logger.String("command", cmd.Name()),
		logger.String("addr", cfg.Addr),
		logger.Int("workers", cfg.Workers),
	)
	return nil
}
