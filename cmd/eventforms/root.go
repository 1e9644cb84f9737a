package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-eventforms/internal/config"
	"github.com/goliatone/go-eventforms/internal/logging"
	"github.com/goliatone/go-eventforms/pkg/pipeline"
)

var (
	cfgFile string
	envFile string
)

// app holds what PersistentPreRunE resolved for the subcommands.
var app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	registry *prometheus.Registry
	metrics  *pipeline.Metrics
}

var rootCmd = &cobra.Command{
	Use:   "eventforms",
	Short: "Event management forms in the terminal",
	Long: `eventforms drives the event management forms from the terminal.

Book a ticket or create an event interactively, render any page as HTML or
text, and export the form schemas as an OpenAPI document.

Configuration is read from --config (YAML), an optional .env file and
EVENTFORMS_* environment variables.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (YAML)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment is read")
}

func setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	app.cfg = cfg
	app.logger = logging.New(cfg.Logging, cmd.ErrOrStderr())
	app.registry, app.metrics = nil, nil

	if cfg.Metrics.Enabled {
		app.registry = prometheus.NewRegistry()
		m, err := pipeline.NewMetrics(app.registry)
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		app.metrics = m
	}
	return nil
}
