package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/labybel/labybel/internal/config"
	"github.com/labybel/labybel/internal/logger"
	"github.com/labybel/labybel/pkg/dls"
	"github.com/labybel/labybel/pkg/httpclient"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	host    string
	port    int
	timeout int64
	output  string
}

// app is prepared by PersistentPreRunE for the subcommands.
var app struct {
	cfg    *config.Config
	log    *logger.ZapLogger
	client *dls.Client
}

var rootCmd = &cobra.Command{
	Use:   "labybel",
	Short: "Query a DYMO Label Software host",
	Long:  "labybel reads connection status and the printer list from the\nDYMO Label Software web service on a label-printer host.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) { _ = logger.Close() },
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.host, "host", "", "DLS host including scheme (overrides DLS_HOST)")
	f.IntVar(&rootFlags.port, "port", 0, "DLS port (overrides DLS_PORT)")
	f.Int64Var(&rootFlags.timeout, "timeout", 0, "Request timeout in seconds (overrides REQUEST_TIMEOUT_SECONDS)")
	f.StringVarP(&rootFlags.output, "output", "o", "", "Output format: text, json or yaml (overrides OUTPUT_FORMAT)")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(printersCmd)
	rootCmd.Version = version
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	log.DebugObj("labybel starting", "config", cfg)

	app.cfg = cfg
	app.log = log
	app.client = dls.New(cfg.Host,
		dls.WithPort(uint16(cfg.Port)),
		dls.WithHTTPClient(httpclient.NewRestyClient(cfg.RequestTimeout)),
		dls.WithLogger(log),
	)
	return nil
}

// applyFlags overlays explicitly set flags on cfg and revalidates it.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Host = rootFlags.host
	}
	if flags.Changed("port") {
		cfg.Port = rootFlags.port
	}
	if flags.Changed("timeout") {
		cfg.RequestTimeoutSeconds = rootFlags.timeout
	}
	if flags.Changed("output") {
		cfg.OutputFormat = rootFlags.output
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, app.cfg.RequestTimeout)
}

// explain adds a hint telling an unreachable host apart from a bad payload.
func explain(err error) error {
	switch {
	case errors.Is(err, dls.ErrRequest):
		return fmt.Errorf("%w (is DYMO Label Software running at %s:%d?)", err, app.cfg.Host, app.cfg.Port)
	case errors.Is(err, dls.ErrDeserialization):
		return fmt.Errorf("%w (the host answered with an unexpected printer list)", err)
	default:
		return err
	}
}
