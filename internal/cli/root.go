// Package cli is the landregistry command line: serve the API, apply the
// schema, bootstrap the owner and mint development tokens.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"landregistry/internal/app"
	"landregistry/internal/platform/config"
	"landregistry/internal/platform/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
	LogLevel   string

	// Getenv defaults to os.Getenv; tests substitute a map.
	Getenv func(string) string
}

// NewRootCommand creates the root command for the landregistry binary.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{Getenv: os.Getenv})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "landregistry",
		Short: "Land registry API",
		Long: `A registry of verified users, land parcels, purchase requests and
disputes, with an audited history of every mutation.

Configuration comes from defaults, an optional YAML file and the environment,
in that order of precedence (lowest first).`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "YAML config file (overrides LANDREG_CONFIG)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "debug|info|warn|error (overrides LOG_LEVEL)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewBootstrapCommand(opts))
	cmd.AddCommand(NewTokenCommand(opts))

	return cmd
}

func (o *RootOptions) getenv(key string) string {
	if key == "LANDREG_CONFIG" && o.ConfigFile != "" {
		return o.ConfigFile
	}
	if key == "LOG_LEVEL" && o.LogLevel != "" {
		return o.LogLevel
	}
	return o.Getenv(key)
}

func (o *RootOptions) load() (config.Config, error) {
	return config.LoadFrom(o.getenv)
}

// build loads configuration and wires the application. Logs go to w.
func (o *RootOptions) build(ctx context.Context, w io.Writer) (*app.App, *slog.Logger, error) {
	cfg, err := o.load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.NewWithWriter(w, cfg.LogLevel)
	a, err := app.Build(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return a, log, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
