package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	id "landregistry/pkg/domain"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the HTTP API until interrupted.

When OWNER_ACCOUNT_ID is set the registry is bootstrapped with that owner
before serving. With no DATABASE_URL the stores live in memory, so this is
the only way to get an owner into a development instance.

Example:
  OWNER_ACCOUNT_ID=6f1c... landregistry serve
  landregistry serve --config ./landregistry.yaml --log-level debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(rootOpts, cmd)
		},
	}
}

func runServe(opts *RootOptions, cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, log, err := opts.build(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	if raw := a.Config.Registry.OwnerAccountID; raw != "" {
		owner, err := id.ParseAccountID(raw)
		if err != nil {
			return fmt.Errorf("OWNER_ACCOUNT_ID: %w", err)
		}
		if err := a.Bootstrap(ctx, owner); err != nil {
			return err
		}
	}

	if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.InfoContext(ctx, "landregistry stopped")
	return nil
}
