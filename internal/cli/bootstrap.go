package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	id "landregistry/pkg/domain"
)

// BootstrapOptions holds flags for the bootstrap command.
type BootstrapOptions struct {
	*RootOptions
	Owner string
}

// NewBootstrapCommand creates the bootstrap command.
func NewBootstrapCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BootstrapOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Install the registry owner",
		Long: `Install the registry owner and allow the transfer engine to move land.

The owner is granted ADMIN. Re-running with the same owner only re-asserts
the transfer engine allow-list entry.

Example:
  landregistry bootstrap --owner 6f1c2a9e-0d7b-4a51-9a0e-5b1b8c7f1e22`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := id.ParseAccountID(opts.Owner)
			if err != nil {
				return fmt.Errorf("--owner: %w", err)
			}
			ctx := commandContext(cmd)
			a, _, err := opts.build(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.Bootstrap(ctx, owner); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "owner %s\nengine %s\n", owner, a.Engine)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Owner, "owner", "", "owner account id (required)")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}
