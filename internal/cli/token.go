package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	jwttoken "landregistry/internal/jwt_token"
	id "landregistry/pkg/domain"
)

// TokenOptions holds flags for the token command.
type TokenOptions struct {
	*RootOptions
	Account string
	TTL     time.Duration
}

// NewTokenCommand creates the token command.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TokenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for an account",
		Long: `Mint a bearer token signed with JWT_SIGNING_KEY. Intended for development
and operations; the API itself never issues tokens.

Example:
  landregistry token --account 6f1c2a9e-0d7b-4a51-9a0e-5b1b8c7f1e22 --ttl 15m`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := id.ParseAccountID(opts.Account)
			if err != nil {
				return fmt.Errorf("--account: %w", err)
			}
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			ttl := opts.TTL
			if ttl <= 0 {
				ttl = cfg.Auth.TokenTTL
			}
			tokens := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)
			token, err := tokens.GenerateAccessToken(account, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Account, "account", "", "account id (required)")
	cmd.Flags().DurationVar(&opts.TTL, "ttl", 0, "token lifetime (defaults to auth.token_ttl)")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}
