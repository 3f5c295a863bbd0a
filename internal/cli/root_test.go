package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwttoken "landregistry/internal/jwt_token"
	"landregistry/internal/platform/config"
	id "landregistry/pkg/domain"
)

// newTestRoot returns a root command that sees only env.
func newTestRoot(env map[string]string, args ...string) (*cobra.Command, *bytes.Buffer) {
	cmd := newRootCommand(&RootOptions{Getenv: func(k string) string { return env[k] }})
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return cmd, out
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "landregistry", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"serve", "migrate", "bootstrap", "token"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"config", "log-level"} {
		flag := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, "", flag.DefValue)
	}
}

func TestConfigFlagOverridesEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "landregistry.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auth:\n  issuer: from-file\n"), 0o600))

	opts := &RootOptions{
		ConfigFile: path,
		LogLevel:   "debug",
		Getenv: func(k string) string {
			return map[string]string{"LANDREG_CONFIG": "/does/not/exist", "LOG_LEVEL": "error"}[k]
		},
	}
	cfg, err := opts.load()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Auth.Issuer)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestTokenCommand(t *testing.T) {
	account := id.AccountID(uuid.New())
	cmd, out := newTestRoot(map[string]string{"JWT_SIGNING_KEY": "cli-test-key"},
		"token", "--account", account.String(), "--ttl", "5m")
	require.NoError(t, cmd.Execute())

	defaults := config.Defaults()
	tokens := jwttoken.NewJWTService("cli-test-key", defaults.Auth.Issuer, defaults.Auth.Audience)
	claims, err := tokens.ValidateToken(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	got, err := claims.Account()
	require.NoError(t, err)
	assert.Equal(t, account, got)
}

func TestTokenCommandRejectsBadAccount(t *testing.T) {
	cmd, _ := newTestRoot(nil, "token", "--account", "nope")
	assert.ErrorContains(t, cmd.Execute(), "--account")
}

func TestBootstrapCommandInMemory(t *testing.T) {
	owner := id.AccountID(uuid.New())
	cmd, out := newTestRoot(nil, "bootstrap", "--owner", owner.String())
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "owner "+owner.String())
}

func TestBootstrapCommandRequiresOwner(t *testing.T) {
	cmd, _ := newTestRoot(nil, "bootstrap")
	assert.Error(t, cmd.Execute())
}

func TestMigrateCommandRequiresDatabase(t *testing.T) {
	cmd, _ := newTestRoot(nil, "migrate")
	assert.ErrorContains(t, cmd.Execute(), "DATABASE_URL")
}

func TestServeCommandRejectsBadOwner(t *testing.T) {
	cmd, _ := newTestRoot(map[string]string{"OWNER_ACCOUNT_ID": "nope"}, "serve")
	assert.ErrorContains(t, cmd.Execute(), "OWNER_ACCOUNT_ID")
}
