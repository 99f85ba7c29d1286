package system

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/julianstephens/studydojo/internal/cli"
	"github.com/julianstephens/studydojo/internal/keyring"
	"github.com/julianstephens/studydojo/internal/storage/backend"
	"github.com/julianstephens/studydojo/internal/storage/postgres"
)

// KeyringSetCmd saves a Postgres or Redis connection string for --config=keyring.
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL or Redis connection string."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	connStr := strings.TrimSpace(cmd.ConnectionString)
	kind := backend.Detect(connStr)
	if kind == backend.KindSQLite && !strings.Contains(connStr, "host=") {
		return errors.New("expected a postgres:// or redis:// URL, or a key=value PostgreSQL DSN")
	}

	if kind != backend.KindRedis {
		err := postgres.ValidateConnString(connStr)
		if err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		if err != nil {
			fmt.Fprintln(ctx.Out, "⚠️  Connection string has embedded credentials; storing it as-is in the OS keyring.")
		}
	}

	if err := keyring.Store(connStr); err != nil {
		return fmt.Errorf("failed to store connection string: %w", err)
	}
	fmt.Fprintf(ctx.Out, "✓ %s connection string saved to the OS keyring\n", kind)
	fmt.Fprintln(ctx.Out, "  Use it with --config=keyring")
	return nil
}

type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.Load()
	if errors.Is(err, keyring.ErrNotFound) {
		return errors.New("nothing stored yet, run 'studydojo keyring set' first")
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "%s: %s\n", backend.Detect(connStr), maskPassword(connStr))
	return nil
}

type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.Forget(); err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, "✓ Connection string removed from the OS keyring")
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	available, stored := keyring.Status()
	if !available {
		fmt.Fprintln(ctx.Out, "❌ OS keyring is not available on this system")
		return keyring.ErrUnavailable
	}
	fmt.Fprintln(ctx.Out, "✓ OS keyring is available")
	if stored {
		fmt.Fprintln(ctx.Out, "✓ Connection string is stored")
	} else {
		fmt.Fprintln(ctx.Out, "ℹ No connection string stored")
	}
	return nil
}

// maskPassword hides the password in URL and key=value connection strings.
func maskPassword(connStr string) string {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" && u.User != nil {
		if _, ok := u.User.Password(); !ok {
			return connStr
		}
		u.User = url.UserPassword(u.User.Username(), "****")
		// UserPassword percent-encodes the asterisks.
		return strings.Replace(u.String(), "%2A%2A%2A%2A", "****", 1)
	}

	fields := strings.Fields(connStr)
	for i, f := range fields {
		if strings.HasPrefix(f, "password=") {
			fields[i] = "password=****"
		}
	}
	return strings.Join(fields, " ")
}
