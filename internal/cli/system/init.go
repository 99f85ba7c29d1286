package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/studydojo/internal/cli"
	"github.com/julianstephens/studydojo/internal/storage/backend"
	"github.com/julianstephens/studydojo/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing database before initialization (SQLite only)."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Initialized studydojo storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Fprintf(ctx.Out, "Copying data from: %s\n", c.Source)
		n, err := c.copyData(ctx)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Fprintf(ctx.Out, "Copied %d keys.\n", n)
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return fmt.Errorf("--force is only supported for SQLite storage")
	}
	dbPath := ctx.Store.GetConfigPath()
	if c.Source != "" {
		absDB, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDB
		}
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Fprintf(ctx.Out, "Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

// copyData copies every key from the source store. Keys are opaque here, so
// any backend can seed any other.
func (c *InitCmd) copyData(ctx *cli.Context) (int, error) {
	source, err := backend.New(c.Source)
	if err != nil {
		return 0, err
	}
	if err := source.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	keys, err := source.Keys()
	if err != nil {
		return 0, fmt.Errorf("failed to list source keys: %w", err)
	}
	for _, key := range keys {
		value, ok, err := source.Get(key)
		if err != nil {
			return 0, fmt.Errorf("failed to read %s: %w", key, err)
		}
		if !ok {
			continue
		}
		if err := ctx.Store.Set(key, value); err != nil {
			return 0, fmt.Errorf("failed to write %s: %w", key, err)
		}
	}
	return len(keys), nil
}
