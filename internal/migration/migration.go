// Package migration applies the numbered NNN_name.sql files of a schema
// directory in order and records the applied version in schema_version.
package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/studydojo/internal/logger"
)

// ErrNewerSchema means the database was migrated by a later build.
var ErrNewerSchema = errors.New("database schema is newer than this build supports")

// Dialect picks the placeholder syntax for the version bookkeeping.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) insertVersion() string {
	if d == Postgres {
		return "INSERT INTO schema_version (version) VALUES ($1)"
	}
	return "INSERT INTO schema_version (version) VALUES (?)"
}

type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Parse reads the *.sql files at the root of files, ordered by version.
// Other files are ignored.
func Parse(files fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	var out []Migration
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || path.Ext(name) != ".sql" {
			continue
		}
		prefix, rest, ok := strings.Cut(strings.TrimSuffix(name, ".sql"), "_")
		if !ok {
			return nil, fmt.Errorf("invalid migration filename format: %s (want NNN_name.sql)", name)
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("invalid version number in %s: %w", name, err)
		}
		if version < 1 {
			return nil, fmt.Errorf("invalid version number in %s: version must be at least 1", name)
		}
		body, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		out = append(out, Migration{Version: version, Name: rest, SQL: string(body)})
	}

	slices.SortFunc(out, func(a, b Migration) int { return a.Version - b.Version })
	for i := 1; i < len(out); i++ {
		if out[i].Version == out[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", out[i].Version)
		}
	}
	return out, nil
}

type Runner struct {
	db         *sql.DB
	dialect    Dialect
	migrations []Migration
}

// New parses files up front so a malformed directory fails before any SQL runs.
func New(db *sql.DB, files fs.FS, dialect Dialect) (*Runner, error) {
	migrations, err := Parse(files)
	if err != nil {
		return nil, err
	}
	return &Runner{db: db, dialect: dialect, migrations: migrations}, nil
}

// Latest is the highest known version, or 0 with no migrations.
func (r *Runner) Latest() int {
	if len(r.migrations) == 0 {
		return 0
	}
	return r.migrations[len(r.migrations)-1].Version
}

func (r *Runner) ensureTable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)")
	if err != nil {
		return fmt.Errorf("failed to create schema_version: %w", err)
	}
	return nil
}

// Current is the applied version; a fresh database reports 0.
func (r *Runner) Current(ctx context.Context) (int, error) {
	if err := r.ensureTable(ctx); err != nil {
		return 0, err
	}
	var version int
	err := r.db.QueryRowContext(ctx, "SELECT version FROM schema_version").Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *Runner) writeVersion(ctx context.Context, db execer, version int) error {
	if _, err := db.ExecContext(ctx, "DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("failed to clear schema version: %w", err)
	}
	if _, err := db.ExecContext(ctx, r.dialect.insertVersion(), version); err != nil {
		return fmt.Errorf("failed to record schema version %d: %w", version, err)
	}
	return nil
}

// SetVersion overwrites the recorded version without running anything.
func (r *Runner) SetVersion(ctx context.Context, version int) error {
	if err := r.ensureTable(ctx); err != nil {
		return err
	}
	return r.writeVersion(ctx, r.db, version)
}

func (r *Runner) ahead(current int) error {
	if current > r.Latest() {
		return fmt.Errorf("%w (database %d, supported %d), please upgrade", ErrNewerSchema, current, r.Latest())
	}
	return nil
}

// Check fails with ErrNewerSchema when the database is ahead of this build.
func (r *Runner) Check(ctx context.Context) error {
	current, err := r.Current(ctx)
	if err != nil {
		return err
	}
	return r.ahead(current)
}

// Pending lists the migrations newer than the applied version.
func (r *Runner) Pending(ctx context.Context) ([]Migration, error) {
	current, err := r.Current(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.ahead(current); err != nil {
		return nil, err
	}
	i, _ := slices.BinarySearchFunc(r.migrations, current+1, func(m Migration, v int) int { return m.Version - v })
	return r.migrations[i:], nil
}

// Up applies every pending migration, each in its own transaction, and
// returns the ones that were applied before any failure.
func (r *Runner) Up(ctx context.Context) ([]Migration, error) {
	pending, err := r.Pending(ctx)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		logger.Debug("Schema up to date", "version", r.Latest())
		return nil, nil
	}

	start := time.Now()
	var applied []Migration
	for _, m := range pending {
		if err := r.apply(ctx, m); err != nil {
			return applied, err
		}
		applied = append(applied, m)
		logger.Info("Applied migration", "version", m.Version, "name", m.Name)
	}
	logger.Info("Schema migrated", "count", len(applied), "version", r.Latest(), "took", time.Since(start))
	return applied, nil
}

func (r *Runner) apply(ctx context.Context, m Migration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
	}
	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
	}
	if err := r.writeVersion(ctx, tx, m.Version); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
	}
	return nil
}
