// Package sqlkv runs the kv table queries and schema migrations shared by
// the SQLite and PostgreSQL backends.
package sqlkv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/julianstephens/studydojo/internal/migration"
	"github.com/julianstephens/studydojo/migrations"
)

// QueryTimeout bounds a single kv statement.
const QueryTimeout = 5 * time.Second

var errClosed = errors.New("database is not open")

// Table is the kv table of an open database.
type Table struct {
	db      *sql.DB
	dialect migration.Dialect
}

func New(db *sql.DB, dialect migration.Dialect) *Table {
	return &Table{db: db, dialect: dialect}
}

// DB exposes the connection, or nil for a nil Table.
func (t *Table) DB() *sql.DB {
	if t == nil {
		return nil
	}
	return t.db
}

// Close closes the connection. A nil Table is already closed.
func (t *Table) Close() error {
	if t == nil {
		return nil
	}
	return t.db.Close()
}

var sqlitePlaceholders = strings.NewReplacer("$1", "?", "$2", "?", "$3", "?")

// query takes Postgres placeholders and rewrites them for SQLite.
func (t *Table) query(q string) string {
	if t.dialect == migration.SQLite {
		return sqlitePlaceholders.Replace(q)
	}
	return q
}

func timeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), QueryTimeout)
}

// Ping runs a trivial query through the connection.
func (t *Table) Ping() error {
	if t == nil {
		return errClosed
	}
	ctx, cancel := timeout()
	defer cancel()
	var one int
	if err := t.db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func (t *Table) Get(key string) (string, bool, error) {
	ctx, cancel := timeout()
	defer cancel()
	var value string
	err := t.db.QueryRowContext(ctx, t.query("SELECT value FROM kv WHERE key = $1"), key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, true, nil
}

func (t *Table) Set(key, value string) error {
	ctx, cancel := timeout()
	defer cancel()
	_, err := t.db.ExecContext(ctx, t.query(`
		INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`), key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (t *Table) Remove(key string) error {
	ctx, cancel := timeout()
	defer cancel()
	if _, err := t.db.ExecContext(ctx, t.query("DELETE FROM kv WHERE key = $1"), key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (t *Table) Keys() ([]string, error) {
	ctx, cancel := timeout()
	defer cancel()
	rows, err := t.db.QueryContext(ctx, "SELECT key FROM kv ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (t *Table) runner() (*migration.Runner, error) {
	dir := "sqlite"
	if t.dialect == migration.Postgres {
		dir = "postgres"
	}
	sub, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access %s migrations: %w", dir, err)
	}
	return migration.New(t.db, sub, t.dialect)
}

// Migrate brings the schema up to date.
func (t *Table) Migrate(ctx context.Context) error {
	r, err := t.runner()
	if err != nil {
		return err
	}
	if _, err := r.Up(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// CheckSchema refuses a database migrated by a newer build.
func (t *Table) CheckSchema(ctx context.Context) error {
	r, err := t.runner()
	if err != nil {
		return err
	}
	return r.Check(ctx)
}

// PendingMigrations counts the embedded migrations the database lacks.
func (t *Table) PendingMigrations() (int, error) {
	if t == nil {
		return 0, errClosed
	}
	r, err := t.runner()
	if err != nil {
		return 0, err
	}
	ctx, cancel := timeout()
	defer cancel()
	pending, err := r.Pending(ctx)
	return len(pending), err
}
