// Package postgres stores the kv table in a PostgreSQL schema named after the app.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/studydojo/internal/constants"
	"github.com/julianstephens/studydojo/internal/logger"
	"github.com/julianstephens/studydojo/internal/migration"
	"github.com/julianstephens/studydojo/internal/storage/sqlkv"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

const connectTimeout = 10 * time.Second

type Store struct {
	*sqlkv.Table
	connStr string
}

// New normalises connStr to key=value form and pins search_path to the
// app schema unless the caller chose one.
func New(connStr string) *Store {
	d, err := dsn(connStr)
	if err != nil {
		logger.Warn("Failed to parse Postgres connection string", "error", err)
		return &Store{connStr: connStr}
	}
	if !hasParam(d, "search_path") {
		d += " search_path=" + constants.AppName
	}
	return &Store{connStr: strings.TrimSpace(d)}
}

// IsConnString reports whether config is a PostgreSQL URL rather than a file path.
func IsConnString(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

// dsn converts URLs to key=value form and passes anything else through.
func dsn(connStr string) (string, error) {
	if IsConnString(connStr) {
		return pq.ParseURL(connStr)
	}
	return strings.TrimSpace(connStr), nil
}

// hasParam reports whether a key=value DSN sets key, ignoring case.
func hasParam(d, key string) bool {
	for _, field := range strings.Fields(d) {
		k, _, ok := strings.Cut(field, "=")
		if ok && strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

func hasSSLMode(connStr string) bool {
	d, err := dsn(connStr)
	return err == nil && hasParam(d, "sslmode")
}

// ValidateConnString accepts a URL or DSN that lib/pq can use and that does
// not carry a password.
func ValidateConnString(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}
	d, err := dsn(connStr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}
	if _, err := pq.NewConnector(d); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}
	if hasParam(d, "password") {
		return ErrEmbeddedCredentials
	}
	if d == "" {
		return fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
	}
	return nil
}

func (s *Store) open() error {
	if s.Table != nil {
		return nil
	}
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxIdleTime(time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(s.connStr) {
			return fmt.Errorf("failed to connect to database: %w (hint: add sslmode=disable)", err)
		}
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.Table = sqlkv.New(db, migration.Postgres)
	return nil
}

// Init creates the app schema and migrates it.
func (s *Store) Init() error {
	if err := s.open(); err != nil {
		return err
	}
	ctx := context.Background()
	if _, err := s.DB().ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+pq.QuoteIdentifier(constants.AppName)); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return s.Migrate(ctx)
}

func (s *Store) Load() error {
	if err := s.open(); err != nil {
		return err
	}
	return s.CheckSchema(context.Background())
}

func (s *Store) Close() error {
	err := s.Table.Close()
	s.Table = nil
	return err
}

// GetConfigPath returns a marker rather than the DSN so it never leaks into logs.
func (s *Store) GetConfigPath() string {
	return "postgresql"
}
