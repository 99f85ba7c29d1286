// Package sqlite is the default file-backed store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/studydojo/internal/migration"
	"github.com/julianstephens/studydojo/internal/storage"
	"github.com/julianstephens/studydojo/internal/storage/sqlkv"
)

// busyTimeoutMS lets a CLI command wait out a write from an open TUI.
const busyTimeoutMS = 5000

// Store keeps every key in the kv table of a single database file.
type Store struct {
	*sqlkv.Table
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) open() error {
	if s.Table != nil {
		return nil
	}
	db, err := sql.Open("sqlite", fmt.Sprintf("%s?_pragma=busy_timeout(%d)", s.path, busyTimeoutMS))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.Table = sqlkv.New(db, migration.SQLite)
	return nil
}

// Init creates the file and its parent directory if needed and migrates it.
func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := s.open(); err != nil {
		return err
	}
	return s.Migrate(context.Background())
}

// Load opens an existing file without creating or migrating it.
func (s *Store) Load() error {
	if s.Table != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return storage.ErrNotInitialized
	}
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

func (s *Store) GetConfigPath() string {
	return s.path
}
