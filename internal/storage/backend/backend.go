// Package backend turns the --config value into a storage.Provider.
package backend

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/studydojo/internal/constants"
	"github.com/julianstephens/studydojo/internal/keyring"
	"github.com/julianstephens/studydojo/internal/storage"
	"github.com/julianstephens/studydojo/internal/storage/postgres"
	"github.com/julianstephens/studydojo/internal/storage/redis"
	"github.com/julianstephens/studydojo/internal/storage/sqlite"
)

// Config values that defer to a secret source instead of naming a store directly.
const (
	SourceKeyring = "keyring"
	SourceEnv     = "env"
)

// Kind names the storage engine behind a Provider.
type Kind string

const (
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
	KindRedis    Kind = "redis"
)

// getConnectionString and getenv are swapped out in tests.
var (
	getConnectionString = keyring.Load
	getenv              = os.Getenv
)

// Detect classifies a --config value without touching the network or disk.
func Detect(config string) Kind {
	switch {
	case postgres.IsConnString(config):
		return KindPostgres
	case redis.IsURL(config):
		return KindRedis
	default:
		return KindSQLite
	}
}

// New builds (but does not Init or Load) the Provider for config.
//
// Postgres URLs given directly must not embed a password. Connection strings
// pulled from the keyring or STUDYDOJO_DB_CONNECTION are trusted as-is.
func New(config string) (storage.Provider, error) {
	config = strings.TrimSpace(config)
	trusted := false

	switch config {
	case "":
		return nil, errors.New("no storage configured")
	case SourceKeyring:
		connStr, err := getConnectionString()
		if err != nil {
			return nil, fmt.Errorf("failed to read connection string from keyring: %w", err)
		}
		config, trusted = connStr, true
	case SourceEnv:
		connStr := getenv(constants.EnvDBConnection)
		if connStr == "" {
			return nil, fmt.Errorf("%s is not set", constants.EnvDBConnection)
		}
		config, trusted = connStr, true
	}

	switch Detect(config) {
	case KindPostgres:
		if !trusted {
			if err := postgres.ValidateConnString(config); err != nil {
				return nil, err
			}
		}
		return postgres.New(config), nil
	case KindRedis:
		return redis.New(redis.DefaultConfig(config))
	default:
		path, err := ExpandHome(config)
		if err != nil {
			return nil, err
		}
		return sqlite.NewStore(path), nil
	}
}

// ExpandHome resolves a leading ~ to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ConfigDir is the directory that holds logs, backups, the plan file and
// the session lock. For file-backed stores it sits next to the database.
func ConfigDir(config string) (string, error) {
	if Detect(config) == KindSQLite && config != SourceKeyring && config != SourceEnv {
		path, err := ExpandHome(config)
		if err != nil {
			return "", err
		}
		return filepath.Dir(path), nil
	}
	return ExpandHome(filepath.Dir(constants.DefaultConfigPath))
}
