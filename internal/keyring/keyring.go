// Package keyring keeps the remote backend connection string in the OS
// credential store. Postgres and Redis URLs are stored the same way.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/studydojo/internal/constants"
)

var (
	ErrNotFound    = errors.New("no connection string in the OS keyring")
	ErrUnavailable = errors.New("OS keyring is not available")
)

func wrap(err error) error {
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// Load returns the stored connection string.
func Load() (string, error) {
	connStr, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		return "", wrap(err)
	}
	return connStr, nil
}

// Store saves connStr, replacing any previous value.
func Store(connStr string) error {
	connStr = strings.TrimSpace(connStr)
	if connStr == "" {
		return errors.New("empty connection string")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return wrap(err)
	}
	return nil
}

// Forget removes the stored connection string.
func Forget() error {
	if err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser); err != nil {
		return wrap(err)
	}
	return nil
}

// Status probes the keyring with a read. An empty keyring is still available.
func Status() (available, stored bool) {
	_, err := Load()
	return !errors.Is(err, ErrUnavailable), err == nil
}
