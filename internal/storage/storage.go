// Package storage defines the key-value contract every studydojo backend
// satisfies, plus typed read helpers and an in-memory fake.
package storage

import "errors"

var (
	// ErrNotInitialized is returned by Load when the backing store was never created.
	ErrNotInitialized = errors.New("storage not initialized, run 'studydojo init' first")
	// ErrKeyNotFound marks a read of a key that holds no value.
	ErrKeyNotFound = errors.New("key not found")
	// ErrMalformed marks a stored value that does not decode.
	ErrMalformed = errors.New("malformed value")
)

// Store is a synchronous string key-value store.
// Get reports ok=false with a nil error when the key is absent.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// Provider is a Store with a lifecycle, as selected by --config.
type Provider interface {
	Store

	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Keys lists every stored key, sorted.
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}
