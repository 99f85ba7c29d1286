package storage

import (
	"errors"

	"github.com/julianstephens/studydojo/internal/logger"
)

// Result holds either a decoded value or the reason there isn't one.
type Result[T any] struct {
	value T
	err   error
}

// Ok wraps a successful read.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Err wraps a failed read.
func Err[T any](err error) Result[T] {
	return Result[T]{err: err}
}

func (r Result[T]) IsOk() bool { return r.err == nil }

func (r Result[T]) Unwrap() (T, error) { return r.value, r.err }

// Error returns the failure, or nil.
func (r Result[T]) Error() error { return r.err }

// Or returns the value, or def when the read failed.
func (r Result[T]) Or(def T) T {
	if r.err != nil {
		return def
	}
	return r.value
}

// OrWarn is Or, but logs anything worse than a missing key.
func (r Result[T]) OrWarn(def T, key string) T {
	if r.err != nil && !errors.Is(r.err, ErrKeyNotFound) {
		logger.Warn("Falling back to default", "key", key, "error", r.err)
	}
	return r.Or(def)
}
