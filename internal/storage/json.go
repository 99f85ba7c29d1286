package storage

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// GetString reads a raw string value.
func GetString(s Store, key string) Result[string] {
	v, ok, err := s.Get(key)
	if err != nil {
		return Err[string](fmt.Errorf("failed to read %s: %w", key, err))
	}
	if !ok {
		return Err[string](fmt.Errorf("%s: %w", key, ErrKeyNotFound))
	}
	return Ok(v)
}

// GetInt reads a decimal integer value.
func GetInt(s Store, key string) Result[int] {
	raw, err := GetString(s, key).Unwrap()
	if err != nil {
		return Err[int](err)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return Err[int](fmt.Errorf("%w: integer in %s: %v", ErrMalformed, key, err))
	}
	return Ok(n)
}

// GetJSON decodes a JSON value into T.
func GetJSON[T any](s Store, key string) Result[T] {
	raw, err := GetString(s, key).Unwrap()
	if err != nil {
		return Err[T](err)
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return Err[T](fmt.Errorf("%w: JSON in %s: %v", ErrMalformed, key, err))
	}
	return Ok(v)
}

// SetJSON encodes v and stores it under key.
func SetJSON(s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// SetInt stores n in decimal.
func SetInt(s Store, key string, n int) error {
	if err := s.Set(key, strconv.Itoa(n)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
