package storage

import (
	"errors"
	"sort"
	"sync"
)

var errInjected = errors.New("injected storage failure")

// Memory is an in-process Provider. Tests flip FailReads / FailWrites to
// exercise fallback paths.
type Memory struct {
	mu   sync.Mutex
	data map[string]string

	FailReads  bool
	FailWrites bool
	// Writes counts successful Set and Remove calls.
	Writes int
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads {
		return "", false, errInjected
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errInjected
	}
	m.data[key] = value
	m.Writes++
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errInjected
	}
	delete(m.data, key)
	m.Writes++
	return nil
}

func (m *Memory) Keys() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *Memory) Init() error  { return nil }
func (m *Memory) Load() error  { return nil }
func (m *Memory) Close() error { return nil }

func (m *Memory) GetConfigPath() string { return ":memory:" }
