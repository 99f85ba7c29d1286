// Package redis stores studydojo keys in a Redis database, namespaced so a
// shared instance can host other data.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/julianstephens/studydojo/internal/constants"
)

// KeyPrefix namespaces every key this backend writes.
const KeyPrefix = constants.AppName + ":"

var ErrInvalidURL = errors.New("invalid Redis URL")

// Config holds connection tuning on top of what the URL carries.
type Config struct {
	URL          string
	PoolSize     int
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// OpTimeout bounds each Get/Set/Remove call.
	OpTimeout time.Duration
}

// DefaultConfig returns the settings used for a redis:// --config value.
func DefaultConfig(url string) Config {
	return Config{
		URL:          url,
		PoolSize:     4,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		OpTimeout:    5 * time.Second,
	}
}

// IsURL reports whether config names a Redis server.
func IsURL(config string) bool {
	return strings.HasPrefix(config, "redis://") || strings.HasPrefix(config, "rediss://")
}

type Store struct {
	cfg    Config
	opts   *redis.Options
	client *redis.Client
}

// New validates the URL without connecting.
func New(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	opts.MaxRetries = cfg.MaxRetries
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout
	return &Store{cfg: cfg, opts: opts}, nil
}

func (s *Store) ctx() (context.Context, context.CancelFunc) {
	if s.cfg.OpTimeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), s.cfg.OpTimeout)
}

func (s *Store) connect() error {
	client := redis.NewClient(s.opts)
	ctx, cancel := s.ctx()
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("failed to connect to redis at %s: %w", s.opts.Addr, err)
	}
	s.client = client
	return nil
}

// Init connects. Redis needs no schema.
func (s *Store) Init() error {
	if s.client != nil {
		return nil
	}
	return s.connect()
}

func (s *Store) Load() error {
	return s.Init()
}

func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	return err
}

// Ping round-trips a PING on the open client.
func (s *Store) Ping() error {
	if s.client == nil {
		return errors.New("redis client is not connected")
	}
	ctx, cancel := s.ctx()
	defer cancel()
	return s.client.Ping(ctx).Err()
}

func (s *Store) Get(key string) (string, bool, error) {
	ctx, cancel := s.ctx()
	defer cancel()
	v, err := s.client.Get(ctx, KeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *Store) Set(key, value string) error {
	ctx, cancel := s.ctx()
	defer cancel()
	if err := s.client.Set(ctx, KeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(key string) error {
	ctx, cancel := s.ctx()
	defer cancel()
	if err := s.client.Del(ctx, KeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// Keys walks the namespace with SCAN so large shared instances are not blocked.
func (s *Store) Keys() ([]string, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	var keys []string
	iter := s.client.Scan(ctx, 0, KeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), KeyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// GetConfigPath returns host:port/db, never the password.
func (s *Store) GetConfigPath() string {
	return fmt.Sprintf("redis %s/%d", s.opts.Addr, s.opts.DB)
}
