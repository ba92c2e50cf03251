// Package redis keeps preferred layouts in a Redis hash so several
// stenoboard instances share them.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/stenoboard/pkg/prefs"
)

// DefaultKey is the hash holding all entries.
const DefaultKey = "stenoboard:preferred_layouts"

// Config configures the Redis connection.
type Config struct {
	Addr     string
	Password string
	DB       int
	// Key is the hash name; empty means DefaultKey.
	Key string
}

// Store is a prefs.Store backed by one Redis hash: field is the system
// name, value the layout path.
type Store struct {
	client *redis.Client
	key    string
}

// NewStore connects to Redis and verifies the connection.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return NewStoreWithClient(client, cfg.Key), nil
}

// NewStoreWithClient wraps an existing client.
func NewStoreWithClient(client *redis.Client, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{client: client, key: key}
}

func (s *Store) Get(ctx context.Context, system string) (string, bool, error) {
	path, err := s.client.HGet(ctx, s.key, system).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis hget: %w", err)
	}
	return path, true, nil
}

func (s *Store) Set(ctx context.Context, system, path string) error {
	if err := s.client.HSet(ctx, s.key, system, path).Err(); err != nil {
		return fmt.Errorf("redis hset: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, system string) error {
	if err := s.client.HDel(ctx, s.key, system).Err(); err != nil {
		return fmt.Errorf("redis hdel: %w", err)
	}
	return nil
}

func (s *Store) All(ctx context.Context) (map[string]string, error) {
	all, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall: %w", err)
	}
	return all, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

var _ prefs.Store = (*Store)(nil)
