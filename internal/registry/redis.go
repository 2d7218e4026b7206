// internal/registry/redis.go
//
// Redis KV backend via rueidis.
//
// Multi-process or multi-host deployments must share one registry so the
// Ajax view can resolve a key minted by any web worker.  Entries piggyback
// on Redis key expiry for TTL; a GET of an expired key reads as nil, which
// we normalise to ErrKeyNotFound.

package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

var _ KV = (*RedisStore)(nil)

// RedisConfig holds connection parameters for the shared store.
type RedisConfig struct {
	Addrs    []string
	Username string
	Password string
	DB       int
}

// RedisStore implements KV over a rueidis client.
type RedisStore struct {
	client rueidis.Client
}

// NewRedisStore connects and pings before returning, so a bad address
// fails at bootstrap rather than on the first render.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("registry: redis addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: cfg.Addrs,
		Username:    cfg.Username,
		Password:    cfg.Password,
		SelectDB:    cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("registry: create redis client: %w", err)
	}

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("registry: redis ping: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// Get retrieves a value by key.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	cmd := s.client.B().Get().Key(key).Build()
	data, err := s.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("registry: redis get: %w", err)
	}
	return data, nil
}

// SetWithTTL stores a value with Redis-side expiry.
func (s *RedisStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	cmd := s.client.B().Set().Key(key).Value(string(value)).Ex(ttl).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("registry: redis set: %w", err)
	}
	return nil
}

// Close shuts down the underlying client.
func (s *RedisStore) Close() { s.client.Close() }
