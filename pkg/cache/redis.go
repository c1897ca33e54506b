package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the key used when none is configured.
const DefaultRedisKey = "hovercard:previews"

// RedisStore keeps the record under a single Redis key. SET replaces the
// value atomically.
type RedisStore struct {
	client redis.UniversalClient
	key    string
}

// NewRedisStore connects to addr and verifies the connection with PING.
func NewRedisStore(ctx context.Context, addr, key string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, storeErr("redis", "connect", err)
	}
	return NewRedisStoreFromClient(client, key), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client redis.UniversalClient, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

// Read returns the stored record, or nil if the key does not exist.
func (s *RedisStore) Read(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return data, storeErr("redis", "read", err)
}

// Write replaces the stored record. Expiry is handled per entry, so the key
// itself never expires.
func (s *RedisStore) Write(ctx context.Context, record []byte) error {
	return storeErr("redis", "write", s.client.Set(ctx, s.key, record, 0).Err())
}

// Close closes the underlying client.
func (s *RedisStore) Close() error { return s.client.Close() }

var _ Store = (*RedisStore)(nil)
