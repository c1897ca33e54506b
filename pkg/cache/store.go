// Package cache provides the TTL cache of preview cards.
//
// # Overview
//
// The cache maps a key (provider name + ":" + request URL) to the normalized
// card and the time it was stored. Entries older than the TTL (15 minutes by
// default) are never served; they are removed when a read observes them.
//
// # Persistence
//
// The whole cache is one logical record kept in a [Store]. Every mutation is
// a read-modify-write of that record, and the in-memory copy changes only
// after the store acknowledges the write. Available backends:
//
//   - [FileStore]: a single JSON file, replaced atomically
//   - [RedisStore]: a single Redis key
//   - [MongoStore]: a single MongoDB document
//   - [MemoryStore]: process memory, for tests and ephemeral runs
//   - [NullStore]: stores nothing
//
// # Usage
//
//	store, err := cache.NewFileStore(cache.DefaultPath())
//	c := cache.New(store, cache.WithLogger(logger))
//
//	if data, ok := c.Get(ctx, key); ok {
//	    return data
//	}
//	_ = c.Put(ctx, key, data)
package cache

import "context"

// Store persists the cache record. Read returns nil and no error when
// nothing has been written yet.
//
// Implementations must make Write atomic: a concurrent Read sees either the
// previous or the new record, never a partial one.
type Store interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, record []byte) error
	Close() error
}
