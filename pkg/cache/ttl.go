package cache

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hovercard/pkg/observability"
	"github.com/matzehuels/hovercard/pkg/preview"
)

// DefaultTTL is how long a stored card stays fresh.
const DefaultTTL = 15 * time.Minute

// Entry is a stored card and the time it was stored, in epoch milliseconds.
type Entry struct {
	Value    preview.Data `json:"value"`
	StoredAt int64        `json:"storedAt"`
}

// Item is an entry together with its key, as returned by [TTLCache.Entries].
type Item struct {
	Key   string
	Entry Entry
	Age   time.Duration
	Fresh bool
}

// record is the persisted form of the whole cache.
type record map[string]Entry

// TTLCache is the preview cache. It is safe for concurrent use: reads run
// in parallel, mutations are serialized and the last writer wins.
type TTLCache struct {
	store  Store
	ttl    time.Duration
	now    func() time.Time
	logger *log.Logger

	mu      sync.RWMutex
	entries record
	loaded  bool
}

// Option configures a [TTLCache].
type Option func(*TTLCache)

// WithTTL overrides [DefaultTTL]. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(c *TTLCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *TTLCache) { c.now = now }
}

// WithLogger sets the logger used for degraded store operations.
func WithLogger(l *log.Logger) Option {
	return func(c *TTLCache) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a cache backed by store. The record is loaded on first use.
func New(store Store, opts ...Option) *TTLCache {
	if store == nil {
		store = NullStore{}
	}
	c := &TTLCache{
		store:  store,
		ttl:    DefaultTTL,
		now:    time.Now,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the freshness window.
func (c *TTLCache) TTL() time.Duration { return c.ttl }

// Store returns the backing store.
func (c *TTLCache) Store() Store { return c.store }

// Get returns the card stored under key if it is still fresh. A stale entry
// is removed from the store before Get reports a miss.
func (c *TTLCache) Get(ctx context.Context, key string) (preview.Data, bool) {
	c.ensureLoaded(ctx)
	hooks := observability.Cache()
	kind := keyType(key)

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		hooks.OnCacheMiss(ctx, kind)
		return preview.Data{}, false
	}

	age := c.age(e)
	if age < c.ttl {
		hooks.OnCacheHit(ctx, kind)
		return e.Value, true
	}

	c.evict(ctx, key, e.StoredAt)
	hooks.OnCacheEvict(ctx, kind, age)
	return preview.Data{}, false
}

// Put stores value under key, stamped with the current time. The in-memory
// copy is updated only once the store has accepted the new record.
func (c *TTLCache) Put(ctx context.Context, key string, value preview.Data) error {
	if _, disabled := c.store.(NullStore); disabled {
		return nil
	}
	c.ensureLoaded(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.current(ctx)
	next[key] = Entry{Value: value, StoredAt: c.now().UnixMilli()}
	size, err := c.persist(ctx, next)
	if err != nil {
		return err
	}
	c.entries = next
	observability.Cache().OnCacheSet(ctx, keyType(key), size)
	return nil
}

// Clear removes every entry.
func (c *TTLCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.persist(ctx, record{}); err != nil {
		return err
	}
	c.entries = record{}
	c.loaded = true
	return nil
}

// Entries returns a snapshot of all stored entries sorted by key, including
// stale ones that have not been observed yet.
func (c *TTLCache) Entries(ctx context.Context) []Item {
	c.ensureLoaded(ctx)
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]Item, 0, len(c.entries))
	for k, e := range c.entries {
		age := c.age(e)
		items = append(items, Item{Key: k, Entry: e, Age: age, Fresh: age < c.ttl})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Key < items[j].Key })
	return items
}

// Reload discards the in-memory copy and reads the store again.
func (c *TTLCache) Reload(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, err := c.read(ctx)
	c.entries = rec
	c.loaded = true
	return err
}

func (c *TTLCache) ensureLoaded(ctx context.Context) {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if loaded {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return
	}
	rec, err := c.read(ctx)
	if err != nil {
		c.logger.Warn("cache unavailable, starting empty", "error", err)
	}
	c.entries = rec
	c.loaded = true
}

// read loads and decodes the store record. On failure it returns an empty
// record together with the error.
func (c *TTLCache) read(ctx context.Context) (record, error) {
	raw, err := c.store.Read(ctx)
	if err != nil {
		return record{}, err
	}
	if len(raw) == 0 {
		return record{}, nil
	}
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return record{}, &StoreError{Backend: "record", Op: "decode", Err: err}
	}
	if rec == nil {
		rec = record{}
	}
	return rec, nil
}

// current returns a private copy of the latest record. It re-reads the store
// so writes from other processes sharing it are kept; if that fails the
// in-memory copy is used. Caller holds c.mu.
func (c *TTLCache) current(ctx context.Context) record {
	rec, err := c.read(ctx)
	if err != nil {
		c.logger.Debug("cache re-read failed, using memory copy", "error", err)
		rec = make(record, len(c.entries))
		for k, v := range c.entries {
			rec[k] = v
		}
	}
	return rec
}

// persist encodes rec and writes it to the store. Caller holds c.mu.
func (c *TTLCache) persist(ctx context.Context, rec record) (int, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return 0, err
	}
	if err := c.store.Write(ctx, raw); err != nil {
		return 0, err
	}
	return len(raw), nil
}

// evict removes key if it still holds the entry stored at storedAt.
func (c *TTLCache) evict(ctx context.Context, key string, storedAt int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cur, ok := c.entries[key]; !ok || cur.StoredAt != storedAt {
		return
	}
	next := c.current(ctx)
	if cur, ok := next[key]; ok && c.age(cur) < c.ttl {
		// Refreshed by another writer sharing the store.
		c.entries = next
		return
	}
	delete(next, key)
	if _, err := c.persist(ctx, next); err != nil {
		c.logger.Warn("cache eviction not persisted", "key", key, "error", err)
		return
	}
	c.entries = next
}

func (c *TTLCache) age(e Entry) time.Duration {
	return time.Duration(c.now().UnixMilli()-e.StoredAt) * time.Millisecond
}

func keyType(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}
