// Package observability provides hooks for metrics, tracing, and logging.
//
// Consumers register hooks at startup to receive events about cache
// operations, provider API calls and hover sessions. Every category defaults
// to a no-op implementation.
//
// # Usage
//
// Register hooks at application startup:
//
//	observability.Install(observability.Hooks{
//	    Cache: &myCacheHooks{},
//	    Hover: &myHoverHooks{},
//	})
//
// [LogHooks] implements every category by writing debug log lines; the CLI
// installs it under --verbose.
//
// Libraries call hooks to emit events:
//
//	observability.Cache().OnCacheMiss(ctx, "github")
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from the preview cache. keyType is the provider
// name part of the cache key.
type CacheHooks interface {
	// OnCacheHit records a fresh entry being served.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records an absent entry.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheEvict records a stale entry removed on read.
	OnCacheEvict(ctx context.Context, keyType string, age time.Duration)

	// OnCacheSet records a cache write of size bytes (whole record).
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// Hover Hooks
// =============================================================================

// HoverHooks receives events from the hover state machine.
type HoverHooks interface {
	// OnShown records a card being rendered for a link.
	OnShown(link string, generation uint64, failed bool)

	// OnDiscarded records a response dropped because its generation was stale
	// or the pointer had left.
	OnDiscarded(link string, generation, current uint64)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)                  {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)                 {}
func (NoopCacheHooks) OnCacheEvict(context.Context, string, time.Duration) {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int)             {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// NoopHoverHooks is a no-op implementation of HoverHooks.
type NoopHoverHooks struct{}

func (NoopHoverHooks) OnShown(string, uint64, bool)       {}
func (NoopHoverHooks) OnDiscarded(string, uint64, uint64) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

// Hooks groups one implementation per event category. Nil fields are left
// unchanged by [Install].
type Hooks struct {
	Cache CacheHooks
	HTTP  HTTPHooks
	Hover HoverHooks
}

var (
	hooksMu sync.RWMutex
	current = defaults()
)

func defaults() Hooks {
	return Hooks{Cache: NoopCacheHooks{}, HTTP: NoopHTTPHooks{}, Hover: NoopHoverHooks{}}
}

// Install registers the non-nil hooks of h. Call it at startup, before any
// fetch or hover activity.
func Install(h Hooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h.Cache != nil {
		current.Cache = h.Cache
	}
	if h.HTTP != nil {
		current.HTTP = h.HTTP
	}
	if h.Hover != nil {
		current.Hover = h.Hover
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) { Install(Hooks{Cache: h}) }

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) { Install(Hooks{HTTP: h}) }

// SetHoverHooks registers custom hover hooks.
func SetHoverHooks(h HoverHooks) { Install(Hooks{Hover: h}) }

func load() Hooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return current
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return load().Cache }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return load().HTTP }

// Hover returns the registered hover hooks.
func Hover() HoverHooks { return load().Hover }

// Reset restores the no-op defaults. Tests use it in t.Cleanup.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	current = defaults()
}
