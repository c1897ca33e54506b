// Package fetch turns a link into preview card data.
//
// The [Orchestrator] resolves the link to a provider, consults the TTL cache,
// fetches and normalizes the provider's API response on a miss, and stores
// the result:
//
//	resolve → key → cache lookup → GET → normalize → store
//
// There are no retries. Every failure is returned as a coded error from
// pkg/errors so callers can report it verbatim:
//
//   - no provider matched: UNKNOWN_PROVIDER
//   - transport failure or non-2xx status: NETWORK_ERROR
//   - 403 with an exhausted quota: RATE_LIMITED
//   - response that does not fit the provider's schema: PROVIDER_ERROR
//
// A failed cache write is logged and does not fail the fetch.
package fetch

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hovercard/pkg/cache"
	herrors "github.com/matzehuels/hovercard/pkg/errors"
	"github.com/matzehuels/hovercard/pkg/integrations"
	"github.com/matzehuels/hovercard/pkg/preview"
)

// Result is a fetched card together with how it was obtained.
type Result struct {
	Data     preview.Data
	Provider integrations.Name
	Key      string
	CacheHit bool
	Duration time.Duration
}

// Orchestrator runs the fetch pipeline. It holds no per-request state;
// multiple goroutines can share one Orchestrator.
type Orchestrator struct {
	Registry *integrations.Registry
	Cache    *cache.TTLCache
	Client   *integrations.Client
	Logger   *log.Logger
}

// NewOrchestrator creates an orchestrator.
// If c is nil, caching is disabled. If client is nil, a client with default
// headers and timeout is used.
func NewOrchestrator(reg *integrations.Registry, c *cache.TTLCache, client *integrations.Client, logger *log.Logger) *Orchestrator {
	if c == nil {
		c = cache.New(cache.NullStore{})
	}
	if client == nil {
		client = integrations.NewClient(nil, integrations.DefaultHeaders(""))
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{
		Registry: reg,
		Cache:    c,
		Client:   client,
		Logger:   logger,
	}
}

// FetchPreview returns the card for rawURL.
func (o *Orchestrator) FetchPreview(ctx context.Context, rawURL string) (preview.Data, error) {
	res, err := o.Fetch(ctx, rawURL)
	if err != nil {
		return preview.Data{}, err
	}
	return res.Data, nil
}

// FetchMatch returns the card for a provider addressed by name with
// already-extracted pattern captures, as sent in a getData message. Captures
// the provider's pattern would not produce are rejected as INVALID_INPUT
// before any request is made.
func (o *Orchestrator) FetchMatch(ctx context.Context, name integrations.Name, captures []string) (preview.Data, error) {
	p, ok := o.Registry.Lookup(name)
	if !ok {
		return preview.Data{}, herrors.New(herrors.ErrCodeUnknownProvider, "unknown provider %q", name)
	}
	if !p.ValidCaptures(captures) {
		return preview.Data{}, herrors.New(herrors.ErrCodeInvalidInput, "%s: captures do not match the provider pattern", p.DisplayName)
	}
	res, err := o.run(ctx, integrations.Match{Provider: p, Captures: captures})
	if err != nil {
		return preview.Data{}, err
	}
	return res.Data, nil
}

// Fetch is like FetchPreview but also reports cache and timing information.
func (o *Orchestrator) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	m, ok := o.Registry.Resolve(rawURL)
	if !ok {
		return nil, herrors.New(herrors.ErrCodeUnknownProvider, "no provider for %s", rawURL)
	}
	return o.run(ctx, m)
}

// Resolve reports which provider, if any, would serve rawURL.
func (o *Orchestrator) Resolve(rawURL string) (integrations.Match, bool) {
	return o.Registry.Resolve(rawURL)
}

func (o *Orchestrator) run(ctx context.Context, m integrations.Match) (*Result, error) {
	start := time.Now()
	p := m.Provider
	reqURL := m.RequestURL()
	key := p.CacheKey(reqURL)
	res := &Result{Provider: p.Name, Key: key}

	if data, ok := o.Cache.Get(ctx, key); ok {
		o.Logger.Debug("cache hit", "provider", p.Name, "key", key)
		res.Data, res.CacheHit, res.Duration = data, true, time.Since(start)
		return res, nil
	}
	o.Logger.Debug("cache miss", "provider", p.Name, "url", reqURL)

	raw, err := o.Client.Fetch(ctx, p, reqURL)
	if err != nil {
		return nil, err
	}
	data, err := p.Normalize(raw)
	if err != nil {
		return nil, err
	}

	if err := o.Cache.Put(ctx, key, data); err != nil {
		o.Logger.Warn("cache write failed", "key", key, "error", err)
	}
	res.Data, res.Duration = data, time.Since(start)
	return res, nil
}
