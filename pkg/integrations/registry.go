package integrations

import (
	"fmt"
	"strings"
)

// Match is the outcome of resolving a link against the registry.
type Match struct {
	Provider *Provider
	Captures []string
}

// RequestURL returns the API endpoint for this match.
func (m Match) RequestURL() string {
	return m.Provider.RequestURL(m.Captures)
}

// CacheKey returns the cache key for this match.
func (m Match) CacheKey() string {
	return m.Provider.CacheKey(m.RequestURL())
}

// Registry is an ordered, read-only list of providers. Declaration order is a
// precedence policy: the first provider whose pattern matches wins.
//
// A Registry is safe for concurrent use; it is never mutated after
// [NewRegistry] returns.
type Registry struct {
	providers []*Provider
	byName    map[Name]*Provider
}

// NewRegistry builds a registry from definitions in precedence order.
// It rejects duplicate names and definitions missing a pattern or handler.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{byName: make(map[Name]*Provider, len(defs))}
	for i, d := range defs {
		switch {
		case d.Name == "":
			return nil, fmt.Errorf("provider %d: empty name", i)
		case d.Pattern == nil:
			return nil, fmt.Errorf("provider %s: no pattern", d.Name)
		case d.RequestURL == nil:
			return nil, fmt.Errorf("provider %s: no request URL builder", d.Name)
		case d.Normalize == nil:
			return nil, fmt.Errorf("provider %s: no normalizer", d.Name)
		}
		if _, dup := r.byName[d.Name]; dup {
			return nil, fmt.Errorf("provider %s: duplicate name", d.Name)
		}
		if d.DisplayName == "" {
			d.DisplayName = string(d.Name)
		}
		p := &Provider{Descriptor: d.Descriptor, handler: d.Handler}
		r.providers = append(r.providers, p)
		r.byName[d.Name] = p
	}
	return r, nil
}

// MustNewRegistry is like [NewRegistry] but panics on error. Intended for
// package-level registries built from static definitions.
func MustNewRegistry(defs ...Definition) *Registry {
	r, err := NewRegistry(defs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Resolve returns the first provider whose pattern matches rawURL, together
// with the pattern's submatches.
func (r *Registry) Resolve(rawURL string) (Match, bool) {
	rawURL = strings.TrimSpace(rawURL)
	for _, p := range r.providers {
		if m := p.Pattern.FindStringSubmatch(rawURL); m != nil {
			return Match{Provider: p, Captures: m}, true
		}
	}
	return Match{}, false
}

// Lookup returns the provider registered under name.
func (r *Registry) Lookup(name Name) (*Provider, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// Providers returns the providers in precedence order.
func (r *Registry) Providers() []*Provider {
	out := make([]*Provider, len(r.providers))
	copy(out, r.providers)
	return out
}

// Len returns the number of registered providers.
func (r *Registry) Len() int { return len(r.providers) }
