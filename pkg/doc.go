// Package pkg provides the core libraries for Hovercard link previews.
//
// # Overview
//
// Hovercard shows a preview card when the pointer rests on a link. A link is
// matched against a registry of providers (GitHub, npm, crates.io, Packagist,
// Homebrew, Docker Hub, Mozilla Add-ons, Open Library, data.gouv.fr); the
// provider's API response is normalized into a [preview] card, cached with a
// TTL, and handed back over a request/response channel. Links without a
// provider get a synopsis built from the URL or from the page's metadata.
//
// # Architecture
//
// The data flow for one hover:
//
//	document link
//	     ↓
//	[observer] binds qualifying links
//	     ↓
//	[hover] state machine (armed → loading → shown)
//	     ↓
//	[bridge] request over a Channel (in-process Actor or HTTP)
//	     ↓
//	[fetch] orchestrator: registry match → [cache] → [integrations] client
//	     ↓
//	[preview] card data, placed by [viewport]
//
// # Main Packages
//
// ## Domain
//
// [integrations] - Provider registry and the HTTP client. Each provider lives
// in its own subpackage with a URL pattern, request builder and normalizer.
// [integrations/builtin] assembles them in precedence order.
//
// [preview] - Card data (title, description, stats, footer) and the
// formatting helpers normalizers share: counts, percentages and French dates.
//
// [fetch] - Resolve, cache lookup, request, normalize, store. No retries: a
// failed preview is retried on the next hover.
//
// [extract] - Local synopses: hostname cards and page overviews scraped from
// title and meta tags.
//
// ## Infrastructure
//
// [cache] - TTL cache over a pluggable Store: file, Redis, MongoDB, memory
// or none. Expired entries are evicted on read.
//
// [bridge] - The message channel between the page side and the fetch side.
// The Actor bounds concurrent fetches; Server and HTTPChannel carry the same
// messages over HTTP.
//
// [config] - TOML configuration for cache, HTTP, hover timing and server.
//
// ## Page Side
//
// [document] - A mutable HTML tree with mutation notifications.
//
// [observer] - Finds links in a document and binds each exactly once, also
// as the document changes.
//
// [hover] - Per-link hover sessions with generation counters. Stale
// responses are discarded on arrival.
//
// [viewport] - Card placement relative to the pointer and the viewport.
//
// [eventbus] - Typed publish/subscribe used for document mutations.
//
// [observability] - Hooks for HTTP, cache and hover events.
//
// [preview]: https://pkg.go.dev/github.com/matzehuels/hovercard/pkg/preview
// [integrations]: https://pkg.go.dev/github.com/matzehuels/hovercard/pkg/integrations
// [integrations/builtin]: https://pkg.go.dev/github.com/matzehuels/hovercard/pkg/integrations/builtin
// [fetch]: https://pkg.go.dev/github.com/matzehuels/hovercard/pkg/fetch
// [extract]: https://pkg.go.dev/github.com/matzehuels/hovercard/pkg/extract
// [cache]: https://pkg.go.dev/github.com/matzehuels/hovercard/pkg/cache
// [bridge]: https://pkg.go.dev/github.com/matzehuels/hovercard/pkg/bridge
// [config]: https://pkg.go.dev/github.com/matzehuels/hovercard/pkg/config
// [document]: https://pkg.go.dev/github.com/matzehuels/hovercard/pkg/document
// [observer]: https://pkg.go.dev/github.com/matzehuels/hovercard/pkg/observer
// [hover]: https://pkg.go.dev/github.com/matzehuels/hovercard/pkg/hover
// [viewport]: https://pkg.go.dev/github.com/matzehuels/hovercard/pkg/viewport
// [eventbus]: https://pkg.go.dev/github.com/matzehuels/hovercard/pkg/eventbus
// [observability]: https://pkg.go.dev/github.com/matzehuels/hovercard/pkg/observability
package pkg
