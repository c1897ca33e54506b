package integrations

import (
	"encoding/json"
	"fmt"
	"regexp"
	"slices"

	herrors "github.com/matzehuels/hovercard/pkg/errors"
	"github.com/matzehuels/hovercard/pkg/preview"
)

// Name is the unique key of a provider. It prefixes cache keys and is sent
// over the message channel in getData requests.
type Name string

// Descriptor is the data half of a provider: everything needed to route a
// link to it. Descriptors are immutable once a [Registry] is built.
type Descriptor struct {
	Name        Name           // Unique key, e.g. "github"
	DisplayName string         // Human-readable name, e.g. "GitHub"
	Domain      string         // Domain hint, informational only
	Pattern     *regexp.Regexp // Matched against the full link URL

	// RateLimitHeader names the response header that reports the remaining
	// quota. A 403 with this header set to "0" is classified as rate limiting.
	RateLimitHeader string
}

// Handler is the behaviour half of a provider: pure functions keyed by
// provider name in a [Registry].
type Handler struct {
	// RequestURL builds the API endpoint from the pattern's submatches.
	// captures[0] is the whole match.
	RequestURL func(captures []string) string

	// Normalize converts the provider's native JSON response into card data.
	// It must fail rather than return a half-populated result.
	Normalize func(raw []byte) (preview.Data, error)
}

// Provider binds a descriptor to its handler.
type Provider struct {
	Descriptor
	handler Handler
}

// Definition pairs a descriptor with its handler for registration.
type Definition struct {
	Descriptor
	Handler
}

// RequestURL returns the API endpoint for the given captures.
func (p *Provider) RequestURL(captures []string) string {
	return p.handler.RequestURL(captures)
}

// ValidCaptures reports whether captures are exactly what the provider's
// pattern extracts from captures[0].
func (p *Provider) ValidCaptures(captures []string) bool {
	if len(captures) == 0 {
		return false
	}
	return slices.Equal(p.Pattern.FindStringSubmatch(captures[0]), captures)
}

// Normalize decodes raw with the provider's normalizer. Any failure is
// reported as a PROVIDER_ERROR naming the provider.
func (p *Provider) Normalize(raw []byte) (preview.Data, error) {
	data, err := p.handler.Normalize(raw)
	if err != nil {
		return preview.Data{}, herrors.Wrap(herrors.ErrCodeProvider, err, "%s: unexpected response", p.DisplayName)
	}
	return data, nil
}

// CacheKey returns the cache key for a request to this provider. The provider
// name prefix keeps identical request URLs of different providers apart.
func (p *Provider) CacheKey(requestURL string) string {
	return string(p.Name) + ":" + requestURL
}

// Decode unmarshals a provider response into v.
func Decode(raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// MissingField reports a required field absent from a provider response.
func MissingField(field string) error {
	return fmt.Errorf("missing field %q", field)
}

// Capture returns captures[i], or "" when the group is absent.
func Capture(captures []string, i int) string {
	if i < len(captures) {
		return captures[i]
	}
	return ""
}
