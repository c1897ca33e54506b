package integrations

import (
	"net/http"
	"net/url"
	"time"
)

const (
	httpTimeout = 10 * time.Second

	// maxAPIBody caps provider API responses.
	maxAPIBody = 10 << 20
)

// DefaultUserAgent is sent with every request unless overridden.
const DefaultUserAgent = "hovercard/1.0 (+https://github.com/matzehuels/hovercard)"

// NewHTTPClient creates an HTTP client for provider requests. A zero timeout
// selects the default of 10 seconds.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = httpTimeout
	}
	return &http.Client{Timeout: timeout}
}

// DefaultHeaders returns the headers sent with every request. No
// authentication header is ever added.
func DefaultHeaders(userAgent string) map[string]string {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return map[string]string{"User-Agent": userAgent}
}

// PathEscape percent-encodes a single path segment.
// This is a convenience wrapper around [url.PathEscape].
func PathEscape(s string) string { return url.PathEscape(s) }

// Hostname returns the host of rawURL without port, or "" if it cannot be parsed.
func Hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
