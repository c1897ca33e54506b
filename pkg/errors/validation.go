package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// maxURLLength bounds link URLs accepted for previews.
const maxURLLength = 2048

// ValidateURL validates a link URL before it is routed to a provider or
// scraped. Only absolute http and https URLs with a host are accepted.
//
// Validation rules:
//   - URL cannot be empty
//   - Maximum length of 2048 characters
//   - No control characters
//   - Scheme must be http or https
//   - Host must be present
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidURL, "URL cannot be empty")
	}
	if len(rawURL) > maxURLLength {
		return New(ErrCodeInvalidURL, "URL too long (max %d characters)", maxURLLength)
	}
	for _, r := range rawURL {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidURL, "URL contains invalid control characters")
		}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidURL, err, "parse URL")
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return New(ErrCodeInvalidURL, "URL must use http or https scheme")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidURL, "URL has no host")
	}
	return nil
}

// IsHTTPLink reports whether href qualifies for a preview. It mirrors the
// a[href^="http"] selector: only the prefix is checked, so malformed URLs
// still get a (fallback) card.
func IsHTTPLink(href string) bool {
	return strings.HasPrefix(href, "http")
}
