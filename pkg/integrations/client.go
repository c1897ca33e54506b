package integrations

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	herrors "github.com/matzehuels/hovercard/pkg/errors"
	"github.com/matzehuels/hovercard/pkg/observability"
)

// Client provides shared HTTP functionality for provider API calls and page
// scraping. It applies default headers, reports to the HTTP hooks and
// classifies failures. It never retries.
type Client struct {
	http    *http.Client
	headers map[string]string
}

// NewClient creates a Client with the given default headers.
// Headers are applied to all requests made through this client.
// Pass nil for headers if no default headers are needed.
func NewClient(httpClient *http.Client, headers map[string]string) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient(0)
	}
	return &Client{
		http:    httpClient,
		headers: headers,
	}
}

// Fetch performs a GET against a provider endpoint and returns the raw body.
//
// Failures are classified:
//   - transport failure: *errors.NetworkError with Status 0
//   - 403 with the provider's rate-limit header at "0": *errors.RateLimitedError
//   - any other non-2xx: *errors.NetworkError with status and reason phrase
func (c *Client) Fetch(ctx context.Context, p *Provider, url string) ([]byte, error) {
	resp, err := c.doRequest(ctx, url, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, p, url); err != nil {
		return nil, err
	}
	return readBody(resp.Body, maxAPIBody)
}

// GetPage performs a GET for an HTML page and returns at most limit bytes of
// the body along with the response content type.
func (c *Client) GetPage(ctx context.Context, url string, limit int64) ([]byte, string, error) {
	resp, err := c.doRequest(ctx, url, map[string]string{"Accept": "text/html,application/xhtml+xml"})
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, nil, url); err != nil {
		return nil, "", err
	}
	body, err := readBody(resp.Body, limit)
	return body, resp.Header.Get("Content-Type"), err
}

func (c *Client) doRequest(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, herrors.Wrap(herrors.ErrCodeInvalidURL, err, "build request")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, &herrors.NetworkError{URL: url, Err: err}
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))
	return resp, nil
}

func checkStatus(resp *http.Response, p *Provider, url string) error {
	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusForbidden && p != nil && isQuotaExhausted(resp, p.RateLimitHeader):
		return rateLimited(resp, p)
	default:
		return herrors.NewStatusError(url, code, resp.Status)
	}
}

func isQuotaExhausted(resp *http.Response, header string) bool {
	return header != "" && resp.Header.Get(header) == "0"
}

func rateLimited(resp *http.Response, p *Provider) error {
	e := &herrors.RateLimitedError{Provider: p.DisplayName}
	if n, err := strconv.Atoi(resp.Header.Get("X-RateLimit-Limit")); err == nil {
		e.Limit = n
	}
	if ts, err := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64); err == nil {
		e.ResetAt = time.Unix(ts, 0)
	}
	return e
}

func readBody(r io.Reader, limit int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, limit))
	if err != nil {
		return nil, &herrors.NetworkError{Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}
