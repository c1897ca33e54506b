package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	herrors "github.com/matzehuels/hovercard/pkg/errors"
)

// HTTPChannel sends requests to a [Server].
type HTTPChannel struct {
	base string
	http *http.Client
}

// NewHTTPChannel creates a channel for the server at base, for example
// "http://127.0.0.1:7878". A nil client selects http.DefaultClient.
func NewHTTPChannel(base string, client *http.Client) *HTTPChannel {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPChannel{base: strings.TrimRight(base, "/"), http: client}
}

// Send posts req in the background and replies with the server's response.
// Transport failures are reported as failed responses.
func (c *HTTPChannel) Send(ctx context.Context, req Request, reply func(Response)) {
	go func() {
		resp, err := c.post(ctx, req)
		if err != nil {
			reply(Fail(err))
			return
		}
		reply(resp)
	}()
}

func (c *HTTPChannel) post(ctx context.Context, req Request) (Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Response{}, err
	}
	url := c.base + "/v1/messages"
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Response{}, err
	}
	hreq.Header.Set("Content-Type", "application/json")
	hreq.Header.Set(RequestIDHeader, req.ID.String())

	hresp, err := c.http.Do(hreq)
	if err != nil {
		return Response{}, &herrors.NetworkError{URL: url, Err: err}
	}
	defer hresp.Body.Close()

	var resp Response
	if err := json.NewDecoder(hresp.Body).Decode(&resp); err != nil {
		if hresp.StatusCode != http.StatusOK {
			return Response{}, herrors.NewStatusError(url, hresp.StatusCode, hresp.Status)
		}
		return Response{}, fmt.Errorf("decode response: %w", err)
	}
	return resp, nil
}

var _ Channel = (*HTTPChannel)(nil)
