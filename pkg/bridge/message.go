// Package bridge carries preview requests from the hover controller to the
// process that is allowed to talk to remote APIs.
//
// # Messages
//
// Two request actions exist:
//
//	{"action":"getData","providerName":"github","captures":["github.com/a/b","a","b"]}
//	{"action":"getPageOverview","url":"https://example.com/"}
//
// and every request is answered exactly once with
//
//	{"success":true,"data":{...}}  or  {"success":false,"error":"..."}
//
// # Channels
//
// A [Channel] delivers a request and invokes a callback with the response,
// out of band. [Actor] runs requests in-process with bounded concurrency;
// [HTTPChannel] posts them to a [Server]. Responses are not ordered: callers
// correlate them themselves.
package bridge

import (
	"github.com/google/uuid"

	"github.com/matzehuels/hovercard/pkg/integrations"
	"github.com/matzehuels/hovercard/pkg/preview"
)

// Action selects what a request asks for.
type Action string

const (
	ActionGetData         Action = "getData"
	ActionGetPageOverview Action = "getPageOverview"
)

// Request is a message to the fetch side.
type Request struct {
	ID           uuid.UUID         `json:"id"`
	Action       Action            `json:"action"`
	ProviderName integrations.Name `json:"providerName,omitempty"`
	Captures     []string          `json:"captures,omitempty"`
	URL          string            `json:"url,omitempty"`
}

// Response answers a request.
type Response struct {
	Success bool          `json:"success"`
	Data    *preview.Data `json:"data,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// GetData builds a request for a provider card.
func GetData(name integrations.Name, captures []string) Request {
	return Request{ID: uuid.New(), Action: ActionGetData, ProviderName: name, Captures: captures}
}

// GetPageOverview builds a request for a scraped page overview.
func GetPageOverview(url string) Request {
	return Request{ID: uuid.New(), Action: ActionGetPageOverview, URL: url}
}

// OK wraps data in a successful response.
func OK(data preview.Data) Response {
	return Response{Success: true, Data: &data}
}

// Fail wraps err in a failed response. The error text is passed on verbatim.
func Fail(err error) Response {
	return Response{Success: false, Error: err.Error()}
}
