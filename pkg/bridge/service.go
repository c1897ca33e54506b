package bridge

import (
	"context"

	herrors "github.com/matzehuels/hovercard/pkg/errors"
	"github.com/matzehuels/hovercard/pkg/extract"
	"github.com/matzehuels/hovercard/pkg/fetch"
	"github.com/matzehuels/hovercard/pkg/preview"
)

// Handler answers one request synchronously.
type Handler interface {
	Handle(ctx context.Context, req Request) Response
}

// HandlerFunc adapts a function to [Handler].
type HandlerFunc func(ctx context.Context, req Request) Response

// Handle calls f(ctx, req).
func (f HandlerFunc) Handle(ctx context.Context, req Request) Response { return f(ctx, req) }

// Service answers requests with the fetch orchestrator and page extractor.
type Service struct {
	Orchestrator *fetch.Orchestrator
	Extractor    *extract.Extractor
}

// Handle dispatches req by action.
func (s *Service) Handle(ctx context.Context, req Request) Response {
	switch req.Action {
	case ActionGetData:
		if req.ProviderName == "" || len(req.Captures) == 0 {
			return Fail(herrors.New(herrors.ErrCodeInvalidInput, "getData needs providerName and captures"))
		}
		data, err := s.Orchestrator.FetchMatch(ctx, req.ProviderName, req.Captures)
		if err != nil {
			return Fail(err)
		}
		return OK(data)
	case ActionGetPageOverview:
		if req.URL == "" {
			return Fail(herrors.New(herrors.ErrCodeInvalidInput, "getPageOverview needs url"))
		}
		var data preview.Data
		if s.Extractor != nil {
			data = s.Extractor.PageOverview(ctx, req.URL)
		} else {
			data = extract.FromURL(req.URL)
		}
		return OK(data)
	default:
		return Fail(herrors.New(herrors.ErrCodeInvalidInput, "unknown action %q", req.Action))
	}
}
