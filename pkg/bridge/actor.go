package bridge

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/semaphore"
)

// DefaultConcurrency is the number of requests an [Actor] runs at once.
const DefaultConcurrency = 8

// Channel delivers a request and later calls reply exactly once with the
// response, on an unspecified goroutine. Send itself does not block on the
// request.
type Channel interface {
	Send(ctx context.Context, req Request, reply func(Response))
}

// Actor runs requests against a [Handler] in background goroutines, at most
// a fixed number at a time.
type Actor struct {
	handler Handler
	sem     *semaphore.Weighted
	logger  *log.Logger
	wg      sync.WaitGroup
}

// NewActor creates an actor. A non-positive concurrency selects
// [DefaultConcurrency].
func NewActor(h Handler, concurrency int, logger *log.Logger) *Actor {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Actor{
		handler: h,
		sem:     semaphore.NewWeighted(int64(concurrency)),
		logger:  logger,
	}
}

// Send queues req. If ctx ends before a slot frees up, reply receives the
// context error.
func (a *Actor) Send(ctx context.Context, req Request, reply func(Response)) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.sem.Acquire(ctx, 1); err != nil {
			reply(Fail(err))
			return
		}
		defer a.sem.Release(1)

		start := time.Now()
		resp := a.handler.Handle(ctx, req)
		a.logger.Debug("handled request",
			"id", req.ID,
			"action", req.Action,
			"provider", req.ProviderName,
			"success", resp.Success,
			"duration", time.Since(start))
		reply(resp)
	}()
}

// Call sends req and waits for its response.
func (a *Actor) Call(ctx context.Context, req Request) Response {
	return Call(ctx, a, req)
}

// Wait blocks until every request sent so far has been answered.
func (a *Actor) Wait() {
	a.wg.Wait()
}

// Call sends req over ch and waits for the response or for ctx to end.
func Call(ctx context.Context, ch Channel, req Request) Response {
	done := make(chan Response, 1)
	ch.Send(ctx, req, func(r Response) { done <- r })
	select {
	case r := <-done:
		return r
	case <-ctx.Done():
		return Fail(ctx.Err())
	}
}

var _ Channel = (*Actor)(nil)
