package hover

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hovercard/pkg/bridge"
	"github.com/matzehuels/hovercard/pkg/extract"
	"github.com/matzehuels/hovercard/pkg/integrations"
	"github.com/matzehuels/hovercard/pkg/observability"
	"github.com/matzehuels/hovercard/pkg/viewport"
)

// Options configures a [Controller]. Registry, Channel and Surface are
// required; zero values of the rest select defaults.
type Options struct {
	Registry *integrations.Registry
	Channel  bridge.Channel
	Surface  Surface
	Clock    Clock
	Logger   *log.Logger

	// LocalMode selects how unmatched links are handled. Default LocalURL.
	LocalMode LocalMode

	// EnterDelay postpones the request after an enter. Default 0.
	EnterDelay time.Duration
	// SettleDelay separates a response from its rendering. Default 300ms.
	SettleDelay time.Duration
	// HideDuration is how long the card takes to hide before Reset.
	// Default 200ms.
	HideDuration time.Duration

	CardSize viewport.Size
	Margin   int

	// Context is passed to the channel with every request.
	Context context.Context
}

type session struct {
	link       Link
	state      State
	generation uint64
	point      viewport.Point
	timer      Timer // pending dispatch or show
}

func (s *session) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Controller runs the hover state machine for a set of bound links.
// It is safe for concurrent use; responses may arrive on any goroutine.
type Controller struct {
	opts   Options
	logger *log.Logger

	mu       sync.Mutex
	sessions map[Link]*session
	active   *session
	reset    Timer
	resetGen uint64
}

// New creates a controller.
func New(opts Options) (*Controller, error) {
	switch {
	case opts.Registry == nil:
		return nil, errors.New("hover: registry is required")
	case opts.Channel == nil:
		return nil, errors.New("hover: channel is required")
	case opts.Surface == nil:
		return nil, errors.New("hover: surface is required")
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.LocalMode == "" {
		opts.LocalMode = LocalURL
	}
	if !opts.LocalMode.Valid() {
		return nil, errors.New("hover: unknown local mode " + string(opts.LocalMode))
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	if opts.HideDuration <= 0 {
		opts.HideDuration = DefaultHideDuration
	}
	if opts.CardSize == (viewport.Size{}) {
		opts.CardSize = viewport.Size{Width: viewport.DefaultCardWidth, Height: viewport.DefaultCardHeight}
	}
	if opts.Margin <= 0 {
		opts.Margin = viewport.DefaultMargin
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	return &Controller{
		opts:     opts,
		logger:   opts.Logger,
		sessions: make(map[Link]*session),
	}, nil
}

// Bind registers link. It reports false if the link was already bound.
func (c *Controller) Bind(link Link) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.sessions[link]; ok {
		return false
	}
	c.sessions[link] = &session{link: link}
	return true
}

// Bound returns the number of bound links.
func (c *Controller) Bound() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}

// State returns the state and current generation of link.
func (c *Controller) State(link Link) (State, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.sessions[link]; ok {
		return s.state, s.generation
	}
	return Idle, 0
}

// Active returns the link whose card is currently in use, if any.
func (c *Controller) Active() (Link, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return nil, false
	}
	return c.active.link, true
}

// Enter handles the pointer entering link at p. Unbound links are ignored.
func (c *Controller) Enter(link Link, p viewport.Point) {
	c.mu.Lock()
	s, ok := c.sessions[link]
	if !ok {
		c.mu.Unlock()
		return
	}

	c.stopReset()
	if prev := c.active; prev != nil && prev != s {
		prev.stopTimer()
		prev.state = Idle
	}
	s.stopTimer()
	s.generation++
	s.state = Armed
	s.point = p
	c.active = s
	gen := s.generation

	c.opts.Surface.ShowLoading(c.place(p))

	if c.opts.EnterDelay > 0 {
		s.timer = c.opts.Clock.AfterFunc(c.opts.EnterDelay, func() { c.dispatch(s, gen) })
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	c.dispatch(s, gen)
}

// Move updates the pointer position of the active link without changing
// its state. The card is not repositioned until it is next rendered.
func (c *Controller) Move(link Link, p viewport.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.sessions[link]; ok && c.active == s {
		s.point = p
	}
}

// Leave handles the pointer leaving link.
func (c *Controller) Leave(link Link) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[link]
	if !ok {
		return
	}
	s.stopTimer()
	s.state = Idle
	if c.active != s {
		return
	}
	c.hide()
}

// Unbind forgets link. Its card is hidden as on Leave and responses still in
// flight for it are discarded. It reports false if the link was not bound.
func (c *Controller) Unbind(link Link) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[link]
	if !ok {
		return false
	}
	delete(c.sessions, link)
	s.stopTimer()
	s.generation++
	s.state = Idle
	if c.active == s {
		c.hide()
	}
	return true
}

// hide must be called with c.mu held and c.active set.
func (c *Controller) hide() {
	c.active = nil
	c.opts.Surface.Hide()

	c.resetGen++
	gen := c.resetGen
	c.reset = c.opts.Clock.AfterFunc(c.opts.HideDuration, func() { c.resetSurface(gen) })
}

// Close cancels every pending timer and hides the card.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.sessions {
		s.stopTimer()
		s.state = Idle
	}
	c.stopReset()
	if c.active != nil {
		c.active = nil
		c.opts.Surface.Hide()
		c.opts.Surface.Reset()
	}
}

func (c *Controller) dispatch(s *session, gen uint64) {
	c.mu.Lock()
	if s.generation != gen || s.state != Armed {
		c.mu.Unlock()
		return
	}
	s.state = Loading
	s.timer = nil
	href := s.link.Href()
	c.mu.Unlock()

	reply := func(r bridge.Response) { c.receive(s, gen, r) }

	if m, ok := c.opts.Registry.Resolve(href); ok {
		c.logger.Debug("requesting preview", "link", href, "provider", m.Provider.Name, "generation", gen)
		c.opts.Channel.Send(c.opts.Context, bridge.GetData(m.Provider.Name, m.Captures), reply)
		return
	}
	if c.opts.LocalMode == LocalPage {
		c.logger.Debug("requesting page overview", "link", href, "generation", gen)
		c.opts.Channel.Send(c.opts.Context, bridge.GetPageOverview(href), reply)
		return
	}
	reply(bridge.OK(extract.FromURL(href)))
}

func (c *Controller) receive(s *session, gen uint64, r bridge.Response) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s.generation != gen || s.state != Loading {
		c.discard(s, gen)
		return
	}
	s.timer = c.opts.Clock.AfterFunc(c.opts.SettleDelay, func() { c.show(s, gen, r) })
}

func (c *Controller) show(s *session, gen uint64, r bridge.Response) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s.generation != gen || s.state != Loading || c.active != s {
		c.discard(s, gen)
		return
	}
	s.state = Shown
	s.timer = nil

	p := c.place(s.point)
	failed := !r.Success || r.Data == nil
	if failed {
		c.opts.Surface.ShowError(r.Error, p)
	} else {
		c.opts.Surface.Show(*r.Data, p)
	}
	observability.Hover().OnShown(s.link.Href(), gen, failed)
}

// discard must be called with c.mu held.
func (c *Controller) discard(s *session, gen uint64) {
	href := s.link.Href()
	c.logger.Debug("discarding response", "link", href, "generation", gen, "current", s.generation, "state", s.state)
	observability.Hover().OnDiscarded(href, gen, s.generation)
}

func (c *Controller) resetSurface(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.resetGen || c.active != nil {
		return
	}
	c.reset = nil
	c.opts.Surface.Reset()
}

// stopReset must be called with c.mu held.
func (c *Controller) stopReset() {
	if c.reset != nil {
		c.reset.Stop()
		c.reset = nil
	}
	c.resetGen++
}

func (c *Controller) place(p viewport.Point) viewport.Placement {
	return viewport.Place(p, c.opts.CardSize, c.opts.Surface.Viewport(), c.opts.Margin)
}
