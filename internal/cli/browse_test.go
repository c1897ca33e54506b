package cli

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"github.com/matzehuels/hovercard/pkg/bridge"
	"github.com/matzehuels/hovercard/pkg/cache"
	"github.com/matzehuels/hovercard/pkg/config"
	"github.com/matzehuels/hovercard/pkg/fetch"
	"github.com/matzehuels/hovercard/pkg/hover"
	"github.com/matzehuels/hovercard/pkg/integrations"
	"github.com/matzehuels/hovercard/pkg/integrations/builtin"
	"github.com/matzehuels/hovercard/pkg/observer"
)

// pendingChannel records requests and never answers them.
type pendingChannel struct {
	mu   sync.Mutex
	sent []bridge.Request
}

func (c *pendingChannel) Send(_ context.Context, req bridge.Request, _ func(bridge.Response)) {
	c.mu.Lock()
	c.sent = append(c.sent, req)
	c.mu.Unlock()
}

func (c *pendingChannel) requests() []bridge.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]bridge.Request(nil), c.sent...)
}

func newTestBrowse(t *testing.T) (*browseModel, *hover.Controller, *pendingChannel) {
	t.Helper()
	doc := mustParse(t, linkPage)
	ch := &pendingChannel{}
	surface := &termSurface{}
	ctrl, err := hover.New(hover.Options{
		Registry: builtin.Registry(),
		Channel:  ch,
		Surface:  surface,
		Logger:   log.New(io.Discard),
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(ctrl.Close)

	obs := observer.New(doc, linkBinder{ctrl}, log.New(io.Discard))
	if n := obs.Start(); n != 3 {
		t.Fatalf("bound %d links, want 3", n)
	}
	t.Cleanup(obs.Stop)

	m := newBrowseModel("links.html", doc, ctrl, surface)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, ctrl, ch
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}
}

func TestBrowseMouseEntersAndLeaves(t *testing.T) {
	m, ctrl, ch := newTestBrowse(t)

	m.Update(motion(5, 0))
	active, ok := ctrl.Active()
	if !ok || active.Href() != "https://github.com/octocat/Hello-World" {
		t.Fatalf("active = %v, %v; want the repo link", active, ok)
	}
	if reqs := ch.requests(); len(reqs) != 1 || reqs[0].Action != bridge.ActionGetData {
		t.Errorf("requests = %+v, want one getData", reqs)
	}
	if !strings.Contains(ansi.Strip(m.View()), "Chargement...") {
		t.Error("view lacks the loading card")
	}

	// Moving within the link keeps the same session.
	m.Update(motion(9, 0))
	if len(ch.requests()) != 1 {
		t.Error("moving within a link sent another request")
	}

	m.Update(motion(0, 0))
	if _, ok := ctrl.Active(); ok {
		t.Error("leaving the link should clear the active link")
	}
	if strings.Contains(ansi.Strip(m.View()), "Chargement...") {
		t.Error("card still drawn after leaving")
	}
}

func TestBrowseTabCyclesLinks(t *testing.T) {
	m, ctrl, _ := newTestBrowse(t)

	wants := []string{
		"https://github.com/octocat/Hello-World",
		"https://www.npmjs.com/package/react",
		"https://example.com/post",
		"https://github.com/octocat/Hello-World",
	}
	for i, want := range wants {
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		active, ok := ctrl.Active()
		if !ok || active.Href() != want {
			t.Fatalf("tab %d: active = %v, want %s", i+1, active, want)
		}
	}

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if active, _ := ctrl.Active(); active.Href() != wants[2] {
		t.Errorf("shift+tab: active = %s, want %s", active.Href(), wants[2])
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := ctrl.Active(); ok {
		t.Error("esc should leave the focused link")
	}
}

func TestBrowseQuit(t *testing.T) {
	m, ctrl, _ := newTestBrowse(t)
	m.Update(motion(5, 0))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
	if _, ok := ctrl.Active(); ok {
		t.Error("quitting should leave the hovered link")
	}
}

func TestBrowseStatusLine(t *testing.T) {
	m, _, _ := newTestBrowse(t)
	view := ansi.Strip(m.View())
	lines := strings.Split(view, "\n")
	if len(lines) != 24 {
		t.Fatalf("view has %d lines, want 24", len(lines))
	}
	if !strings.Contains(lines[23], "3 links") {
		t.Errorf("status line = %q", lines[23])
	}
}

func TestStartActorStopAbandonsInFlightFetch(t *testing.T) {
	arrived := make(chan struct{}, 1)
	release := make(chan struct{})
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		arrived <- struct{}{}
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(func() {
		close(release)
		api.Close()
	})

	// No client timeout: only cancellation ends the request.
	target, _ := url.Parse(api.URL)
	client := integrations.NewClient(&http.Client{Transport: toServer{target}}, integrations.DefaultHeaders(""))
	logger := log.New(io.Discard)
	ttl := cache.New(cache.NewMemoryStore(), cache.WithLogger(logger))
	s := &stack{
		cfg:          config.Default(),
		orchestrator: fetch.NewOrchestrator(builtin.Registry(), ttl, client, logger),
	}

	ctx, actor, stop := s.startActor(context.Background(), logger)
	replies := make(chan bridge.Response, 1)
	req := bridge.GetData("github", []string{"github.com/octocat/Hello-World", "octocat", "Hello-World"})
	actor.Send(ctx, req, func(r bridge.Response) { replies <- r })

	select {
	case <-arrived:
	case <-time.After(5 * time.Second):
		t.Fatal("request never reached the API")
	}

	stopped := make(chan struct{})
	go func() {
		stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("stop blocked on an in-flight fetch")
	}
	if r := <-replies; r.Success {
		t.Error("abandoned fetch reported success")
	}
}

func TestBrowseReleasesRemovedLinks(t *testing.T) {
	m, ctrl, _ := newTestBrowse(t)
	m.Update(motion(5, 0))

	m.doc.Root().First(observer.Qualifies).Remove()
	if n := ctrl.Bound(); n != 2 {
		t.Errorf("bound = %d after removing a link, want 2", n)
	}
	if _, ok := ctrl.Active(); ok {
		t.Error("removing the hovered link should hide its card")
	}
}
