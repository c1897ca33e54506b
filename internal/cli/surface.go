package cli

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/hovercard/pkg/hover"
	"github.com/matzehuels/hovercard/pkg/preview"
	"github.com/matzehuels/hovercard/pkg/viewport"
)

// cardHeight is the height the positioner reserves for a terminal card.
const cardHeight = 14

type cardState int

const (
	cardHidden cardState = iota
	cardLoading
	cardShown
	cardFailed
)

// redrawMsg asks the browse model to re-render after the card changed.
type redrawMsg struct{}

// termSurface is the hover surface of the browse view. The controller
// calls it with its lock held, so it only records state and schedules a
// redraw.
type termSurface struct {
	mu        sync.Mutex
	state     cardState
	data      preview.Data
	errMsg    string
	placement viewport.Placement
	size      viewport.Size
	program   *tea.Program
}

var _ hover.Surface = (*termSurface)(nil)

// cardSnapshot is the surface state a frame is drawn from.
type cardSnapshot struct {
	state     cardState
	data      preview.Data
	errMsg    string
	placement viewport.Placement
}

func (s *termSurface) attach(p *tea.Program) {
	s.mu.Lock()
	s.program = p
	s.mu.Unlock()
}

func (s *termSurface) setSize(size viewport.Size) {
	s.mu.Lock()
	s.size = size
	s.mu.Unlock()
}

func (s *termSurface) snapshot() cardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cardSnapshot{state: s.state, data: s.data, errMsg: s.errMsg, placement: s.placement}
}

func (s *termSurface) Viewport() viewport.Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

func (s *termSurface) ShowLoading(p viewport.Placement) {
	s.update(func() {
		s.state = cardLoading
		s.placement = p
	})
}

func (s *termSurface) Show(d preview.Data, p viewport.Placement) {
	s.update(func() {
		s.state = cardShown
		s.data = d
		s.placement = p
	})
}

func (s *termSurface) ShowError(msg string, p viewport.Placement) {
	s.update(func() {
		s.state = cardFailed
		s.errMsg = msg
		s.placement = p
	})
}

func (s *termSurface) Hide() {
	s.update(func() { s.state = cardHidden })
}

func (s *termSurface) Reset() {
	s.update(func() {
		s.data = preview.Data{}
		s.errMsg = ""
		s.placement = viewport.Placement{}
	})
}

func (s *termSurface) update(fn func()) {
	s.mu.Lock()
	fn()
	p := s.program
	s.mu.Unlock()
	if p != nil {
		go p.Send(redrawMsg{})
	}
}

// render draws the card for snap, or "" when it is hidden.
func (c cardSnapshot) render(width int) string {
	switch c.state {
	case cardLoading:
		return renderLoadingCard(width)
	case cardShown:
		return renderCard(c.data, width)
	case cardFailed:
		return renderErrorCard(c.errMsg, width)
	default:
		return ""
	}
}
