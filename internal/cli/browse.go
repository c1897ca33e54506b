package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hovercard/pkg/bridge"
	"github.com/matzehuels/hovercard/pkg/document"
	"github.com/matzehuels/hovercard/pkg/hover"
	"github.com/matzehuels/hovercard/pkg/integrations"
	"github.com/matzehuels/hovercard/pkg/integrations/builtin"
	"github.com/matzehuels/hovercard/pkg/observer"
	"github.com/matzehuels/hovercard/pkg/viewport"
)

// cardMargin separates the card from the pointer, in cells.
const cardMargin = 2

type browseOpts struct {
	remote  string
	page    bool
	logFile string
}

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var opts browseOpts

	cmd := &cobra.Command{
		Use:   "browse <file.html|url>",
		Short: "Hover the links of an HTML document in the terminal",
		Long: `Render an HTML document in the terminal and show a preview card when the
mouse rests on a link. Tab and shift+tab move between links from the keyboard.

Previews are fetched in-process, or by a "hovercard serve" instance with
--remote.`,
		Example: `  hovercard browse README.html
  hovercard browse https://example.com/links.html --remote http://127.0.0.1:7878`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.remote, "remote", "", "fetch through a hovercard server at this base URL")
	cmd.Flags().BoolVar(&opts.page, "page", false, "scrape page metadata for links without a provider")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file while the view is open")
	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, src string, opts browseOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal, so logs go to a file or nowhere.
	logger := log.New(io.Discard)
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logger = newLogger(f, c.Logger.GetLevel())
	}

	var (
		ch     bridge.Channel
		client *integrations.Client
	)
	hoverCtx := ctx
	if opts.remote != "" {
		ch = bridge.NewHTTPChannel(opts.remote, nil)
	} else {
		s, err := buildStack(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer s.Close()
		var (
			actor *bridge.Actor
			stop  func()
		)
		hoverCtx, actor, stop = s.startActor(ctx, logger)
		defer stop()
		ch, client = actor, s.client
	}

	doc, err := loadDocument(ctx, client, src)
	if err != nil {
		return err
	}

	surface := &termSurface{}
	hopts := cfg.HoverOptions(hover.Options{
		Registry: builtin.Registry(),
		Channel:  ch,
		Surface:  surface,
		Logger:   logger,
		Context:  hoverCtx,
	})
	hopts.CardSize = viewport.Size{Width: cardWidth, Height: cardHeight}
	hopts.Margin = cardMargin
	if opts.page {
		hopts.LocalMode = hover.LocalPage
	}
	ctrl, err := hover.New(hopts)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	obs := observer.New(doc, linkBinder{ctrl}, logger)
	bound := obs.Start()
	defer obs.Stop()
	logger.Info("browsing", "source", src, "links", bound, "remote", opts.remote)

	m := newBrowseModel(src, doc, ctrl, surface)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	surface.attach(p)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("bubble tea: %w", err)
	}
	return nil
}

// linkBinder hands observed links to the hover controller and releases them
// when they leave the document.
type linkBinder struct{ ctrl *hover.Controller }

func (b linkBinder) Bind(n *document.Node)   { b.ctrl.Bind(n) }
func (b linkBinder) Unbind(n *document.Node) { b.ctrl.Unbind(n) }

// =============================================================================
// browseModel
// =============================================================================

// browseModel shows a laid-out document and routes pointer and keyboard
// focus to the hover controller.
type browseModel struct {
	source  string
	doc     *document.Document
	ctrl    *hover.Controller
	surface *termSurface

	layout  *docLayout
	width   int
	height  int
	offset  int
	focus   int // index into layout.links of keyboard focus, -1 for none
	hovered *document.Node
}

func newBrowseModel(source string, doc *document.Document, ctrl *hover.Controller, surface *termSurface) *browseModel {
	m := &browseModel{source: source, doc: doc, ctrl: ctrl, surface: surface, focus: -1}
	m.resize(80, 24)
	return m
}

func (m *browseModel) Init() tea.Cmd { return nil }

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.MouseMsg:
		m.mouse(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.hover(nil, viewport.Point{})
			return m, tea.Quit
		case "esc":
			m.focus = -1
			m.hover(nil, viewport.Point{})
		case "tab":
			m.step(1)
		case "shift+tab":
			m.step(-1)
		case "up", "k":
			m.scroll(-1)
		case "down", "j":
			m.scroll(1)
		case "pgup":
			m.scroll(-m.contentHeight())
		case "pgdown", " ":
			m.scroll(m.contentHeight())
		}
	case redrawMsg:
	}
	return m, nil
}

func (m *browseModel) View() string {
	h := m.contentHeight()
	lines := make([]string, h)
	for i := range lines {
		if j := m.offset + i; j < len(m.layout.lines) {
			lines[i] = m.layout.lines[j]
		}
	}

	snap := m.surface.snapshot()
	if card := snap.render(cardWidth); card != "" {
		lines = overlay(lines, card, snap.placement.Top.Px, snap.placement.Left.Px)
	}
	return strings.Join(lines, "\n") + "\n" + m.statusLine()
}

func (m *browseModel) statusLine() string {
	status := fmt.Sprintf(" %s · %d links · tab: next link · q: quit", m.source, len(m.layout.links))
	if m.hovered != nil {
		status = " " + m.hovered.Href()
	}
	return StyleDim.MaxWidth(m.width).Render(status)
}

func (m *browseModel) contentHeight() int {
	return max(m.height-1, 1)
}

func (m *browseModel) resize(width, height int) {
	m.width, m.height = width, height
	m.layout = layoutDocument(m.doc, width)
	m.surface.setSize(viewport.Size{Width: width, Height: m.contentHeight()})
	m.scroll(0)
}

func (m *browseModel) mouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scroll(-3)
		return
	case tea.MouseButtonWheelDown:
		m.scroll(3)
		return
	}
	var target *document.Node
	if msg.Y < m.contentHeight() {
		target = m.layout.at(m.offset+msg.Y, msg.X)
	}
	m.focus = -1
	m.hover(target, viewport.Point{X: msg.X, Y: msg.Y})
}

// hover moves the pointer onto target, which may be nil.
func (m *browseModel) hover(target *document.Node, p viewport.Point) {
	if target == m.hovered {
		if target != nil {
			m.ctrl.Move(target, p)
		}
		return
	}
	if m.hovered != nil {
		m.ctrl.Leave(m.hovered)
	}
	m.hovered = target
	if target != nil {
		m.ctrl.Enter(target, p)
	}
}

// step moves keyboard focus to the next or previous link and hovers it.
func (m *browseModel) step(dir int) {
	n := len(m.layout.links)
	if n == 0 {
		return
	}
	m.focus = ((m.focus+dir)%n + n) % n
	link := m.layout.links[m.focus]
	span, ok := m.layout.first(link)
	if !ok {
		return
	}
	if span.line < m.offset || span.line >= m.offset+m.contentHeight() {
		m.offset = span.line
		m.scroll(0)
	}
	m.hover(link, viewport.Point{X: span.start, Y: span.line - m.offset})
}

func (m *browseModel) scroll(delta int) {
	maxOffset := max(len(m.layout.lines)-m.contentHeight(), 0)
	next := min(max(m.offset+delta, 0), maxOffset)
	if next != m.offset && m.hovered != nil && m.focus < 0 {
		m.hover(nil, viewport.Point{})
	}
	m.offset = next
}
