package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/net/html"

	"github.com/matzehuels/hovercard/pkg/document"
	"github.com/matzehuels/hovercard/pkg/observer"
)

// linkSpan is the screen extent of (part of) a link: columns [start, end)
// of one laid-out line.
type linkSpan struct {
	line, start, end int
	node             *document.Node
}

// docLayout is a document flowed into lines of a fixed width.
type docLayout struct {
	lines []string
	spans []linkSpan
	links []*document.Node // qualifying links in document order
}

// at returns the link under column col of line, if any.
func (d *docLayout) at(line, col int) *document.Node {
	for _, s := range d.spans {
		if s.line == line && col >= s.start && col < s.end {
			return s.node
		}
	}
	return nil
}

// first returns the first span of n.
func (d *docLayout) first(n *document.Node) (linkSpan, bool) {
	for _, s := range d.spans {
		if s.node == n {
			return s, true
		}
	}
	return linkSpan{}, false
}

var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "hr": true, "pre": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "li": true, "dl": true, "dt": true, "dd": true,
	"table": true, "tr": true, "blockquote": true, "section": true,
	"article": true, "header": true, "footer": true, "nav": true, "main": true,
}

var skipTags = map[string]bool{
	"head": true, "script": true, "style": true, "noscript": true, "template": true,
}

// layoutDocument flows the body of doc into lines at most width cells wide.
// Only qualifying links become hover targets.
func layoutDocument(doc *document.Document, width int) *docLayout {
	f := &flow{width: max(width, 20), out: &docLayout{}}
	f.node(doc.Body(), lipgloss.NewStyle(), nil)
	f.newline()
	return f.out
}

type flow struct {
	width   int
	out     *docLayout
	cur     strings.Builder
	col     int
	pending bool // a space separates the next word
}

func (f *flow) node(n *document.Node, style lipgloss.Style, link *document.Node) {
	if n == nil {
		return
	}
	switch n.Type {
	case html.TextNode:
		f.text(n.Data, style, link)
		return
	case html.ElementNode:
	case html.DocumentNode:
	default:
		return
	}

	tag := n.Data
	if skipTags[tag] {
		return
	}
	block := blockTags[tag]
	if block {
		f.newline()
	}
	switch {
	case tag == "h1" || tag == "h2" || tag == "h3":
		style = StyleTitle
	case tag == "li":
		f.word("•", StyleDim, nil)
		f.pending = true
	case observer.Qualifies(n):
		link = n
		style = StyleLink
		f.out.links = append(f.out.links, n)
	}
	for _, child := range n.Children() {
		f.node(child, style, link)
	}
	if block {
		f.newline()
	}
}

func (f *flow) text(s string, style lipgloss.Style, link *document.Node) {
	if s == "" {
		return
	}
	if startsWithSpace(s) {
		f.pending = true
	}
	words := strings.Fields(s)
	for i, w := range words {
		if i > 0 {
			f.pending = true
		}
		f.word(w, style, link)
	}
	if len(words) > 0 && endsWithSpace(s) {
		f.pending = true
	}
}

func (f *flow) word(w string, style lipgloss.Style, link *document.Node) {
	wlen := ansi.StringWidth(w)
	if f.col > 0 && f.col+1+wlen > f.width {
		f.newline()
	}
	if f.col > 0 && f.pending {
		f.cur.WriteByte(' ')
		f.col++
	}
	f.pending = false

	if link != nil {
		f.out.spans = append(f.out.spans, linkSpan{
			line:  len(f.out.lines),
			start: f.col,
			end:   f.col + wlen,
			node:  link,
		})
	}
	f.cur.WriteString(style.Render(w))
	f.col += wlen
}

func (f *flow) newline() {
	if f.col == 0 {
		return
	}
	f.out.lines = append(f.out.lines, f.cur.String())
	f.cur.Reset()
	f.col = 0
	f.pending = false
}

func startsWithSpace(s string) bool {
	return strings.TrimLeft(s, " \t\r\n") != s
}

func endsWithSpace(s string) bool {
	return strings.TrimRight(s, " \t\r\n") != s
}

// overlay draws box over bg with its top-left corner at (top, left).
// Lines of bg are extended with spaces where the box reaches past them.
func overlay(bg []string, box string, top, left int) []string {
	out := append([]string(nil), bg...)
	for i, bl := range strings.Split(box, "\n") {
		row := top + i
		if row < 0 || row >= len(out) {
			continue
		}
		line := out[row]
		w := ansi.StringWidth(line)

		head := ansi.Truncate(line, left, "")
		if w < left {
			head += strings.Repeat(" ", left-w)
		}
		var tail string
		if end := left + ansi.StringWidth(bl); w > end {
			tail = ansi.TruncateLeft(line, end, "")
		}
		out[row] = head + "\x1b[0m" + bl + tail
	}
	return out
}
