// Package document is a mutable HTML node tree that reports structural
// changes.
//
// A [Document] is parsed with golang.org/x/net/html and then owned by this
// package: every [Node.AppendChild] and [Node.Remove] publishes a [Mutation]
// to the document's subscribers after the tree has changed. Attribute changes
// are not reported.
//
// All tree access goes through the document lock. Callbacks passed to
// [Node.Walk] run without it.
package document

import (
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/matzehuels/hovercard/pkg/eventbus"
)

// Mutation describes a change to a node's children.
type Mutation struct {
	Target  *Node
	Added   []*Node
	Removed []*Node
}

// Document owns a node tree and its mutation bus.
type Document struct {
	mu   sync.RWMutex
	root *Node
	bus  *eventbus.Bus[Mutation]
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	h, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	d := &Document{bus: eventbus.New[Mutation]()}
	d.root = d.adopt(h, nil)
	return d, nil
}

// ParseString is a convenience wrapper around [Parse].
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// New returns an empty document with html, head and body elements.
func New() *Document {
	d, _ := ParseString("")
	return d
}

// Root returns the document node.
func (d *Document) Root() *Node { return d.root }

// Body returns the body element, or the root if there is none.
func (d *Document) Body() *Node {
	if b := d.root.First(func(n *Node) bool { return n.IsElement("body") }); b != nil {
		return b
	}
	return d.root
}

// Subscribe registers fn for mutations and returns an unsubscribe function.
// Mutations are delivered synchronously on the goroutine that made the change.
func (d *Document) Subscribe(fn func(Mutation)) func() {
	return d.bus.Subscribe(fn)
}

// CreateElement returns a detached element owned by d. attrs are key/value
// pairs.
func (d *Document) CreateElement(tag string, attrs ...string) *Node {
	n := &Node{doc: d, Type: html.ElementNode, Data: tag}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.attrs = append(n.attrs, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

// CreateText returns a detached text node owned by d.
func (d *Document) CreateText(text string) *Node {
	return &Node{doc: d, Type: html.TextNode, Data: text}
}

// ParseFragment parses an HTML fragment in body context and returns its
// top-level nodes, detached and owned by d.
func (d *Document) ParseFragment(r io.Reader) ([]*Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	hs, err := html.ParseFragment(r, ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Node, len(hs))
	for i, h := range hs {
		out[i] = d.adopt(h, nil)
	}
	return out, nil
}

// adopt converts an x/net/html subtree into nodes owned by d.
func (d *Document) adopt(h *html.Node, parent *Node) *Node {
	n := &Node{
		doc:    d,
		parent: parent,
		Type:   h.Type,
		Data:   h.Data,
		attrs:  append([]html.Attribute(nil), h.Attr...),
	}
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		n.children = append(n.children, d.adopt(c, n))
	}
	return n
}

func (d *Document) publish(m Mutation) {
	d.bus.Publish(m)
}
