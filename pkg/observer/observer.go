// Package observer binds hover behaviour to the links of a live document.
//
// An [Observer] scans the document once at start and then every subtree
// added afterwards. Each qualifying link (an <a> element whose href starts
// with "http") is handed to the [Binder] exactly once; the data-hover-handled
// attribute marks links already bound, so repeated scans and moved subtrees
// are harmless.
//
// A link that leaves the document is unmarked and, if the binder is also an
// [Unbinder], released. Inserting it again binds it afresh.
package observer

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hovercard/pkg/document"
	herrors "github.com/matzehuels/hovercard/pkg/errors"
)

// HandledAttr marks a link that has been bound.
const HandledAttr = "data-hover-handled"

// Binder attaches hover behaviour to one link.
type Binder interface {
	Bind(link *document.Node)
}

// Unbinder is implemented by binders that release links removed from the
// document.
type Unbinder interface {
	Unbind(link *document.Node)
}

// BinderFunc adapts a function to [Binder].
type BinderFunc func(link *document.Node)

// Bind calls f(link).
func (f BinderFunc) Bind(link *document.Node) { f(link) }

// Qualifies reports whether n is a link that gets a preview.
func Qualifies(n *document.Node) bool {
	return n.IsElement("a") && herrors.IsHTTPLink(n.Href())
}

// Observer watches a document for qualifying links.
type Observer struct {
	doc    *document.Document
	binder Binder
	logger *log.Logger

	mu    sync.Mutex // serializes scans
	unsub func()
}

// New creates an observer. It does nothing until [Observer.Start].
func New(doc *document.Document, binder Binder, logger *log.Logger) *Observer {
	if logger == nil {
		logger = log.Default()
	}
	return &Observer{doc: doc, binder: binder, logger: logger}
}

// Start scans the whole document and subscribes to its mutations. It
// returns the number of links bound by the initial scan. Calling Start on a
// running observer only rescans.
func (o *Observer) Start() int {
	o.mu.Lock()
	if o.unsub == nil {
		o.unsub = o.doc.Subscribe(o.onMutation)
	}
	o.mu.Unlock()
	return o.Scan()
}

// Stop unsubscribes from the document. Links stay bound.
func (o *Observer) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.unsub != nil {
		o.unsub()
		o.unsub = nil
	}
}

// Scan binds every unbound qualifying link in the document and returns how
// many were bound.
func (o *Observer) Scan() int {
	return o.scan(o.doc.Root())
}

func (o *Observer) onMutation(m document.Mutation) {
	released := 0
	for _, removed := range m.Removed {
		// A move publishes the removal after the node is already reattached.
		if !removed.Connected() {
			released += o.release(removed)
		}
	}
	if released > 0 {
		o.logger.Debug("released removed links", "count", released)
	}

	n := 0
	for _, added := range m.Added {
		n += o.scan(added)
	}
	if n > 0 {
		o.logger.Debug("bound inserted links", "count", n)
	}
}

func (o *Observer) release(root *document.Node) int {
	o.mu.Lock()
	defer o.mu.Unlock()

	u, _ := o.binder.(Unbinder)
	released := 0
	root.Walk(func(n *document.Node) bool {
		if _, handled := n.Attr(HandledAttr); !handled || !n.IsElement("a") {
			return true
		}
		n.RemoveAttr(HandledAttr)
		if u != nil {
			u.Unbind(n)
		}
		released++
		return true
	})
	return released
}

func (o *Observer) scan(root *document.Node) int {
	o.mu.Lock()
	defer o.mu.Unlock()

	bound := 0
	root.Walk(func(n *document.Node) bool {
		if !Qualifies(n) {
			return true
		}
		if _, handled := n.Attr(HandledAttr); handled {
			return true
		}
		n.SetAttr(HandledAttr, "true")
		o.binder.Bind(n)
		bound++
		return true
	})
	return bound
}
