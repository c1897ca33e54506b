package document

import (
	"errors"
	"strings"

	"golang.org/x/net/html"
)

// ErrForeignNode is returned when linking nodes of different documents.
var ErrForeignNode = errors.New("node belongs to another document")

// ErrCycle is returned when a node would become its own descendant.
var ErrCycle = errors.New("node cannot contain itself")

// Node is an element, text, comment or document node.
type Node struct {
	Type html.NodeType
	Data string // tag name for elements, content for text

	doc      *Document
	parent   *Node
	children []*Node
	attrs    []html.Attribute
}

// IsElement reports whether n is an element with the given tag.
func (n *Node) IsElement(tag string) bool {
	return n.Type == html.ElementNode && strings.EqualFold(n.Data, tag)
}

// Parent returns the parent node, or nil for roots and detached nodes.
func (n *Node) Parent() *Node {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	return n.parent
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	return append([]*Node(nil), n.children...)
}

// Attr returns the value of the attribute key.
func (n *Node) Attr(key string) (string, bool) {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	return n.attr(key)
}

func (n *Node) attr(key string) (string, bool) {
	for _, a := range n.attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces the attribute key.
func (n *Node) SetAttr(key, val string) {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	for i, a := range n.attrs {
		if a.Key == key {
			n.attrs[i].Val = val
			return
		}
	}
	n.attrs = append(n.attrs, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes the attribute key, if present.
func (n *Node) RemoveAttr(key string) {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()
	for i, a := range n.attrs {
		if a.Key == key {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			return
		}
	}
}

// Connected reports whether n is reachable from the document root.
func (n *Node) Connected() bool {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	p := n
	for p.parent != nil {
		p = p.parent
	}
	return p == n.doc.root
}

// Href returns the href attribute, or "".
func (n *Node) Href() string {
	v, _ := n.Attr("href")
	return v
}

// Text returns the concatenated text of n's subtree with whitespace runs
// collapsed.
func (n *Node) Text() string {
	var b strings.Builder
	n.Walk(func(c *Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
			b.WriteByte(' ')
		}
		return true
	})
	return strings.Join(strings.Fields(b.String()), " ")
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the node's children. The structure is snapshotted before fn is
// first called, so fn may read attributes or mutate the tree; changes are
// not reflected in the ongoing walk.
func (n *Node) Walk(fn func(*Node) bool) {
	type visit struct {
		node  *Node
		depth int
	}
	n.doc.mu.RLock()
	var order []visit
	var collect func(*Node, int)
	collect = func(c *Node, depth int) {
		order = append(order, visit{c, depth})
		for _, gc := range c.children {
			collect(gc, depth+1)
		}
	}
	collect(n, 0)
	n.doc.mu.RUnlock()

	skipBelow := -1
	for _, v := range order {
		if skipBelow >= 0 {
			if v.depth > skipBelow {
				continue
			}
			skipBelow = -1
		}
		if !fn(v.node) {
			skipBelow = v.depth
		}
	}
}

// First returns the first node in n's subtree matching pred.
func (n *Node) First(pred func(*Node) bool) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if pred(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

// All returns every node in n's subtree matching pred, in document order.
func (n *Node) All(pred func(*Node) bool) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if pred(c) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// AppendChild makes child the last child of n, detaching it from its
// previous parent first. Subscribers see the removal, if any, followed by
// the addition.
func (n *Node) AppendChild(child *Node) error {
	if child.doc != n.doc {
		return ErrForeignNode
	}

	n.doc.mu.Lock()
	for p := n; p != nil; p = p.parent {
		if p == child {
			n.doc.mu.Unlock()
			return ErrCycle
		}
	}
	old := child.parent
	if old != nil {
		old.removeChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	n.doc.mu.Unlock()

	if old != nil {
		n.doc.publish(Mutation{Target: old, Removed: []*Node{child}})
	}
	n.doc.publish(Mutation{Target: n, Added: []*Node{child}})
	return nil
}

// Remove detaches n from its parent. Removing a detached node does nothing.
func (n *Node) Remove() {
	n.doc.mu.Lock()
	parent := n.parent
	if parent == nil {
		n.doc.mu.Unlock()
		return
	}
	parent.removeChild(n)
	n.doc.mu.Unlock()

	n.doc.publish(Mutation{Target: parent, Removed: []*Node{n}})
}

// removeChild unlinks child. Caller holds the document lock.
func (n *Node) removeChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			break
		}
	}
	child.parent = nil
}
