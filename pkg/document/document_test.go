package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><head><title>t</title></head><body>
<p>See <a href="https://github.com/octocat/Hello-World">Hello</a> and
<a href="/relative">relative</a>.</p>
</body></html>`

func links(n *Node) []*Node {
	return n.All(func(c *Node) bool { return c.IsElement("a") })
}

func TestParse(t *testing.T) {
	doc, err := ParseString(page)
	require.NoError(t, err)

	as := links(doc.Root())
	require.Len(t, as, 2)
	assert.Equal(t, "https://github.com/octocat/Hello-World", as[0].Href())
	assert.Equal(t, "Hello", as[0].Text())
	assert.True(t, doc.Body().IsElement("body"))
}

func TestAppendChildPublishes(t *testing.T) {
	doc := New()
	var got []Mutation
	unsub := doc.Subscribe(func(m Mutation) { got = append(got, m) })
	defer unsub()

	div := doc.CreateElement("div", "class", "box")
	require.NoError(t, doc.Body().AppendChild(div))

	require.Len(t, got, 1)
	assert.Same(t, doc.Body(), got[0].Target)
	assert.Equal(t, []*Node{div}, got[0].Added)
	assert.Same(t, doc.Body(), div.Parent())

	cls, ok := div.Attr("class")
	assert.True(t, ok)
	assert.Equal(t, "box", cls)
}

func TestAppendChildMovesNode(t *testing.T) {
	doc := New()
	a := doc.CreateElement("div")
	b := doc.CreateElement("div")
	child := doc.CreateText("x")
	require.NoError(t, doc.Body().AppendChild(a))
	require.NoError(t, doc.Body().AppendChild(b))
	require.NoError(t, a.AppendChild(child))

	var got []Mutation
	doc.Subscribe(func(m Mutation) { got = append(got, m) })

	require.NoError(t, b.AppendChild(child))
	require.Len(t, got, 2)
	assert.Same(t, a, got[0].Target)
	assert.Equal(t, []*Node{child}, got[0].Removed)
	assert.Same(t, b, got[1].Target)
	assert.Empty(t, a.Children())
	assert.Equal(t, []*Node{child}, b.Children())
}

func TestAppendChildRejectsCycleAndForeignNodes(t *testing.T) {
	doc := New()
	outer := doc.CreateElement("div")
	inner := doc.CreateElement("span")
	require.NoError(t, outer.AppendChild(inner))

	assert.ErrorIs(t, inner.AppendChild(outer), ErrCycle)
	assert.ErrorIs(t, outer.AppendChild(outer), ErrCycle)
	assert.ErrorIs(t, outer.AppendChild(New().CreateElement("p")), ErrForeignNode)
}

func TestRemove(t *testing.T) {
	doc, err := ParseString(page)
	require.NoError(t, err)
	a := links(doc.Root())[0]
	parent := a.Parent()

	var got []Mutation
	doc.Subscribe(func(m Mutation) { got = append(got, m) })

	a.Remove()
	a.Remove()

	require.Len(t, got, 1)
	assert.Same(t, parent, got[0].Target)
	assert.Nil(t, a.Parent())
	assert.Len(t, links(doc.Root()), 1)
}

func TestParseFragment(t *testing.T) {
	doc := New()
	nodes, err := doc.ParseFragment(strings.NewReader(`<div><ul><li><a href="https://crates.io/crates/serde">serde</a></li></ul></div><p>tail</p>`))
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.True(t, nodes[0].IsElement("div"))
	assert.Nil(t, nodes[0].Parent())

	require.NoError(t, doc.Body().AppendChild(nodes[0]))
	assert.Len(t, links(doc.Root()), 1)
}

func TestSetAttrReplaces(t *testing.T) {
	n := New().CreateElement("a", "href", "https://a")
	n.SetAttr("href", "https://b")
	n.SetAttr("data-x", "1")

	assert.Equal(t, "https://b", n.Href())
	v, ok := n.Attr("data-x")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	_, ok = n.Attr("missing")
	assert.False(t, ok)
}

func TestRemoveAttr(t *testing.T) {
	n := New().CreateElement("a", "href", "https://a", "data-x", "1")
	n.RemoveAttr("data-x")
	n.RemoveAttr("missing")

	_, ok := n.Attr("data-x")
	assert.False(t, ok)
	assert.Equal(t, "https://a", n.Href())
}

func TestConnected(t *testing.T) {
	doc, err := ParseString(page)
	require.NoError(t, err)
	a := links(doc.Root())[0]
	assert.True(t, a.Connected())
	assert.True(t, doc.Root().Connected())

	a.Remove()
	assert.False(t, a.Connected())

	div := doc.CreateElement("div")
	require.NoError(t, div.AppendChild(a))
	assert.False(t, a.Connected(), "child of a detached node")

	require.NoError(t, doc.Body().AppendChild(div))
	assert.True(t, a.Connected())
}
