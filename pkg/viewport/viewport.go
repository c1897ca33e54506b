// Package viewport places the preview card next to the pointer.
package viewport

// Default card geometry, in pixels (or cells for terminal surfaces).
const (
	DefaultCardWidth  = 340
	DefaultCardHeight = 180
	DefaultMargin     = 15
)

// Point is a pointer position relative to the viewport origin.
type Point struct {
	X, Y int
}

// Size is a width and height.
type Size struct {
	Width, Height int
}

// Edge is one CSS-like offset. An unset edge means "auto".
type Edge struct {
	Px  int
	Set bool
}

// Px returns a set edge.
func Px(v int) Edge { return Edge{Px: v, Set: true} }

// Auto is the unset edge.
var Auto = Edge{}

// Placement pins the card's top-left corner. Right and Bottom are always
// auto, clearing any previous anchoring to those edges.
type Placement struct {
	Top, Left, Right, Bottom Edge
}

// Place computes where a card of the given size goes for a pointer at p.
//
// Horizontally the card goes right of the pointer if it fits, else left of
// it, else it is clamped to max(margin, viewport.Width-card.Width-margin).
// The vertical axis is handled the same way, preferring below the pointer.
func Place(p Point, card, viewport Size, margin int) Placement {
	return Placement{
		Top:    Px(axis(p.Y, card.Height, viewport.Height, margin)),
		Left:   Px(axis(p.X, card.Width, viewport.Width, margin)),
		Right:  Auto,
		Bottom: Auto,
	}
}

func axis(pos, size, extent, margin int) int {
	switch {
	case pos+size+margin < extent:
		return pos + margin
	case pos-size-margin > 0:
		return pos - size - margin
	default:
		return max(margin, extent-size-margin)
	}
}
