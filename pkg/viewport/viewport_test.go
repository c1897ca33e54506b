package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	card   = Size{Width: DefaultCardWidth, Height: DefaultCardHeight}
	screen = Size{Width: 1280, Height: 800}
)

func TestPlaceRightBelow(t *testing.T) {
	got := Place(Point{X: 100, Y: 100}, card, screen, DefaultMargin)
	assert.Equal(t, Px(115), got.Left)
	assert.Equal(t, Px(115), got.Top)
	assert.False(t, got.Right.Set)
	assert.False(t, got.Bottom.Set)
}

func TestPlaceBottomRightCorner(t *testing.T) {
	got := Place(Point{X: 1270, Y: 790}, card, screen, DefaultMargin)
	assert.Equal(t, Placement{Top: Px(595), Left: Px(915), Right: Auto, Bottom: Auto}, got)
}

func TestPlaceClamped(t *testing.T) {
	small := Size{Width: 400, Height: 300}
	got := Place(Point{X: 200, Y: 150}, card, small, DefaultMargin)
	// Neither side fits: 200+340+15 >= 400 and 200-340-15 <= 0.
	assert.Equal(t, Px(45), got.Left)
	// 150+180+15 >= 300 and 150-180-15 <= 0.
	assert.Equal(t, Px(105), got.Top)
}

func TestPlaceClampedToMargin(t *testing.T) {
	tiny := Size{Width: 200, Height: 100}
	got := Place(Point{X: 50, Y: 50}, card, tiny, DefaultMargin)
	assert.Equal(t, Px(DefaultMargin), got.Left)
	assert.Equal(t, Px(DefaultMargin), got.Top)
}

func TestPlaceBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		x        int
		wantLeft int
	}{
		{"fits right with one pixel to spare", 1280 - 340 - 15 - 1, 1280 - 340 - 15 - 1 + 15},
		{"exactly touching right edge goes left", 1280 - 340 - 15, 1280 - 340 - 15 - 340 - 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Place(Point{X: tt.x, Y: 0}, card, screen, DefaultMargin)
			assert.Equal(t, Px(tt.wantLeft), got.Left)
		})
	}
}

func TestPlaceAbove(t *testing.T) {
	got := Place(Point{X: 10, Y: 700}, card, screen, DefaultMargin)
	assert.Equal(t, Px(700-180-15), got.Top)
}
