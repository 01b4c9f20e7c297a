package plumber

import (
	"github.com/vovakirdan/tui-plumber/internal/core"
)

// camera is a one-way horizontal scroller: it follows the player rightward
// and never scrolls back, matching the level design's forward commitment.
type camera struct {
	x      float64 // left edge of the view in world units
	viewW  int
	worldW int
}

func newCamera(viewW, worldW int) *camera {
	return &camera{viewW: viewW, worldW: worldW}
}

// Follow advances the view so the target sits at the view center, clamped
// to the stage and monotonically non-decreasing.
func (c *camera) Follow(targetX float64) {
	want := targetX - float64(c.viewW)/2
	if want > c.x {
		c.x = want
	}
	c.x = core.ClampF(c.x, 0, float64(core.Max(0, c.worldW-c.viewW)))
}

// Left returns the view's left edge in world units.
func (c *camera) Left() float64 { return c.x }

// Right returns the view's right edge in world units.
func (c *camera) Right() float64 { return c.x + float64(c.viewW) }
