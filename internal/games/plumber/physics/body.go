// Package physics implements the minimal collision model the simulation
// needs: axis-aligned bodies on named layers, a solid tile grid, short-range
// directional probes, and a per-tick overlap pass that feeds contact
// resolution. There is no impulse solver; gameplay code owns velocities.
package physics

import (
	"github.com/vovakirdan/tui-plumber/internal/core"
)

// Layer is a collision layer. Probes only see LayerDefault solids; the
// contact pass reports every overlapping pair and lets the resolver filter.
type Layer uint8

const (
	LayerDefault Layer = iota // solid level geometry: blocks, pipes, ground bodies
	LayerPlayer
	LayerEnemy
	LayerShell // pushed koopa shells; a hazard to enemies and the player
	LayerItem  // power-ups, coins
	LayerTrigger
)

// Kind describes how a body participates in the simulation.
type Kind int

const (
	Static    Kind = iota // never moves, blocks probes when solid
	Dynamic                // integrated by its owner, probes obstacles
	Kinematic              // externally driven; probes always miss for it
)

// Body is an axis-aligned box attached to a gameplay entity.
// Pos is the entity position; the collider is centered at Pos+Offset and
// spans Size (full width/height) in world units.
type Body struct {
	Pos    core.Vec2
	Vel    core.Vec2
	Size   core.Vec2
	Offset core.Vec2

	Layer   Layer
	Kind    Kind
	Enabled bool // participates in probes and contacts
	Solid   bool // blocks probes (LayerDefault geometry)

	// Owner points back at the gameplay entity for contact resolution.
	Owner any
}

// NewBody creates an enabled body of the given size at the origin.
func NewBody(kind Kind, layer Layer, w, h float64) *Body {
	return &Body{
		Size:    core.V(w, h),
		Layer:   layer,
		Kind:    kind,
		Enabled: true,
	}
}

// Center returns the collider center in world space.
func (b *Body) Center() core.Vec2 {
	return b.Pos.Add(b.Offset)
}

// Min returns the bottom-left corner of the collider.
func (b *Body) Min() core.Vec2 {
	c := b.Center()
	return core.V(c.X-b.Size.X/2, c.Y-b.Size.Y/2)
}

// Max returns the top-right corner of the collider.
func (b *Body) Max() core.Vec2 {
	c := b.Center()
	return core.V(c.X+b.Size.X/2, c.Y+b.Size.Y/2)
}

// SetFootprint changes the collider size and offset, keeping Pos fixed.
// Used when the player grows or shrinks.
func (b *Body) SetFootprint(size, offset core.Vec2) {
	b.Size = size
	b.Offset = offset
}

// Overlaps reports whether two enabled colliders intersect.
func (b *Body) Overlaps(o *Body) bool {
	if !b.Enabled || !o.Enabled {
		return false
	}
	bMin, bMax := b.Min(), b.Max()
	oMin, oMax := o.Min(), o.Max()
	if bMin.X >= oMax.X || oMin.X >= bMax.X {
		return false
	}
	if bMin.Y >= oMax.Y || oMin.Y >= bMax.Y {
		return false
	}
	return true
}
