package objects

import (
	"github.com/vovakirdan/tui-plumber/internal/core"
)

const (
	debrisGravity  = -40.0
	debrisLifetime = 1.0
)

// Debris is the four-fragment shower left by a broken brick. It is purely
// visual: fragments fly apart under gravity and vanish after a second.
type Debris struct {
	Pieces  [4]core.Vec2
	vels    [4]core.Vec2
	elapsed float64
}

// NewDebris spawns fragments at the broken block's position.
func NewDebris(pos core.Vec2) *Debris {
	d := &Debris{}
	dirs := [4]core.Vec2{
		core.V(-3, 10), core.V(3, 10),
		core.V(-2, 6), core.V(2, 6),
	}
	for i := range d.Pieces {
		d.Pieces[i] = pos
		d.vels[i] = dirs[i]
	}
	return d
}

// Tick integrates the fragment arcs.
func (d *Debris) Tick(dt float64) {
	d.elapsed += dt
	for i := range d.Pieces {
		d.vels[i].Y += debrisGravity * dt
		d.Pieces[i] = d.Pieces[i].Add(d.vels[i].Scale(dt))
	}
}

// Done reports whether the shower has expired.
func (d *Debris) Done() bool { return d.elapsed >= debrisLifetime }
