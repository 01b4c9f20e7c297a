// Package entity provides generic velocity-integrating locomotion for
// autonomous entities (enemies and walking power-ups).
package entity

import (
	"github.com/vovakirdan/tui-plumber/internal/core"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/physics"
)

// Mover patrols an entity horizontally: constant speed along its direction,
// gravity on the vertical axis, bouncing off forward obstacles and resting
// on the ground. Disabled by default; the world enables it only while the
// entity is inside the camera view. That gating is a performance convention,
// not a gameplay rule: a frozen mover has zero velocity and does not
// integrate at all.
type Mover struct {
	Body      *physics.Body
	Direction core.Vec2 // unit vector, typically left or right
	Speed     float64
	Gravity   float64 // negative (downward) acceleration, units/s²

	enabled bool
}

// NewMover creates a disabled mover walking left.
func NewMover(body *physics.Body, speed, gravity float64) *Mover {
	return &Mover{
		Body:      body,
		Direction: core.Left,
		Speed:     speed,
		Gravity:   gravity,
	}
}

// Enabled reports whether the mover is simulating.
func (m *Mover) Enabled() bool { return m.enabled }

// SetEnabled activates or freezes the mover. Freezing puts the body to rest.
func (m *Mover) SetEnabled(v bool) {
	if m.enabled == v {
		return
	}
	m.enabled = v
	if !v && m.Body != nil {
		m.Body.Vel = core.Vec2{}
	}
}

// Reverse flips the patrol direction.
func (m *Mover) Reverse() {
	m.Direction = m.Direction.Scale(-1)
}

// Tick advances one fixed step: set horizontal velocity from the patrol
// direction, integrate gravity, bounce off forward obstacles, and rest on
// the ground.
func (m *Mover) Tick(space *physics.Space, dt float64) {
	if !m.enabled || m.Body == nil {
		return
	}

	if space.Probe(m.Body, m.Direction) {
		m.Reverse()
	}

	m.Body.Vel.X = m.Direction.X * m.Speed
	m.Body.Vel.Y += m.Gravity * dt
	if space.Probe(m.Body, core.Down) && m.Body.Vel.Y < 0 {
		m.Body.Vel.Y = 0
	}

	m.Body.Pos = m.Body.Pos.Add(m.Body.Vel.Scale(dt))
	space.ResolveSolids(m.Body)
}
