// Package player implements the player character: the locomotion state
// machine with custom gravity/velocity integration, and the combat/form
// state machine with its timed transition sequences.
package player

import (
	"github.com/vovakirdan/tui-plumber/internal/config"
	"github.com/vovakirdan/tui-plumber/internal/core"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/events"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/physics"
)

// Locomotion is the derived movement state, used by presentation to pick a
// sprite. States are computed from velocity and input, never stored.
type Locomotion int

const (
	LocomotionIdle Locomotion = iota
	LocomotionRunning
	LocomotionJumping
	LocomotionSliding
	LocomotionFlagpole
	LocomotionCinematic
)

// String returns the locomotion state name.
func (l Locomotion) String() string {
	switch l {
	case LocomotionIdle:
		return "idle"
	case LocomotionRunning:
		return "running"
	case LocomotionJumping:
		return "jumping"
	case LocomotionSliding:
		return "sliding"
	case LocomotionFlagpole:
		return "flagpole"
	case LocomotionCinematic:
		return "cinematic"
	default:
		return "unknown"
	}
}

// runningThreshold is the horizontal speed below which the player idles.
const runningThreshold = 0.25

// Player is the player character. State decisions run once per rendered
// frame (FrameTick); position integration runs once per fixed physics step
// (PhysicsTick). The separation is a determinism convention inherited from
// the host loop and must be preserved.
type Player struct {
	Body   *physics.Body
	Facing float64 // +1 right, -1 left; flips with velocity sign only

	// FlagpoleHold and Cinematic suspend normal control entirely: no input
	// is processed and velocity is driven externally.
	FlagpoleHold bool
	Cinematic    bool

	cfg config.MovementConfig
	bus *events.Bus

	combat *Combat

	// Touched holds the solid-contact sides from the last physics step.
	// The world reads Above to resolve head hits on blocks.
	Touched physics.SideFlags

	grounded bool
	lastAxis float64

	viewLeft, viewRight float64 // camera bounds in world units
	edgeMargin          float64
}

// New creates the player at the given spawn position with the small-form
// footprint.
func New(cfg config.PlumberConfig, bus *events.Bus, spawn core.Vec2) *Player {
	body := physics.NewBody(physics.Dynamic, physics.LayerPlayer, smallSize.X, smallSize.Y)
	body.Pos = spawn
	p := &Player{
		Body:       body,
		Facing:     1,
		cfg:        cfg.Movement,
		bus:        bus,
		edgeMargin: cfg.Camera.EdgeMargin,
		viewRight:  1e9,
	}
	p.combat = newCombat(p, cfg.Combat, bus)
	return p
}

// Combat returns the combat/form state machine.
func (p *Player) Combat() *Combat { return p.combat }

// JumpForce returns the takeoff impulse derived from the jump arc:
// 2h / (t/2).
func (p *Player) JumpForce() float64 {
	return 2 * p.cfg.MaxJumpHeight / (p.cfg.MaxJumpTime / 2)
}

// Gravity returns the base downward acceleration derived from the jump arc:
// -2h / (t/2)².
func (p *Player) Gravity() float64 {
	half := p.cfg.MaxJumpTime / 2
	return -2 * p.cfg.MaxJumpHeight / (half * half)
}

// Grounded reports whether the last frame's downward probe found ground.
func (p *Player) Grounded() bool { return p.grounded }

// SetViewBounds clamps subsequent integration to the visible camera span.
func (p *Player) SetViewBounds(left, right float64) {
	p.viewLeft, p.viewRight = left, right
}

// State derives the current locomotion state by priority:
// cinematic > jumping > sliding > flagpole-hold > idle > running.
func (p *Player) State() Locomotion {
	switch {
	case p.Cinematic:
		return LocomotionCinematic
	case p.Body.Vel.Y > 0 || !p.grounded:
		return LocomotionJumping
	case p.sliding():
		return LocomotionSliding
	case p.FlagpoleHold:
		return LocomotionFlagpole
	case core.Sign(p.Body.Vel.X) == 0 && p.lastAxis == 0:
		return LocomotionIdle
	default:
		return LocomotionRunning
	}
}

func (p *Player) sliding() bool {
	v := p.Body.Vel.X
	return (p.lastAxis > 0 && v < 0) || (p.lastAxis < 0 && v > 0)
}

// FrameTick runs the per-frame state decisions: input shaping of horizontal
// velocity, grounding, the jump edge, and gravity with variable jump height.
// dt is the frame delta in seconds.
func (p *Player) FrameTick(space *physics.Space, in core.InputFrame, dt float64) {
	if p.combat.Dead() || p.Cinematic || p.FlagpoleHold {
		p.lastAxis = 0
		return
	}

	axis := in.Axis()
	p.lastAxis = axis

	// Horizontal: approach target speed; brake harder on a sign flip.
	target := axis * p.cfg.NormalSpeed
	if in.IsHeld(core.ActionSprint) {
		target = axis * p.cfg.FastSpeed
	}
	rate := p.cfg.Acceleration
	if axis != 0 && core.Sign(p.Body.Vel.X) != 0 && core.Sign(axis) != core.Sign(p.Body.Vel.X) {
		rate = p.cfg.Deceleration
	}
	p.Body.Vel.X = core.MoveToward(p.Body.Vel.X, target, rate*dt)

	// A wall directly ahead kills horizontal velocity.
	if v := core.Sign(p.Body.Vel.X); v != 0 && space.Probe(p.Body, core.V(v, 0)) {
		p.Body.Vel.X = 0
	}

	// Facing flips with velocity sign; no change at zero.
	if p.Body.Vel.X > 0 {
		p.Facing = 1
	} else if p.Body.Vel.X < 0 {
		p.Facing = -1
	}

	// Grounding and the jump edge.
	p.grounded = space.Probe(p.Body, core.Down)
	if p.grounded {
		if p.Body.Vel.Y < 0 {
			p.Body.Vel.Y = 0
		}
		if in.Has(core.ActionJump) {
			p.Body.Vel.Y = p.JumpForce()
			if p.combat.Form() == FormBig {
				p.bus.Publish(events.JumpBig)
			} else {
				p.bus.Publish(events.JumpSmall)
			}
		}
	}

	// Gravity, doubled while falling or once the jump button is released
	// (variable jump height), with terminal descent clamped at Gravity/2.
	gravity := p.Gravity()
	mult := 1.0
	if p.Body.Vel.Y < 0 || !in.IsHeld(core.ActionJump) {
		mult = 2.0
	}
	p.Body.Vel.Y += gravity * mult * dt
	if p.Body.Vel.Y < gravity/2 {
		p.Body.Vel.Y = gravity / 2
	}
}

// PhysicsTick integrates position on the fixed step and clamps the player
// inside the visible camera span.
func (p *Player) PhysicsTick(space *physics.Space, dt float64) {
	if p.combat.Dead() {
		// Death arc: the body keeps its presentation velocity but ignores
		// collision, so the sprite falls out of the world.
		p.Body.Vel.Y += p.Gravity() * dt
		p.Body.Pos = p.Body.Pos.Add(p.Body.Vel.Scale(dt))
		return
	}

	p.Body.Pos = p.Body.Pos.Add(p.Body.Vel.Scale(dt))

	if !p.Cinematic {
		p.Touched = space.ResolveSolids(p.Body)
		p.Body.Pos.X = core.ClampF(p.Body.Pos.X, p.viewLeft+p.edgeMargin, p.viewRight-p.edgeMargin)
	}
}

// BounceOffEnemy applies the half-height bounce granted for landing on an
// enemy from above.
func (p *Player) BounceOffEnemy() {
	p.Body.Vel.Y = p.JumpForce() / 2
}

// CeilingStop zeros vertical velocity after hitting a solid from below.
func (p *Player) CeilingStop() {
	if p.Body.Vel.Y > 0 {
		p.Body.Vel.Y = 0
	}
}
