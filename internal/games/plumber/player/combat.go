package player

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-plumber/internal/config"
	"github.com/vovakirdan/tui-plumber/internal/core"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/events"
)

// Form is the player's power state.
type Form int

const (
	FormSmall Form = iota
	FormBig
)

// String returns the form name.
func (f Form) String() string {
	if f == FormBig {
		return "big"
	}
	return "small"
}

// Collider footprints per form. Pos is the small-form center, so feet sit
// at Pos.Y-0.5 in both forms.
var (
	smallSize   = core.V(0.9, 1.0)
	smallOffset = core.V(0, 0)
	bigSize     = core.V(0.9, 2.0)
	bigOffset   = core.V(0, 0.5)
)

// Combat is the player's form/damage state machine. Grow and shrink run a
// timed flicker transition during which the rest of the simulation is
// frozen; the transition itself advances on unscaled ticks so it always
// completes.
type Combat struct {
	player *Player
	cfg    config.CombatConfig
	bus    *events.Bus
	logger *log.Logger

	// OnFreeze pauses the scaled simulation for the given duration. Left
	// nil by a host that has no freeze facility; transitions then run
	// without hitstop.
	OnFreeze func(seconds float64)

	// RequestReset schedules the level reset that follows a death.
	RequestReset func(delay float64)

	form Form
	star bool
	dead bool

	transition     float64 // seconds remaining in grow/shrink flicker
	transitionTo   Form    // form applied when the transition ends
	invulnerable   float64 // seconds remaining of post-shrink invulnerability
	starRemaining  float64
	frames         int // unscaled frame counter, drives flicker cadence
	pendingDisplay Form
}

func newCombat(p *Player, cfg config.CombatConfig, bus *events.Bus) *Combat {
	return &Combat{
		player: p,
		cfg:    cfg,
		bus:    bus,
		logger: log.Default(),
	}
}

// SetLogger overrides the default logger.
func (c *Combat) SetLogger(l *log.Logger) {
	if l != nil {
		c.logger = l
	}
}

// Form returns the committed power state.
func (c *Combat) Form() Form { return c.form }

// Star reports whether star power is active.
func (c *Combat) Star() bool { return c.star }

// Dead reports whether the player has died this level attempt.
func (c *Combat) Dead() bool { return c.dead }

// Transitioning reports whether a grow/shrink flicker is in progress.
func (c *Combat) Transitioning() bool { return c.transition > 0 }

// CollisionsDisabled reports the post-shrink grace window during which all
// player-enemy contacts are suppressed.
func (c *Combat) CollisionsDisabled() bool { return c.invulnerable > 0 }

// DisplayForm is the form the renderer should draw. During a transition it
// alternates between the old and new form every flicker period; the real
// form swaps atomically when the transition ends.
func (c *Combat) DisplayForm() Form {
	if c.transition <= 0 {
		return c.form
	}
	if (c.frames/c.cfg.FlickerCadence)%2 == 0 {
		return c.form
	}
	return c.transitionTo
}

// Visible blinks the sprite during post-shrink invulnerability.
func (c *Combat) Visible() bool {
	if c.invulnerable <= 0 {
		return true
	}
	return (c.frames/c.cfg.FlickerCadence)%2 == 0
}

// ColorOverride returns the star-power hue for the current frame, or
// ColorDefault when no override applies.
func (c *Combat) ColorOverride() core.Color {
	if !c.star {
		return core.ColorDefault
	}
	idx := (c.frames / c.cfg.FlickerCadence) % len(core.HuePalette)
	return core.HuePalette[idx]
}

// Hit applies enemy damage: big players shrink, small players die. A dead
// or star-powered player ignores it.
func (c *Combat) Hit() {
	if c.dead || c.star || c.transition > 0 || c.invulnerable > 0 {
		return
	}
	if c.form == FormBig {
		c.Shrink()
	} else {
		c.Kill()
	}
}

// Grow raises the player to the big form through a flicker transition.
func (c *Combat) Grow() {
	if c.dead || c.form == FormBig {
		return
	}
	c.beginTransition(FormBig)
}

// Shrink drops the player to the small form and grants the post-shrink
// grace window once the transition completes.
func (c *Combat) Shrink() {
	if c.dead || c.form == FormSmall {
		return
	}
	c.bus.Publish(events.PowerDown)
	c.beginTransition(FormSmall)
}

func (c *Combat) beginTransition(to Form) {
	c.transition = c.cfg.GrowDuration
	c.transitionTo = to
	c.frames = 0
	if c.OnFreeze != nil {
		c.OnFreeze(c.cfg.GrowDuration)
	} else {
		c.logger.Warn("no freeze hook wired, form transition runs unfrozen")
	}
}

// StarPower grants invincibility for the configured duration. Collecting a
// second star restarts the timer rather than stacking.
func (c *Combat) StarPower() {
	if c.dead {
		return
	}
	restarted := c.star
	c.star = true
	c.starRemaining = c.cfg.StarDuration
	c.frames = 0
	if !restarted {
		c.bus.Publish(events.StarStart)
	}
}

// Kill starts the death sequence: collision off, upward death arc, level
// reset after the configured delay.
func (c *Combat) Kill() {
	if c.dead {
		return
	}
	c.dead = true
	c.star = false
	c.transition = 0
	c.invulnerable = 0
	c.player.Body.Enabled = false
	c.player.Body.Vel = core.V(0, c.player.JumpForce())
	c.bus.Publish(events.PlayerDeath)
	if c.RequestReset != nil {
		c.RequestReset(c.cfg.DeathResetDelay)
	} else {
		c.logger.Warn("no reset hook wired, death leaves the level stalled")
	}
}

// UnscaledTick advances the timers that must run while the simulation is
// frozen: the transition flicker and the invulnerability window.
func (c *Combat) UnscaledTick(dt float64) {
	c.frames++
	if c.transition > 0 {
		c.transition -= dt
		if c.transition <= 0 {
			c.finishTransition()
		}
	}
	if c.invulnerable > 0 {
		c.invulnerable -= dt
	}
}

func (c *Combat) finishTransition() {
	shrunk := c.transitionTo == FormSmall && c.form == FormBig
	c.form = c.transitionTo
	c.applyFootprint()
	if shrunk {
		c.invulnerable = c.cfg.PostShrinkInvul
		c.frames = 0
	}
}

func (c *Combat) applyFootprint() {
	b := c.player.Body
	if c.form == FormBig {
		b.SetFootprint(bigSize, bigOffset)
	} else {
		b.SetFootprint(smallSize, smallOffset)
	}
}

// ScaledTick advances the star timer; it stalls during freezes and pauses.
func (c *Combat) ScaledTick(dt float64) {
	if !c.star {
		return
	}
	c.starRemaining -= dt
	if c.starRemaining <= 0 {
		c.star = false
		c.bus.Publish(events.StarStop)
	}
}

// Footprint returns the collider size and offset for the given form.
func Footprint(f Form) (size, offset core.Vec2) {
	if f == FormBig {
		return bigSize, bigOffset
	}
	return smallSize, smallOffset
}
