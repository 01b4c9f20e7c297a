package objects

import (
	"github.com/vovakirdan/tui-plumber/internal/config"
	"github.com/vovakirdan/tui-plumber/internal/core"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/events"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/player"
)

type flagPhase int

const (
	flagIdle flagPhase = iota
	flagSliding
	flagWalking
	flagDone
)

// castleOffset is how far past the pole the player walks before the level
// finishes.
const castleOffset = 5.0

// Flagpole runs the end-of-level cinematic: grab the pole, slide to the
// base, walk off toward the castle, finish the level.
type Flagpole struct {
	X       float64 // pole column center
	GroundY float64 // where the slide stops (player feet level)

	bus *events.Bus
	cfg config.ObjectsConfig

	// OnFinish advances the session to the next level. Warned about by the
	// world if left unwired; the cinematic then simply ends.
	OnFinish func()

	phase flagPhase
}

// NewFlagpole places the pole at the given column above the ground line.
func NewFlagpole(x, groundY float64, bus *events.Bus, cfg config.ObjectsConfig) *Flagpole {
	return &Flagpole{X: x, GroundY: groundY, bus: bus, cfg: cfg}
}

// Active reports whether the cinematic is running.
func (f *Flagpole) Active() bool { return f.phase == flagSliding || f.phase == flagWalking }

// Finished reports whether the cinematic has completed.
func (f *Flagpole) Finished() bool { return f.phase == flagDone }

// Trigger starts the cinematic the first time the player reaches the pole.
func (f *Flagpole) Trigger(p *player.Player) {
	if f.phase != flagIdle {
		return
	}
	f.phase = flagSliding
	p.FlagpoleHold = true
	p.Body.Vel = core.Vec2{}
	p.Body.Pos.X = f.X
	f.bus.Publish(events.FlagpoleStart)
}

// Tick drives the slide and the castle walk. The player's velocity is
// externally driven for the whole sequence.
func (f *Flagpole) Tick(p *player.Player, dt float64) {
	switch f.phase {
	case flagSliding:
		p.Body.Pos.Y -= f.cfg.FlagDescent * dt
		if p.Body.Pos.Y <= f.GroundY {
			p.Body.Pos.Y = f.GroundY
			p.FlagpoleHold = false
			p.Cinematic = true
			f.phase = flagWalking
		}

	case flagWalking:
		p.Body.Pos.X += f.cfg.CastleWalk * dt
		if p.Body.Pos.X >= f.X+castleOffset {
			f.phase = flagDone
			p.Cinematic = false
			f.bus.Publish(events.LevelFinish)
			if f.OnFinish != nil {
				f.OnFinish()
			}
		}
	}
}
