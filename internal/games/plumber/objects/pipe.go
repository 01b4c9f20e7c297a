package objects

import (
	"github.com/vovakirdan/tui-plumber/internal/config"
	"github.com/vovakirdan/tui-plumber/internal/core"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/events"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/level"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/player"
)

type pipePhase int

const (
	pipeIdle pipePhase = iota
	pipeSinking
	pipeEmerging
)

// Pipe runs the duck-to-enter travel sequence. The player sinks into the
// entry over the travel duration, then either teleports straight to the
// destination (zero exit offset) or emerges through it (nonzero offset,
// animated from dest-offset to dest+offset).
type Pipe struct {
	def level.PipeDef
	bus *events.Bus
	cfg config.ObjectsConfig

	phase   pipePhase
	elapsed float64
	from    core.Vec2
	to      core.Vec2
}

// NewPipe wraps one pipe link definition.
func NewPipe(def level.PipeDef, bus *events.Bus, cfg config.ObjectsConfig) *Pipe {
	return &Pipe{def: def, bus: bus, cfg: cfg}
}

// Active reports whether a travel sequence is running.
func (pp *Pipe) Active() bool { return pp.phase != pipeIdle }

// WantsEntry reports whether the player is standing on this pipe's mouth
// and ducking.
func (pp *Pipe) WantsEntry(p *player.Player, in core.InputFrame) bool {
	if pp.phase != pipeIdle || !in.IsHeld(core.ActionDuck) || !p.Grounded() {
		return false
	}
	pos := p.Body.Pos
	return core.AbsF(pos.X-pp.def.Entry.X) <= 0.6 && core.AbsF(pos.Y-pp.def.Entry.Y) <= 0.8
}

// Begin starts the sink. The player goes cinematic and velocity is driven
// by the sequence from here on.
func (pp *Pipe) Begin(p *player.Player) {
	if pp.phase != pipeIdle {
		return
	}
	pp.phase = pipeSinking
	pp.elapsed = 0
	p.Cinematic = true
	p.Body.Vel = core.Vec2{}
	pp.from = p.Body.Pos
	pp.to = pp.from.Add(core.Down)
	pp.bus.Publish(events.PowerDown)
}

// Tick advances the sequence. The player position is interpolated directly;
// normal physics is suspended while cinematic.
func (pp *Pipe) Tick(p *player.Player, dt float64) {
	switch pp.phase {
	case pipeSinking:
		pp.elapsed += dt
		t := pp.elapsed / pp.cfg.PipeTravel
		if t >= 1 {
			pp.arrive(p)
			return
		}
		p.Body.Pos = pp.from.Add(pp.to.Sub(pp.from).Scale(t))

	case pipeEmerging:
		pp.elapsed += dt
		t := pp.elapsed / pp.cfg.PipeEmerge
		if t >= 1 {
			p.Body.Pos = pp.to
			pp.finish(p)
			return
		}
		p.Body.Pos = pp.from.Add(pp.to.Sub(pp.from).Scale(t))
	}
}

func (pp *Pipe) arrive(p *player.Player) {
	dest := core.V(pp.def.Dest.X, pp.def.Dest.Y)
	offset := core.V(pp.def.ExitOffset.X, pp.def.ExitOffset.Y)

	if offset == (core.Vec2{}) {
		// Instant teleport. Only the destination-side music notification
		// fires; there is no emerge phase.
		p.Body.Pos = dest
		pp.publishMusic()
		pp.finish(p)
		return
	}

	pp.publishMusic()
	pp.phase = pipeEmerging
	pp.elapsed = 0
	pp.from = dest.Sub(offset)
	pp.to = dest.Add(offset)
	p.Body.Pos = pp.from
}

func (pp *Pipe) publishMusic() {
	if pp.def.Underground {
		pp.bus.Publish(events.MusicUnderground)
	} else {
		pp.bus.Publish(events.MusicAboveGround)
	}
}

func (pp *Pipe) finish(p *player.Player) {
	pp.phase = pipeIdle
	p.Cinematic = false
	p.Body.Vel = core.Vec2{}
}
