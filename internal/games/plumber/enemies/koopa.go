package enemies

import (
	"github.com/vovakirdan/tui-plumber/internal/config"
	"github.com/vovakirdan/tui-plumber/internal/core"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/entity"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/events"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/physics"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/player"
)

// Koopa walks, withdraws into a shell when stomped, and becomes a mobile
// hazard once the shell is kicked. An idle shell is harmless; a pushed
// shell moves on the shell layer and defeats enemies it touches.
type Koopa struct {
	base
	mover *entity.Mover

	shelled bool
	pushed  bool
}

// NewKoopa creates a koopa at the given spawn point. It stays dormant until
// Activate.
func NewKoopa(bus *events.Bus, cfg config.EnemiesConfig, spawn core.Vec2) *Koopa {
	k := &Koopa{base: newBase(bus, cfg, 0.9, 0.9)}
	k.body.Pos = spawn
	k.body.Owner = k
	k.mover = entity.NewMover(k.body, cfg.KoopaSpeed, deathGravity)
	return k
}

// Activate starts the patrol.
func (k *Koopa) Activate() {
	if !k.shelled && !k.defeated {
		k.mover.SetEnabled(true)
	}
}

// Deactivate freezes the patrol while the koopa is outside the view. A
// traveling shell is exempt: once kicked it keeps going wherever it is.
func (k *Koopa) Deactivate() {
	if k.pushed || k.defeated {
		return
	}
	k.mover.SetEnabled(false)
}

// Shelled reports whether the koopa has withdrawn into its shell.
func (k *Koopa) Shelled() bool { return k.shelled }

// Pushed reports whether the shell is currently moving.
func (k *Koopa) Pushed() bool { return k.pushed }

// Tick advances patrol, shell travel, or the despawn countdown.
func (k *Koopa) Tick(space *physics.Space, dt float64) {
	if k.tickDespawn(dt) {
		return
	}
	if k.pushed {
		// A traveling shell rebounds off walls instead of falling off them.
		if v := core.Sign(k.body.Vel.X); v != 0 && space.Probe(k.body, core.V(v, 0)) {
			k.body.Vel.X = -k.body.Vel.X
		}
		k.body.Vel.Y += deathGravity * dt
		if space.Probe(k.body, core.Down) && k.body.Vel.Y < 0 {
			k.body.Vel.Y = 0
		}
		k.body.Pos = k.body.Pos.Add(k.body.Vel.Scale(dt))
		space.ResolveSolids(k.body)
		return
	}
	k.mover.Tick(space, dt)
}

// EnterShell is the stomp outcome for a walking koopa: locomotion stops and
// the shell sits inert until kicked.
func (k *Koopa) EnterShell() {
	if k.shelled || k.defeated {
		return
	}
	k.shelled = true
	k.mover.SetEnabled(false)
	k.bus.Publish(events.ShellEnter)
}

// PushShell kicks an idle shell in the given horizontal direction. The
// shell moves to the shell layer so contacts read as hazards.
func (k *Koopa) PushShell(dir float64) {
	if !k.shelled || k.pushed || k.defeated {
		return
	}
	k.pushed = true
	k.body.Layer = physics.LayerShell
	k.body.Vel = core.V(core.Sign(dir)*k.cfg.ShellSpeed, 0)
	k.bus.Publish(events.ShellKick)
}

// OnPlayerContact resolves a player overlap across all three koopa states.
func (k *Koopa) OnPlayerContact(p *player.Player) {
	if k.defeated {
		return
	}
	if p.Combat().Star() {
		k.defeat(core.Sign(k.body.Pos.X - p.Body.Pos.X))
		return
	}
	away := core.Sign(k.body.Pos.X - p.Body.Pos.X)
	switch {
	case !k.shelled:
		if stompedFrom(p, k.body) {
			k.EnterShell()
			p.BounceOffEnemy()
		} else {
			p.Combat().Hit()
		}
	case k.pushed:
		// A traveling shell is a hazard from every side, above included.
		p.Combat().Hit()
	default:
		// Idle shell: any touch kicks it away from the player.
		if away == 0 {
			away = 1
		}
		k.PushShell(away)
		if stompedFrom(p, k.body) {
			p.BounceOffEnemy()
		}
	}
}

// OnShellContact resolves being run over by another pushed shell.
func (k *Koopa) OnShellContact() {
	if k.defeated {
		return
	}
	k.bus.Publish(events.ShellHit)
	k.defeat(core.Sign(k.body.Vel.X) * -1)
}

var _ Enemy = (*Koopa)(nil)
