package enemies

import (
	"github.com/vovakirdan/tui-plumber/internal/config"
	"github.com/vovakirdan/tui-plumber/internal/core"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/entity"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/events"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/physics"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/player"
)

// Goomba walks until something defeats it. A stomp flattens it in place;
// anything else (star contact, shell) throws it into the death arc.
type Goomba struct {
	base
	mover *entity.Mover

	flattened bool
}

// NewGoomba creates a goomba at the given spawn point. It stays dormant
// until Activate.
func NewGoomba(bus *events.Bus, cfg config.EnemiesConfig, spawn core.Vec2) *Goomba {
	g := &Goomba{base: newBase(bus, cfg, 0.9, 0.9)}
	g.body.Pos = spawn
	g.body.Owner = g
	g.mover = entity.NewMover(g.body, cfg.GoombaSpeed, deathGravity)
	return g
}

// Activate starts the patrol.
func (g *Goomba) Activate() {
	if !g.flattened && !g.defeated {
		g.mover.SetEnabled(true)
	}
}

// Deactivate freezes the patrol while the goomba is outside the view. The
// death arc is not locomotion and keeps playing out.
func (g *Goomba) Deactivate() {
	if g.flattened || g.defeated {
		return
	}
	g.mover.SetEnabled(false)
}

// Flattened reports whether the goomba has been stomped.
func (g *Goomba) Flattened() bool { return g.flattened }

// Tick advances patrol or the despawn countdown.
func (g *Goomba) Tick(space *physics.Space, dt float64) {
	if g.tickDespawn(dt) {
		return
	}
	g.mover.Tick(space, dt)
}

// Flatten is the stomp outcome: locomotion and collision stop, the squashed
// sprite lingers briefly, then the goomba despawns. Calling it again has no
// effect.
func (g *Goomba) Flatten() {
	if g.flattened || g.defeated {
		return
	}
	g.flattened = true
	g.mover.SetEnabled(false)
	g.body.Enabled = false
	g.bus.Publish(events.Flattened)
	g.startDespawn(g.cfg.FlattenDespawn)
}

// OnPlayerContact resolves a player overlap: star power defeats the goomba
// outright, a stomp flattens it and bounces the player, anything else is
// damage to the player.
func (g *Goomba) OnPlayerContact(p *player.Player) {
	if g.flattened || g.defeated {
		return
	}
	if p.Combat().Star() {
		g.defeat(core.Sign(g.body.Pos.X - p.Body.Pos.X))
		return
	}
	if stompedFrom(p, g.body) {
		g.Flatten()
		p.BounceOffEnemy()
		return
	}
	p.Combat().Hit()
}

// OnShellContact resolves being run over by a pushed shell.
func (g *Goomba) OnShellContact() {
	if g.flattened || g.defeated {
		return
	}
	g.bus.Publish(events.ShellHit)
	g.defeat(core.Sign(g.mover.Direction.X) * -1)
}

var _ Enemy = (*Goomba)(nil)
