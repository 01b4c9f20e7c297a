// Package enemies implements the stage hazards: goombas and koopas, plus
// the shared defeat mechanics (death arc, despawn timers, shell hazards).
package enemies

import (
	"github.com/vovakirdan/tui-plumber/internal/config"
	"github.com/vovakirdan/tui-plumber/internal/core"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/events"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/physics"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/player"
)

// deathGravity pulls a defeated enemy through its presentation-only arc.
const deathGravity = -40.0

// Enemy is the contract the world uses to drive and resolve hazards.
type Enemy interface {
	// Body returns the enemy's collider.
	Body() *physics.Body
	// Tick advances the enemy on scaled time once it has been activated.
	Tick(space *physics.Space, dt float64)
	// Activate starts locomotion while the enemy is inside the view.
	Activate()
	// Deactivate freezes locomotion while the enemy is outside the view.
	Deactivate()
	// Gone reports that the enemy has finished despawning and can be removed.
	Gone() bool
	// OnPlayerContact resolves a player overlap.
	OnPlayerContact(p *player.Player)
	// OnShellContact resolves being run over by a pushed shell.
	OnShellContact()
}

// base carries the defeat mechanics shared by every enemy kind.
type base struct {
	body *physics.Body
	bus  *events.Bus
	cfg  config.EnemiesConfig

	defeated bool
	despawn  float64 // seconds until removal, counting once set
	timed    bool
	gone     bool
}

func newBase(bus *events.Bus, cfg config.EnemiesConfig, w, h float64) base {
	return base{
		body: physics.NewBody(physics.Dynamic, physics.LayerEnemy, w, h),
		bus:  bus,
		cfg:  cfg,
	}
}

func (b *base) Body() *physics.Body { return b.body }

func (b *base) Gone() bool { return b.gone }

// defeat runs the shared death sequence: the collider switches off, the
// sprite takes a small upward arc, and the enemy despawns after a delay.
func (b *base) defeat(away float64) {
	if b.defeated {
		return
	}
	b.defeated = true
	b.body.Enabled = false
	b.body.Vel = core.V(away*2, 8)
	b.bus.Publish(events.EnemyHit)
	b.startDespawn(b.cfg.HitDespawn)
}

func (b *base) startDespawn(delay float64) {
	if b.timed {
		return
	}
	b.timed = true
	b.despawn = delay
}

// tickDespawn integrates the death arc and counts down to removal. Returns
// true when the enemy no longer runs its own locomotion.
func (b *base) tickDespawn(dt float64) bool {
	if !b.timed {
		return false
	}
	if b.defeated {
		b.body.Vel.Y += deathGravity * dt
		b.body.Pos = b.body.Pos.Add(b.body.Vel.Scale(dt))
	}
	b.despawn -= dt
	if b.despawn <= 0 {
		b.gone = true
	}
	return true
}

// stompedFrom reports whether the player came at the enemy from above,
// using the contact cone test.
func stompedFrom(p *player.Player, body *physics.Body) bool {
	return core.InCone(body.Center(), p.Body.Center(), core.Up)
}
