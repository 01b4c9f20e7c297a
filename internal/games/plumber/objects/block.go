// Package objects implements the interactive level elements: hit blocks,
// pipes, the flagpole, power-up items, coins, and brick debris.
package objects

import (
	"github.com/vovakirdan/tui-plumber/internal/config"
	"github.com/vovakirdan/tui-plumber/internal/core"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/events"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/level"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/physics"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/player"
)

// bumpRise is how far the block sprite lifts at the bump animation peak.
const bumpRise = 0.25

// Block is a hittable tile. Bricks (remaining = -1) break under a big
// player; content blocks dispense until their hit count runs out, then sit
// empty with a slightly narrowed collider.
type Block struct {
	body *physics.Body
	kind level.BlockKind
	bus  *events.Bus
	cfg  config.ObjectsConfig

	remaining int // hits left; -1 means breakable brick
	broken    bool
	bump      float64 // seconds left in the bump animation

	// Content hooks, wired by the world. A nil hook makes that content a
	// no-op bump.
	SpawnMushroom func(pos core.Vec2)
	SpawnStar     func(pos core.Vec2)
	PopCoin       func(pos core.Vec2)
	SpawnDebris   func(pos core.Vec2)
}

// NewBlock creates a block at the given tile.
func NewBlock(kind level.BlockKind, tileX, tileY int, bus *events.Bus, cfg config.ObjectsConfig) *Block {
	b := &Block{
		body: physics.NewBody(physics.Static, physics.LayerDefault, 1, 1),
		kind: kind,
		bus:  bus,
		cfg:  cfg,
	}
	b.body.Pos = core.V(float64(tileX)+0.5, float64(tileY)+0.5)
	b.body.Solid = true
	b.body.Owner = b
	if kind == level.BlockBrick {
		b.remaining = -1
	} else {
		b.remaining = 1
	}
	return b
}

// Body returns the block's collider.
func (b *Block) Body() *physics.Body { return b.body }

// Kind returns what the block dispenses.
func (b *Block) Kind() level.BlockKind { return b.kind }

// Empty reports whether the block has dispensed everything it held.
func (b *Block) Empty() bool { return b.remaining == 0 }

// Broken reports whether a brick has been destroyed.
func (b *Block) Broken() bool { return b.broken }

// BumpOffset returns the vertical sprite lift for the current animation
// frame: up to the peak and back over the bounce duration.
func (b *Block) BumpOffset() float64 {
	if b.bump <= 0 {
		return 0
	}
	half := b.cfg.BlockBounce / 2
	t := b.cfg.BlockBounce - b.bump
	if t < half {
		return bumpRise * t / half
	}
	return bumpRise * (b.cfg.BlockBounce - t) / half
}

// Tick advances the bump animation.
func (b *Block) Tick(dt float64) {
	if b.bump > 0 {
		b.bump -= dt
	}
}

// HitFromBelow resolves the player striking the block with their head.
// Hits during an in-flight bump are swallowed, as are hits on empty blocks.
func (b *Block) HitFromBelow(p *player.Player) {
	if b.broken || b.bump > 0 || b.remaining == 0 {
		return
	}

	if b.kind == level.BlockBrick {
		if p.Combat().Form() == player.FormBig {
			b.breakUp()
		} else {
			b.bump = b.cfg.BlockBounce
			b.bus.Publish(events.BlockBump)
		}
		return
	}

	b.bump = b.cfg.BlockBounce
	b.bus.Publish(events.BlockBump)
	b.dispense()
	b.remaining--
	if b.remaining == 0 {
		// Empty blocks keep blocking but read as spent; the collider
		// narrows so side probes slide past the seam.
		b.body.Size = core.V(0.9, 1)
	}
}

func (b *Block) breakUp() {
	b.broken = true
	b.body.Enabled = false
	b.body.Solid = false
	b.bus.Publish(events.BlockBreak)
	if b.SpawnDebris != nil {
		b.SpawnDebris(b.body.Pos)
	}
}

func (b *Block) dispense() {
	above := b.body.Pos.Add(core.Up)
	switch b.kind {
	case level.BlockCoin:
		if b.PopCoin != nil {
			b.PopCoin(above)
		}
	case level.BlockMushroom:
		if b.SpawnMushroom != nil {
			b.SpawnMushroom(b.body.Pos)
		}
	case level.BlockStar:
		if b.SpawnStar != nil {
			b.SpawnStar(b.body.Pos)
		}
	}
}
