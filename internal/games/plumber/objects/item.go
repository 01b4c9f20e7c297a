package objects

import (
	"github.com/vovakirdan/tui-plumber/internal/config"
	"github.com/vovakirdan/tui-plumber/internal/core"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/entity"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/events"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/physics"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/player"
)

// ItemKind selects what a power-up does on pickup.
type ItemKind int

const (
	ItemMushroom ItemKind = iota
	ItemStar
)

// Item is a power-up rising out of a hit block. It is intangible while
// emerging; once out it patrols like an enemy and upgrades the player on
// touch.
type Item struct {
	body  *physics.Body
	kind  ItemKind
	mover *entity.Mover
	bus   *events.Bus

	emerging   float64 // seconds left in the rise
	emergeTime float64 // total rise duration
	emergeFrom core.Vec2
	emergeTo   core.Vec2
	collected  bool
}

// NewItem spawns a power-up inside the given block position and starts the
// emerge sequence.
func NewItem(kind ItemKind, blockPos core.Vec2, bus *events.Bus, cfg config.ItemsConfig) *Item {
	it := &Item{
		body:       physics.NewBody(physics.Dynamic, physics.LayerItem, 0.9, 0.9),
		kind:       kind,
		bus:        bus,
		emerging:   cfg.EmergeDuration,
		emergeTime: cfg.EmergeDuration,
		emergeFrom: blockPos,
		emergeTo:   blockPos.Add(core.Up),
	}
	it.body.Pos = blockPos
	it.body.Enabled = false
	it.body.Owner = it
	it.mover = entity.NewMover(it.body, cfg.MushroomSpeed, -40)
	it.mover.Direction = core.Right
	bus.Publish(events.PowerUpAppear)
	if cfg.EmergeDuration <= 0 {
		it.finishEmerge()
	}
	return it
}

func (it *Item) finishEmerge() {
	it.emerging = 0
	it.body.Pos = it.emergeTo
	it.body.Enabled = true
	it.mover.SetEnabled(true)
}

// Body returns the item's collider.
func (it *Item) Body() *physics.Body { return it.body }

// Kind returns the pickup effect.
func (it *Item) Kind() ItemKind { return it.kind }

// Emerging reports whether the item is still rising out of its block.
func (it *Item) Emerging() bool { return it.emerging > 0 }

// Gone reports whether the item has been collected.
func (it *Item) Gone() bool { return it.collected }

// Tick advances the emerge animation or the patrol.
func (it *Item) Tick(space *physics.Space, dt float64) {
	if it.collected {
		return
	}
	if it.emerging > 0 {
		it.emerging -= dt
		if it.emerging <= 0 {
			it.finishEmerge()
			return
		}
		done := 1 - it.emerging/it.emergeTime
		it.body.Pos = it.emergeFrom.Add(it.emergeTo.Sub(it.emergeFrom).Scale(done))
		return
	}
	it.mover.Tick(space, dt)
}

// Collect applies the pickup to the player and removes the item. Emerging
// items cannot be collected.
func (it *Item) Collect(p *player.Player) {
	if it.collected || it.emerging > 0 {
		return
	}
	it.collected = true
	it.body.Enabled = false
	it.bus.Publish(events.PowerUpCollect)
	switch it.kind {
	case ItemMushroom:
		p.Combat().Grow()
	case ItemStar:
		p.Combat().StarPower()
	}
}
