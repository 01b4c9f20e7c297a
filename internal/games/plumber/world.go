package plumber

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-plumber/internal/config"
	"github.com/vovakirdan/tui-plumber/internal/core"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/enemies"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/events"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/level"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/objects"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/physics"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/player"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/session"
)

// deathBarrierY is the world height below which falling kills the player.
const deathBarrierY = -1.0

// enemyGateMargin extends the visibility gate this far past both view edges:
// enemies inside it simulate, enemies outside it are frozen in place.
const enemyGateMargin = 1.0

// world is one loaded stage: the collision space, the player, and every
// live entity. A new world replaces the old one on each level (re)load.
type world struct {
	stage *level.Stage
	space *physics.Space
	plr   *player.Player
	cam   *camera

	foes   []enemies.Enemy
	blocks []*objects.Block
	coins  []*objects.Coin
	items  []*objects.Item
	pipes  []*objects.Pipe
	flag   *objects.Flagpole

	pops   []*objects.CoinPop
	debris []*objects.Debris

	cfg    config.PlumberConfig
	bus    *events.Bus
	sess   *session.Session
	logger *log.Logger
}

func newWorld(stage *level.Stage, cfg config.PlumberConfig, bus *events.Bus,
	sess *session.Session, onFreeze func(float64), viewW int, logger *log.Logger) *world {

	w := &world{
		stage:  stage,
		space:  physics.NewSpace(stage.Width, stage.Height),
		cam:    newCamera(viewW, stage.Width),
		cfg:    cfg,
		bus:    bus,
		sess:   sess,
		logger: logger,
	}

	for y := 0; y < stage.Height; y++ {
		for x := 0; x < stage.Width; x++ {
			if stage.Solids[y][x] {
				w.space.SetSolid(x, y, true)
			}
		}
	}

	w.plr = player.New(cfg, bus, core.V(stage.SpawnX, stage.SpawnY))
	w.plr.Combat().OnFreeze = onFreeze
	w.plr.Combat().RequestReset = sess.ScheduleReset
	w.plr.Combat().SetLogger(logger)
	w.space.Add(w.plr.Body)

	// Contacts between the player and enemy layers are suppressed for the
	// whole post-shrink grace window.
	w.space.SetFilter(func(a, b *physics.Body) bool {
		if !w.plr.Combat().CollisionsDisabled() {
			return true
		}
		return !w.playerEnemyPair(a, b)
	})

	for _, bs := range stage.Blocks {
		blk := objects.NewBlock(bs.Kind, bs.X, bs.Y, bus, cfg.Objects)
		blk.SpawnMushroom = func(pos core.Vec2) { w.spawnItem(objects.ItemMushroom, pos) }
		blk.SpawnStar = func(pos core.Vec2) { w.spawnItem(objects.ItemStar, pos) }
		blk.PopCoin = w.popCoin
		blk.SpawnDebris = func(pos core.Vec2) { w.debris = append(w.debris, objects.NewDebris(pos)) }
		w.space.Add(blk.Body())
		w.blocks = append(w.blocks, blk)
	}

	for _, cs := range stage.Coins {
		coin := objects.NewCoin(cs.X, cs.Y)
		w.space.Add(coin.Body())
		w.coins = append(w.coins, coin)
	}

	for _, es := range stage.Enemies {
		spawn := core.V(float64(es.X)+0.5, float64(es.Y)+0.5)
		var foe enemies.Enemy
		switch es.Species {
		case "koopa":
			foe = enemies.NewKoopa(bus, cfg.Enemies, spawn)
		default:
			foe = enemies.NewGoomba(bus, cfg.Enemies, spawn)
		}
		w.space.Add(foe.Body())
		w.foes = append(w.foes, foe)
	}

	for _, pd := range stage.Pipes {
		w.pipes = append(w.pipes, objects.NewPipe(pd, bus, cfg.Objects))
	}

	if stage.Flag != nil {
		groundY := w.groundLevel(stage.Flag.X) + 0.5
		w.flag = objects.NewFlagpole(float64(stage.Flag.X)+0.5, groundY, bus, cfg.Objects)
		w.flag.OnFinish = sess.NextLevel
	}

	return w
}

// groundLevel returns the y of the first open tile above ground at column x
// (the level the player's small-form center rests at, minus the half unit
// added by the caller).
func (w *world) groundLevel(x int) float64 {
	for y := w.stage.Height - 1; y >= 0; y-- {
		if w.stage.SolidAt(x, y) {
			return float64(y + 1)
		}
	}
	return 0
}

func (w *world) playerEnemyPair(a, b *physics.Body) bool {
	hazard := func(l physics.Layer) bool {
		return l == physics.LayerEnemy || l == physics.LayerShell
	}
	return (a.Layer == physics.LayerPlayer && hazard(b.Layer)) ||
		(b.Layer == physics.LayerPlayer && hazard(a.Layer))
}

func (w *world) spawnItem(kind objects.ItemKind, pos core.Vec2) {
	it := objects.NewItem(kind, pos, w.bus, w.cfg.Items)
	w.space.Add(it.Body())
	w.items = append(w.items, it)
}

func (w *world) popCoin(pos core.Vec2) {
	w.sess.AddCoin()
	w.pops = append(w.pops, objects.NewCoinPop(pos))
}

// cinematicActive reports whether a pipe or flagpole sequence owns the
// player right now.
func (w *world) cinematicActive() bool {
	for _, p := range w.pipes {
		if p.Active() {
			return true
		}
	}
	return w.flag != nil && w.flag.Active()
}

// frameTick runs the per-frame pass: input decisions, cinematics, timed
// animations. dt is the frame delta on scaled time.
func (w *world) frameTick(in core.InputFrame, dt float64) {
	for _, p := range w.pipes {
		if p.Active() {
			p.Tick(w.plr, dt)
		}
	}
	if w.flag != nil && w.flag.Active() {
		w.flag.Tick(w.plr, dt)
	}

	if !w.cinematicActive() {
		for _, p := range w.pipes {
			if p.WantsEntry(w.plr, in) {
				p.Begin(w.plr)
				break
			}
		}
	}

	w.plr.FrameTick(w.space, in, dt)

	for _, blk := range w.blocks {
		blk.Tick(dt)
	}
	w.tickEffects(dt)
	w.plr.Combat().ScaledTick(dt)
}

func (w *world) tickEffects(dt float64) {
	live := w.pops[:0]
	for _, cp := range w.pops {
		cp.Tick(dt)
		if !cp.Done() {
			live = append(live, cp)
		}
	}
	w.pops = live

	shards := w.debris[:0]
	for _, d := range w.debris {
		d.Tick(dt)
		if !d.Done() {
			shards = append(shards, d)
		}
	}
	w.debris = shards
}

// physicsTick runs one fixed step: contact resolution first, then
// integration, then the follow camera and world triggers.
func (w *world) physicsTick(dt float64) {
	w.resolveContacts()

	w.plr.PhysicsTick(w.space, dt)
	if w.plr.Touched.Above {
		w.plr.CeilingStop()
		w.headBonk()
	}

	for _, foe := range w.foes {
		foe.Tick(w.space, dt)
	}
	w.reapFoes()

	liveItems := w.items[:0]
	for _, it := range w.items {
		it.Tick(w.space, dt)
		if it.Gone() {
			w.space.Remove(it.Body())
			continue
		}
		liveItems = append(liveItems, it)
	}
	w.items = liveItems

	w.cam.Follow(w.plr.Body.Pos.X)
	w.plr.SetViewBounds(w.cam.Left(), w.cam.Right())
	w.gateEnemies()
	w.checkTriggers()
}

func (w *world) reapFoes() {
	live := w.foes[:0]
	for _, foe := range w.foes {
		if foe.Gone() {
			w.space.Remove(foe.Body())
			continue
		}
		live = append(live, foe)
	}
	w.foes = live
}

func (w *world) gateEnemies() {
	left := w.cam.Left() - enemyGateMargin
	right := w.cam.Right() + enemyGateMargin
	for _, foe := range w.foes {
		x := foe.Body().Pos.X
		if x >= left && x <= right {
			foe.Activate()
		} else {
			foe.Deactivate()
		}
	}
}

func (w *world) checkTriggers() {
	if w.plr.Combat().Dead() {
		return
	}
	if w.plr.Body.Pos.Y < deathBarrierY {
		w.plr.Combat().Kill()
		return
	}
	if w.flag != nil && !w.flag.Active() && !w.flag.Finished() &&
		!w.cinematicActive() && w.plr.Body.Pos.X >= w.flag.X {
		w.flag.Trigger(w.plr)
	}
}

// resolveContacts walks the overlap pairs and dispatches on entity type.
// Runs before integration so reactions apply to the next step.
func (w *world) resolveContacts() {
	for _, c := range w.space.Contacts() {
		w.resolvePair(c.A, c.B)
		w.resolvePair(c.B, c.A)
	}
}

func (w *world) resolvePair(a, b *physics.Body) {
	if a.Layer != physics.LayerPlayer {
		// Shell-layer bodies defeat enemies they run into.
		if a.Layer == physics.LayerShell && b.Layer == physics.LayerEnemy {
			if foe, ok := b.Owner.(enemies.Enemy); ok {
				foe.OnShellContact()
			}
		}
		return
	}

	switch owner := b.Owner.(type) {
	case enemies.Enemy:
		owner.OnPlayerContact(w.plr)
	case *objects.Item:
		owner.Collect(w.plr)
	case *objects.Coin:
		if owner.Take() {
			w.sess.AddCoin()
		}
	}
}

// headBonk finds the block the player just hit from below, if any.
func (w *world) headBonk() {
	head := core.V(w.plr.Body.Center().X, w.plr.Body.Max().Y+0.2)
	for _, blk := range w.blocks {
		if blk.Broken() {
			continue
		}
		min, max := blk.Body().Min(), blk.Body().Max()
		if head.X >= min.X && head.X <= max.X && head.Y >= min.Y && head.Y <= max.Y {
			blk.HitFromBelow(w.plr)
			return
		}
	}
}
