package objects

import (
	"testing"

	"github.com/vovakirdan/tui-plumber/internal/config"
	"github.com/vovakirdan/tui-plumber/internal/core"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/events"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/level"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/physics"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/player"
)

const testDT = 1.0 / 50.0

func objectsConfig() config.ObjectsConfig {
	return config.ObjectsConfig{
		BlockBounce:  0.25,
		PipeTravel:   1.0,
		PipeEmerge:   1.0,
		FlagDescent:  6,
		CastleWalk:   4,
		MusicRestore: 9,
	}
}

func itemsConfig() config.ItemsConfig {
	return config.ItemsConfig{
		EmergeDuration: 1.0,
		MushroomSpeed:  2,
	}
}

func newTestPlayer(bus *events.Bus, pos core.Vec2) *player.Player {
	cfg := config.PlumberConfig{
		Movement: config.MovementConfig{
			NormalSpeed: 6, FastSpeed: 10,
			Acceleration: 40, Deceleration: 80,
			MaxJumpHeight: 4.5, MaxJumpTime: 1.2,
		},
		Combat: config.CombatConfig{
			GrowDuration: 0.5, PostShrinkInvul: 1.0,
			StarDuration: 10, FlickerCadence: 5, DeathResetDelay: 2.5,
		},
	}
	return player.New(cfg, bus, pos)
}

func TestBrickBumpsUnderSmallPlayer(t *testing.T) {
	bus := events.NewBus()
	b := NewBlock(level.BlockBrick, 5, 3, bus, objectsConfig())

	var kinds []events.Kind
	bus.SubscribeAll(func(k events.Kind) { kinds = append(kinds, k) })

	p := newTestPlayer(bus, core.V(5.5, 2.5))
	b.HitFromBelow(p)

	if b.Broken() {
		t.Error("Small player must not break a brick")
	}
	if len(kinds) != 1 || kinds[0] != events.BlockBump {
		t.Errorf("Expected BlockBump, got %v", kinds)
	}
	b.Tick(testDT)
	if b.BumpOffset() <= 0 {
		t.Error("Bump animation should lift the sprite")
	}
}

func TestBrickBreaksUnderBigPlayer(t *testing.T) {
	bus := events.NewBus()
	b := NewBlock(level.BlockBrick, 5, 3, bus, objectsConfig())

	debris := 0
	b.SpawnDebris = func(core.Vec2) { debris++ }

	breaks := 0
	bus.Subscribe(events.BlockBreak, func(events.Kind) { breaks++ })

	p := newTestPlayer(bus, core.V(5.5, 2.5))
	p.Combat().OnFreeze = func(float64) {}
	p.Combat().Grow()
	for i := 0; i < 50; i++ {
		p.Combat().UnscaledTick(testDT)
	}
	if p.Combat().Form() != player.FormBig {
		t.Fatal("Player should be big")
	}

	b.HitFromBelow(p)

	if !b.Broken() {
		t.Fatal("Big player should break the brick")
	}
	if b.Body().Enabled || b.Body().Solid {
		t.Error("Broken brick should stop colliding")
	}
	if breaks != 1 || debris != 1 {
		t.Errorf("Expected one break and one debris spawn, got %d/%d", breaks, debris)
	}

	// Further hits are swallowed
	b.HitFromBelow(p)
	if breaks != 1 {
		t.Errorf("Broken brick must swallow hits, got %d breaks", breaks)
	}
}

func TestCoinBlockDispensesThenEmpties(t *testing.T) {
	bus := events.NewBus()
	b := NewBlock(level.BlockCoin, 5, 3, bus, objectsConfig())

	pops := 0
	b.PopCoin = func(pos core.Vec2) {
		pops++
		if pos != core.V(5.5, 4.5) {
			t.Errorf("Coin should pop above the block, got %v", pos)
		}
	}

	p := newTestPlayer(bus, core.V(5.5, 2.5))
	b.HitFromBelow(p)

	if pops != 1 {
		t.Fatalf("Expected one coin pop, got %d", pops)
	}
	if !b.Empty() {
		t.Error("Single-coin block should be empty after one hit")
	}
	if b.Body().Size != core.V(0.9, 1) {
		t.Errorf("Empty block collider should narrow, size %v", b.Body().Size)
	}
	if !b.Body().Solid {
		t.Error("Empty block must stay solid")
	}

	// Let the bump finish; the empty block still swallows hits
	for i := 0; i < 20; i++ {
		b.Tick(testDT)
	}
	b.HitFromBelow(p)
	if pops != 1 {
		t.Errorf("Empty block must not dispense, got %d pops", pops)
	}
}

func TestBlockSwallowsHitsDuringBump(t *testing.T) {
	bus := events.NewBus()
	b := NewBlock(level.BlockMushroom, 5, 3, bus, objectsConfig())

	spawns := 0
	b.SpawnMushroom = func(core.Vec2) { spawns++ }

	p := newTestPlayer(bus, core.V(5.5, 2.5))
	b.HitFromBelow(p)
	b.HitFromBelow(p) // mid-bump, swallowed

	if spawns != 1 {
		t.Errorf("Hit during bump must be swallowed, got %d spawns", spawns)
	}
}

func TestBumpOffsetTriangle(t *testing.T) {
	bus := events.NewBus()
	b := NewBlock(level.BlockBrick, 5, 3, bus, objectsConfig())
	p := newTestPlayer(bus, core.V(5.5, 2.5))
	b.HitFromBelow(p)

	// Rise to the peak over the first half
	var peak float64
	for i := 0; i < 13; i++ {
		b.Tick(testDT)
		if off := b.BumpOffset(); off > peak {
			peak = off
		}
	}
	if peak < bumpRise*0.8 {
		t.Errorf("Bump should peak near %v, got %v", bumpRise, peak)
	}

	// Falls back to zero by the end
	for i := 0; i < 13; i++ {
		b.Tick(testDT)
	}
	if off := b.BumpOffset(); off != 0 {
		t.Errorf("Bump should settle at zero, got %v", off)
	}
}

func TestItemEmergesThenPatrols(t *testing.T) {
	bus := events.NewBus()
	space := physics.NewSpace(20, 10)
	for x := 0; x < 20; x++ {
		space.SetSolid(x, 0, true)
	}

	appears := 0
	bus.Subscribe(events.PowerUpAppear, func(events.Kind) { appears++ })

	blockPos := core.V(5.5, 3.5)
	it := NewItem(ItemMushroom, blockPos, bus, itemsConfig())

	if appears != 1 {
		t.Fatalf("Spawn should publish PowerUpAppear, got %d", appears)
	}
	if !it.Emerging() {
		t.Fatal("Item should start emerging")
	}
	if it.Body().Enabled {
		t.Error("Emerging item must be intangible")
	}

	// Cannot collect mid-emerge
	p := newTestPlayer(bus, blockPos)
	it.Collect(p)
	if it.Gone() {
		t.Error("Emerging item must not be collectable")
	}

	// Emerge completes after the configured second
	for i := 0; i < 55 && it.Emerging(); i++ {
		it.Tick(space, testDT)
	}
	if it.Emerging() {
		t.Fatal("Item should have finished emerging")
	}
	if !it.Body().Enabled {
		t.Error("Emerged item should be tangible")
	}
	if it.Body().Pos != blockPos.Add(core.Up) {
		t.Errorf("Item should sit atop the block, at %v", it.Body().Pos)
	}

	// Now it patrols rightward
	x0 := it.Body().Pos.X
	for i := 0; i < 25; i++ {
		it.Tick(space, testDT)
	}
	if it.Body().Pos.X <= x0 {
		t.Errorf("Mushroom should patrol right, moved %v -> %v", x0, it.Body().Pos.X)
	}
}

func TestItemCollectGrowsOrStars(t *testing.T) {
	bus := events.NewBus()

	collects := 0
	bus.Subscribe(events.PowerUpCollect, func(events.Kind) { collects++ })

	// Zero emerge duration: collectable immediately
	cfg := itemsConfig()
	cfg.EmergeDuration = 0

	p := newTestPlayer(bus, core.V(5, 5))
	p.Combat().OnFreeze = func(float64) {}

	mushroom := NewItem(ItemMushroom, core.V(5, 5), bus, cfg)
	mushroom.Collect(p)
	if !mushroom.Gone() || collects != 1 {
		t.Fatalf("Collect failed: gone=%v collects=%d", mushroom.Gone(), collects)
	}
	if !p.Combat().Transitioning() {
		t.Error("Mushroom should start the grow transition")
	}

	star := NewItem(ItemStar, core.V(5, 5), bus, cfg)
	star.Collect(p)
	if !p.Combat().Star() {
		t.Error("Star item should grant star power")
	}

	// Double collection is a no-op
	star.Collect(p)
	if collects != 2 {
		t.Errorf("Expected 2 collect events, got %d", collects)
	}
}

func TestCoinTakeOnce(t *testing.T) {
	c := NewCoin(4, 2)

	if c.Body().Pos != core.V(4.5, 2.5) {
		t.Errorf("Coin should center on its tile, at %v", c.Body().Pos)
	}

	if !c.Take() {
		t.Fatal("First take should succeed")
	}
	if !c.Taken() || c.Body().Enabled {
		t.Error("Taken coin should be disabled")
	}
	if c.Take() {
		t.Error("Second take should fail")
	}
}

func TestCoinPopLifecycle(t *testing.T) {
	cp := NewCoinPop(core.V(5, 4))

	// Rises during the first half
	for i := 0; i < 10; i++ {
		cp.Tick(testDT)
	}
	if cp.Pos.Y <= 4 {
		t.Errorf("Pop should rise first, at %v", cp.Pos.Y)
	}
	if cp.Done() {
		t.Error("Pop should still be running")
	}

	for i := 0; i < 20; i++ {
		cp.Tick(testDT)
	}
	if !cp.Done() {
		t.Error("Pop should be done after its duration")
	}
}

func TestDebrisFliesApartAndExpires(t *testing.T) {
	d := NewDebris(core.V(5, 3))

	d.Tick(testDT)
	if d.Pieces[0].X >= 5 || d.Pieces[1].X <= 5 {
		t.Error("Fragments should fly apart horizontally")
	}

	for i := 0; i < 55; i++ {
		d.Tick(testDT)
	}
	if !d.Done() {
		t.Error("Debris should expire after its lifetime")
	}
}

func pipeDef(exitOffset level.Point, underground bool) level.PipeDef {
	return level.PipeDef{
		Entry:       level.Point{X: 6, Y: 2},
		Dest:        level.Point{X: 30, Y: 10},
		ExitOffset:  exitOffset,
		Underground: underground,
	}
}

func TestPipeWantsEntry(t *testing.T) {
	bus := events.NewBus()
	space := physics.NewSpace(40, 20)
	for x := 0; x < 40; x++ {
		space.SetSolid(x, 1, true)
	}

	pp := NewPipe(pipeDef(level.Point{}, true), bus, objectsConfig())
	p := newTestPlayer(bus, core.V(6.2, 2.5))

	duck := core.NewInputFrame()
	duck.Hold(core.ActionDuck)

	// Not grounded yet: the grounded flag comes from FrameTick's probe
	if pp.WantsEntry(p, duck) {
		t.Error("Entry requires a grounded player")
	}

	p.FrameTick(space, duck, testDT)
	if !p.Grounded() {
		t.Fatal("Player should be grounded on the pipe mouth")
	}
	if !pp.WantsEntry(p, duck) {
		t.Error("Grounded duck on the mouth should request entry")
	}

	// No duck, no entry
	if pp.WantsEntry(p, core.NewInputFrame()) {
		t.Error("Entry requires holding duck")
	}

	// Too far to the side
	p.Body.Pos.X = 7.0
	if pp.WantsEntry(p, duck) {
		t.Error("Entry requires standing within the mouth span")
	}
}

func TestPipeInstantTeleport(t *testing.T) {
	bus := events.NewBus()

	var kinds []events.Kind
	bus.SubscribeAll(func(k events.Kind) { kinds = append(kinds, k) })

	pp := NewPipe(pipeDef(level.Point{}, true), bus, objectsConfig())
	p := newTestPlayer(bus, core.V(6.2, 2.5))

	pp.Begin(p)
	if !p.Cinematic {
		t.Fatal("Pipe travel should be cinematic")
	}
	if len(kinds) != 1 || kinds[0] != events.PowerDown {
		t.Fatalf("Begin should publish PowerDown, got %v", kinds)
	}

	// Sink takes PipeTravel = 1s, then an instant teleport
	kinds = nil
	for i := 0; i < 55 && pp.Active(); i++ {
		pp.Tick(p, testDT)
	}

	if pp.Active() {
		t.Fatal("Zero-offset travel should finish after the sink")
	}
	if p.Body.Pos != core.V(30, 10) {
		t.Errorf("Player should teleport to the destination, at %v", p.Body.Pos)
	}
	if p.Cinematic {
		t.Error("Cinematic should end on arrival")
	}
	if len(kinds) != 1 || kinds[0] != events.MusicUnderground {
		t.Errorf("Teleport should fire only the destination music event, got %v", kinds)
	}
}

func TestPipeOffsetExitAnimates(t *testing.T) {
	bus := events.NewBus()

	var kinds []events.Kind
	bus.SubscribeAll(func(k events.Kind) { kinds = append(kinds, k) })

	pp := NewPipe(pipeDef(level.Point{X: 0, Y: 1}, false), bus, objectsConfig())
	p := newTestPlayer(bus, core.V(6.2, 2.5))

	pp.Begin(p)
	kinds = nil

	// Sink completes, then the emerge phase starts at dest-offset
	for i := 0; i < 52; i++ {
		pp.Tick(p, testDT)
	}
	if !pp.Active() {
		t.Fatal("Offset exit should still be emerging")
	}
	if len(kinds) != 1 || kinds[0] != events.MusicAboveGround {
		t.Fatalf("Arrival should fire the music event, got %v", kinds)
	}
	if p.Body.Pos.Y >= 11 {
		t.Errorf("Emerge should start below the destination exit, at %v", p.Body.Pos)
	}

	// Emerge completes at dest+offset over PipeEmerge = 1s
	for i := 0; i < 55 && pp.Active(); i++ {
		pp.Tick(p, testDT)
	}
	if pp.Active() {
		t.Fatal("Emerge should have finished")
	}
	if p.Body.Pos != core.V(30, 11) {
		t.Errorf("Player should end at dest+offset (30, 11), at %v", p.Body.Pos)
	}
	if p.Cinematic {
		t.Error("Cinematic should end after emerging")
	}
}

func TestFlagpoleSequence(t *testing.T) {
	bus := events.NewBus()

	var kinds []events.Kind
	bus.SubscribeAll(func(k events.Kind) { kinds = append(kinds, k) })

	finished := 0
	f := NewFlagpole(50, 1.5, bus, objectsConfig())
	f.OnFinish = func() { finished++ }

	p := newTestPlayer(bus, core.V(49.8, 8))
	f.Trigger(p)

	if !p.FlagpoleHold {
		t.Fatal("Trigger should put the player in the flagpole hold")
	}
	if p.Body.Pos.X != 50 {
		t.Errorf("Trigger should snap the player to the pole, x=%v", p.Body.Pos.X)
	}
	if len(kinds) != 1 || kinds[0] != events.FlagpoleStart {
		t.Fatalf("Expected FlagpoleStart, got %v", kinds)
	}

	// Re-trigger is a no-op
	f.Trigger(p)
	if len(kinds) != 1 {
		t.Error("Second trigger must not re-fire")
	}

	// Slide down at FlagDescent until the ground, then walk
	kinds = nil
	for i := 0; i < 200 && f.Active(); i++ {
		f.Tick(p, testDT)
	}

	if !f.Finished() {
		t.Fatal("Cinematic should have completed")
	}
	if finished != 1 {
		t.Errorf("OnFinish should fire once, got %d", finished)
	}
	if len(kinds) != 1 || kinds[0] != events.LevelFinish {
		t.Errorf("Expected LevelFinish, got %v", kinds)
	}
	if p.FlagpoleHold || p.Cinematic {
		t.Error("Player control flags should clear at the end")
	}
	if p.Body.Pos.X < 55 {
		t.Errorf("Player should walk to the castle at x=55, at %v", p.Body.Pos.X)
	}
	if p.Body.Pos.Y != 1.5 {
		t.Errorf("Slide should stop at ground level, y=%v", p.Body.Pos.Y)
	}
}
