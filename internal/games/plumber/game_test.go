package plumber

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-plumber/internal/core"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/events"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func holdRight() core.InputFrame {
	in := core.NewInputFrame()
	in.Hold(core.ActionRight)
	return in
}

func TestCameraOneWayFollow(t *testing.T) {
	c := newCamera(20, 100)

	c.Follow(5)
	if c.Left() != 0 {
		t.Errorf("Camera should clamp at the stage start, left=%v", c.Left())
	}

	c.Follow(30)
	if c.Left() != 20 {
		t.Errorf("Camera should center the target, left=%v", c.Left())
	}

	c.Follow(15)
	if c.Left() != 20 {
		t.Errorf("Camera must never scroll back, left=%v", c.Left())
	}

	c.Follow(1000)
	if c.Left() != 80 {
		t.Errorf("Camera should clamp at the stage end, left=%v", c.Left())
	}
	if c.Right() != 100 {
		t.Errorf("Right edge should stop at the stage width, right=%v", c.Right())
	}
}

func TestCameraNarrowStage(t *testing.T) {
	c := newCamera(40, 20)
	c.Follow(100)
	if c.Left() != 0 {
		t.Errorf("A stage narrower than the view never scrolls, left=%v", c.Left())
	}
}

func TestGameIdentity(t *testing.T) {
	g := New()
	if g.ID() != "plumber" || g.Title() == "" {
		t.Errorf("Campaign identity wrong: %q / %q", g.ID(), g.Title())
	}

	sr := NewStageRun()
	if sr.ID() != "plumber_stage" || sr.Title() == "" {
		t.Errorf("Stage-run identity wrong: %q / %q", sr.ID(), sr.Title())
	}
}

func TestGameResetInitialState(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	st := g.State()
	if st.World != 1 || st.Stage != 1 {
		t.Errorf("Campaign should open on 1-1, got %d-%d", st.World, st.Stage)
	}
	if st.Lives != 3 {
		t.Errorf("Expected 3 lives, got %d", st.Lives)
	}
	if st.Score != 0 || st.Coins != 0 {
		t.Errorf("Counters should start at zero, score=%d coins=%d", st.Score, st.Coins)
	}
	if st.GameOver || st.Paused {
		t.Error("A fresh game is neither over nor paused")
	}
	if g.world == nil {
		t.Fatal("Reset should load a stage")
	}
}

func TestGamePauseGatesSimulation(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	if st := g.Step(pause).State; !st.Paused {
		t.Fatal("Pause press should pause")
	}

	x0 := g.world.plr.Body.Pos.X
	for i := 0; i < 30; i++ {
		g.Step(holdRight())
	}
	if g.world.plr.Body.Pos.X != x0 {
		t.Error("Paused world must not advance")
	}

	if st := g.Step(pause).State; st.Paused {
		t.Fatal("Second pause press should resume")
	}
	for i := 0; i < 30; i++ {
		g.Step(holdRight())
	}
	if g.world.plr.Body.Pos.X <= x0 {
		t.Error("Resumed world should advance")
	}
}

func TestGameScoreSubscriptions(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	g.Bus().Publish(events.CoinCollect)
	g.Bus().Publish(events.Flattened)
	g.Bus().Publish(events.LevelFinish)

	if got := g.State().Score; got != 200+100+1000 {
		t.Errorf("Expected score 1300, got %d", got)
	}
}

func TestGameFreezeSuspendsWorld(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	g.freezeFor(0.5)
	g.freezeFor(0.2) // shorter window must not shrink the freeze
	if g.freeze != 0.5 {
		t.Fatalf("Freeze windows must not stack or shrink, got %v", g.freeze)
	}

	x0 := g.world.plr.Body.Pos.X
	for i := 0; i < 10; i++ {
		g.Step(holdRight())
	}
	if g.world.plr.Body.Pos.X != x0 {
		t.Error("Frozen world must not advance")
	}

	for i := 0; i < 60; i++ {
		g.Step(holdRight())
	}
	if g.world.plr.Body.Pos.X <= x0 {
		t.Error("World should advance once the freeze expires")
	}
}

func TestGameDeathBurnsLifeAndReloads(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	spawnX := g.world.plr.Body.Pos.X
	for i := 0; i < 60; i++ {
		g.Step(holdRight())
	}
	if g.world.plr.Body.Pos.X <= spawnX {
		t.Fatal("Player should have walked off the spawn")
	}

	g.world.plr.Body.Pos.Y = -2
	g.Step(core.NewInputFrame())
	g.Step(core.NewInputFrame())
	if !g.world.plr.Combat().Dead() {
		t.Fatal("Falling below the stage should kill")
	}

	// The reset countdown runs on unscaled time
	for i := 0; i < 200; i++ {
		g.Step(core.NewInputFrame())
	}
	st := g.State()
	if st.Lives != 2 {
		t.Errorf("Death should burn one life, got %d", st.Lives)
	}
	if g.world.plr.Combat().Dead() {
		t.Error("Reload should hand back a live player")
	}
	if g.world.plr.Body.Pos.X != spawnX {
		t.Errorf("Reload should respawn at the stage start, x=%v", g.world.plr.Body.Pos.X)
	}
}

func TestGameOverThenRestart(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	g.sess.Lives = 1
	g.sess.ScheduleReset(0)
	if !g.State().GameOver {
		t.Fatal("Burning the last life should end the game")
	}

	for i := 0; i < 10; i++ {
		g.Step(holdRight())
	}
	if !g.State().GameOver {
		t.Fatal("A finished game ignores normal input")
	}

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	g.Step(restart)

	st := g.State()
	if st.GameOver {
		t.Fatal("Restart should start a new game")
	}
	if st.Lives != 3 || st.Score != 0 || st.World != 1 || st.Stage != 1 {
		t.Errorf("New game should reset everything, got %+v", st)
	}
}

func TestStageRunReplaysSameStage(t *testing.T) {
	g := NewStageRun()
	g.Reset(testRuntime())

	g.sess.NextLevel()

	st := g.State()
	if st.World != 1 || st.Stage != 1 {
		t.Errorf("Stage run should replay 1-1, got %d-%d", st.World, st.Stage)
	}
	if st.GameOver {
		t.Error("Finishing the stage run restarts, it does not end")
	}
}

func TestGameStepDeterminism(t *testing.T) {
	run := func() (float64, float64, int) {
		g := New()
		g.Reset(testRuntime())
		for i := 0; i < 240; i++ {
			in := holdRight()
			if i == 30 {
				in.Set(core.ActionJump)
			} else if i > 30 && i < 55 {
				in.Hold(core.ActionJump)
			}
			g.Step(in)
		}
		pos := g.world.plr.Body.Pos
		return pos.X, pos.Y, g.State().Score
	}

	x1, y1, s1 := run()
	x2, y2, s2 := run()
	if x1 != x2 || y1 != y2 || s1 != s2 {
		t.Errorf("Identical input must replay identically: (%v,%v,%d) vs (%v,%v,%d)",
			x1, y1, s1, x2, y2, s2)
	}
}

func TestEnemiesFreezeBehindCamera(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame())
	}
	foe := g.world.foes[0]
	if foe.Body().Vel.X == 0 {
		t.Fatal("On-screen enemy should be patrolling")
	}

	// Drag the view past the enemy; the gate freezes what falls behind it
	g.world.cam.x = foe.Body().Pos.X + enemyGateMargin + 5
	g.world.gateEnemies()

	if foe.Body().Vel.X != 0 {
		t.Errorf("Enemy behind the view must be frozen, vel %v", foe.Body().Vel.X)
	}
	pos := foe.Body().Pos
	foe.Tick(g.world.space, fixedDT)
	if foe.Body().Pos != pos {
		t.Error("Frozen enemy must not move")
	}

	// Back inside the gate it resumes
	g.world.cam.x = 0
	g.world.gateEnemies()
	foe.Tick(g.world.space, fixedDT)
	if foe.Body().Vel.X == 0 {
		t.Error("Enemy inside the view should patrol again")
	}
}

func TestHUDPadsCounters(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	s := core.NewScreen(80, 24)
	g.Render(s)

	hud := s.Row(0)
	if !strings.Contains(hud, "LIVES 03") {
		t.Errorf("Lives should render as two digits, hud %q", hud)
	}
	if !strings.Contains(hud, "COINS 00") {
		t.Errorf("Coins should render as two digits, hud %q", hud)
	}
}
