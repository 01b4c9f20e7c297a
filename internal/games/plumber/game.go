// Package plumber implements the side-scrolling platformer: a fixed-step
// world simulation (player, enemies, blocks, pipes, flagpole) coordinated
// by a session authority and a synchronous event bus.
package plumber

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-plumber/internal/audio"
	"github.com/vovakirdan/tui-plumber/internal/config"
	"github.com/vovakirdan/tui-plumber/internal/core"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/events"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/level"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/session"
	"github.com/vovakirdan/tui-plumber/internal/registry"
)

// fixedDT is the physics integration step. Input decisions run once per
// frame tick; integration catches up through an accumulator so motion is
// identical at any frame rate.
const fixedDT = 1.0 / 50.0

// Score values per event.
const (
	scoreCoin   = 200
	scoreStomp  = 100
	scoreFinish = 1000
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	default:
		difficultyPreset = ""
	}
}

// Game is the platformer core. The campaign variant walks every embedded
// stage; the single-stage variant replays one stage for score runs.
type Game struct {
	runtime core.RuntimeConfig
	cfg     config.PlumberConfig
	logger  *log.Logger

	bus     *events.Bus
	sess    *session.Session
	world   *world
	jukebox *audio.Jukebox

	score  int
	freeze float64 // seconds of system-wide time freeze left
	acc    float64 // fixed-step accumulator

	stageOnly bool
}

// New creates a campaign game instance.
func New() *Game {
	return &Game{logger: log.Default()}
}

// NewStageRun creates a single-stage game instance.
func NewStageRun() *Game {
	return &Game{logger: log.Default(), stageOnly: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.stageOnly {
		return "plumber_stage"
	}
	return "plumber"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.stageOnly {
		return "Plumber Bros (Stage Run)"
	}
	return "Plumber Bros"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadPlumber(configPath)
	if err != nil {
		cfg = config.DefaultPlumberConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPlumberPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	g.bus = events.NewBus()
	g.sess = session.New(g.bus, cfg.Session, g.logger)
	g.sess.SetLoader(g.loadStage, g.stageExists)
	if g.jukebox != nil {
		g.jukebox.Close()
	}
	g.jukebox = audio.NewJukebox(g.bus, cfg.Objects.MusicRestore, g.logger)
	g.subscribeScore()

	g.score = 0
	g.freeze = 0
	g.acc = 0
	g.sess.NewGame()
}

func (g *Game) stageExists(world, stage int) bool {
	if g.stageOnly {
		return false
	}
	return level.Exists(world, stage)
}

func (g *Game) loadStage(worldNum, stageNum int) {
	if g.stageOnly {
		worldNum, stageNum = 1, 1
	}
	stg, err := level.Load(worldNum, stageNum)
	if err != nil {
		g.logger.Warn("stage load failed", "world", worldNum, "stage", stageNum, "err", err)
		return
	}
	g.world = newWorld(stg, g.cfg, g.bus, g.sess, g.freezeFor, g.runtime.ScreenW, g.logger)
	g.acc = 0
	if stg.Underground {
		g.bus.Publish(events.MusicUnderground)
	} else {
		g.bus.Publish(events.MusicAboveGround)
	}
}

// freezeFor suspends scaled simulation time. A longer in-flight freeze is
// kept; the windows never stack.
func (g *Game) freezeFor(seconds float64) {
	if seconds > g.freeze {
		g.freeze = seconds
	}
}

func (g *Game) subscribeScore() {
	g.bus.Subscribe(events.CoinCollect, func(events.Kind) { g.score += scoreCoin })
	g.bus.Subscribe(events.OneUp, func(events.Kind) { g.score += scoreCoin })
	g.bus.Subscribe(events.Flattened, func(events.Kind) { g.score += scoreStomp })
	g.bus.Subscribe(events.ShellEnter, func(events.Kind) { g.score += scoreStomp })
	g.bus.Subscribe(events.EnemyHit, func(events.Kind) { g.score += scoreStomp })
	g.bus.Subscribe(events.LevelFinish, func(events.Kind) { g.score += scoreFinish })
}

// Bus exposes the event stream for audio and other listeners.
func (g *Game) Bus() *events.Bus { return g.bus }

// Jukebox exposes the audio-state collaborator.
func (g *Game) Jukebox() *audio.Jukebox { return g.jukebox }

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.sess == nil || g.world == nil {
		return core.StepResult{State: g.State()}
	}

	if g.sess.Over() {
		if in.Has(core.ActionRestart) {
			g.Reset(g.runtime)
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.sess.TogglePause()
	}
	if g.sess.Paused() {
		return core.StepResult{State: g.State()}
	}

	dt := 1.0 / float64(g.runtime.TickRate)

	// Unscaled time: death-reset countdown and form-transition flicker run
	// even while the world is frozen.
	g.sess.Tick(dt)
	g.world.plr.Combat().UnscaledTick(dt)
	g.jukebox.Tick(dt)
	if g.sess.Over() || g.world == nil {
		return core.StepResult{State: g.State()}
	}

	if g.freeze > 0 {
		g.freeze -= dt
		return core.StepResult{State: g.State()}
	}

	g.world.frameTick(in, dt)
	g.acc += dt
	for g.acc >= fixedDT {
		g.world.physicsTick(fixedDT)
		g.acc -= fixedDT
	}

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{Score: g.score}
	if g.sess != nil {
		st.World = g.sess.World
		st.Stage = g.sess.Stage
		st.Lives = g.sess.Lives
		st.Coins = g.sess.Coins
		st.GameOver = g.sess.Over()
		st.Paused = g.sess.Paused()
	}
	return st
}

func init() {
	registry.Register("plumber", func() registry.Game {
		return New()
	})
	registry.Register("plumber_stage", func() registry.Game {
		return NewStageRun()
	})
}
