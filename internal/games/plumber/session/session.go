// Package session holds the process-wide game session: world/stage/lives/coin
// bookkeeping, pause state, and level (re)load orchestration. It decides when
// and with what target a level loads; the actual swap is performed by an
// injected collaborator. All mutation happens on the simulation thread.
package session

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-plumber/internal/config"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/events"
)

// LoadFunc performs a level swap to the given world and stage.
type LoadFunc func(world, stage int)

// ExistsFunc reports whether a stage is defined for (world, stage).
type ExistsFunc func(world, stage int) bool

// Session is the single game-flow authority. Created once per game instance
// and torn down with it; it persists across level reloads and resets to
// initial values only on NewGame/game-over.
type Session struct {
	World int
	Stage int
	Lives int
	Coins int

	bus    *events.Bus
	logger *log.Logger

	initialLives int
	coinsPerLife int

	paused bool
	over   bool

	load   LoadFunc
	exists ExistsFunc

	// resetPending stays scheduled across downstream resets; scheduling a
	// second reset while one is pending is a no-op.
	resetPending bool
	resetIn      float64
}

// New creates a session with initial counters. A nil logger falls back to
// the process default.
func New(bus *events.Bus, cfg config.SessionConfig, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	coinsPerLife := cfg.CoinsPerLife
	if coinsPerLife <= 0 {
		coinsPerLife = 100
	}
	return &Session{
		bus:          bus,
		logger:       logger,
		initialLives: cfg.InitialLives,
		coinsPerLife: coinsPerLife,
	}
}

// SetLoader wires the level-load collaborator.
func (s *Session) SetLoader(load LoadFunc, exists ExistsFunc) {
	s.load = load
	s.exists = exists
}

// Paused reports whether the simulation is paused.
func (s *Session) Paused() bool { return s.paused }

// Over reports whether the run has ended.
func (s *Session) Over() bool { return s.over }

// TogglePause flips the pause flag and notifies listeners.
func (s *Session) TogglePause() {
	s.paused = !s.paused
	s.bus.Publish(events.PauseToggle)
}

// NewGame resets all counters to initial values and loads the first stage.
func (s *Session) NewGame() {
	s.World = 1
	s.Stage = 1
	s.Lives = s.initialLives
	s.Coins = 0
	s.paused = false
	s.over = false
	s.resetPending = false
	s.loadLevel()
}

// GameOver ends the run. The platform shows the game-over screen and a
// restart goes back through NewGame.
func (s *Session) GameOver() {
	s.over = true
	s.resetPending = false
}

// NextLevel advances to the following stage, wrapping into the next world.
// With no further stages defined the campaign restarts.
func (s *Session) NextLevel() {
	next := s.Stage + 1
	world := s.World
	if s.exists == nil || !s.exists(world, next) {
		world++
		next = 1
	}
	if s.exists != nil && !s.exists(world, next) {
		s.NewGame()
		return
	}
	s.World = world
	s.Stage = next
	s.loadLevel()
}

// AddCoin increments the coin counter. At the wrap threshold the counter
// returns to zero and a life is granted instead: the wrapping call fires
// exactly one one-up notification and no coin notification.
func (s *Session) AddCoin() {
	s.Coins++
	if s.Coins >= s.coinsPerLife {
		s.Coins = 0
		s.Lives++
		s.bus.Publish(events.OneUp)
		return
	}
	s.bus.Publish(events.CoinCollect)
}

// AddLife grants an extra life.
func (s *Session) AddLife() {
	s.Lives++
	s.bus.Publish(events.OneUp)
}

// ScheduleReset requests a level reset after delay seconds. A reset already
// pending is left in place; re-entrant requests never double-schedule.
func (s *Session) ScheduleReset(delay float64) {
	if s.resetPending {
		return
	}
	if delay <= 0 {
		s.resetLevel()
		return
	}
	s.resetPending = true
	s.resetIn = delay
}

// ResetPending reports whether a delayed reset is scheduled.
func (s *Session) ResetPending() bool { return s.resetPending }

// Tick advances the pending reset timer. Runs on unscaled time so a death
// reset still fires while other systems are suspended.
func (s *Session) Tick(dt float64) {
	if !s.resetPending {
		return
	}
	s.resetIn -= dt
	if s.resetIn <= 0 {
		s.resetPending = false
		s.resetLevel()
	}
}

// resetLevel burns a life and reloads the current stage, or ends the game
// when no lives remain.
func (s *Session) resetLevel() {
	s.Lives--
	if s.Lives <= 0 {
		s.GameOver()
		return
	}
	s.loadLevel()
}

func (s *Session) loadLevel() {
	if s.load == nil {
		s.logger.Warn("session: no level loader wired, skipping load",
			"world", s.World, "stage", s.Stage)
		return
	}
	s.load(s.World, s.Stage)
}
