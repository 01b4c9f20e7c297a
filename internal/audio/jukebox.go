// Package audio maps gameplay events to sample and music-track names.
// There is no device playback in the terminal build; the jukebox keeps the
// track/sample state that a playback backend or the HUD can observe.
package audio

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-plumber/internal/games/plumber/events"
)

// Track names.
const (
	TrackAboveGround = "overworld"
	TrackUnderground = "underground"
	TrackInvincible  = "invincible"
)

// samples maps one-shot events to sample names. Events absent here are
// music or flow control, not sounds.
var samples = map[events.Kind]string{
	events.BlockBump:      "bump",
	events.BlockBreak:     "break",
	events.PowerUpAppear:  "powerup-appear",
	events.PowerUpCollect: "powerup",
	events.PowerDown:      "powerdown",
	events.CoinCollect:    "coin",
	events.OneUp:          "one-up",
	events.JumpSmall:      "jump-small",
	events.JumpBig:        "jump-big",
	events.PlayerDeath:    "death",
	events.Flattened:      "stomp",
	events.ShellEnter:     "stomp",
	events.ShellKick:      "kick",
	events.ShellHit:       "kick",
	events.EnemyHit:       "stomp",
	events.FlagpoleStart:  "flagpole",
	events.LevelFinish:    "stage-clear",
	events.PauseToggle:    "pause",
}

// Jukebox subscribes to the event bus and tracks the current music and the
// most recent sample. Invincibility music restores the prior track after a
// fixed window.
type Jukebox struct {
	logger *log.Logger

	current    string
	prior      string
	restoreIn  float64
	restoreWin float64
	lastSample string

	unsubscribe func()
}

// NewJukebox wires a jukebox to the bus. restoreWindow is how long the
// invincibility track plays before the prior track returns.
func NewJukebox(bus *events.Bus, restoreWindow float64, logger *log.Logger) *Jukebox {
	if logger == nil {
		logger = log.Default()
	}
	j := &Jukebox{
		logger:     logger,
		current:    TrackAboveGround,
		restoreWin: restoreWindow,
	}
	j.unsubscribe = bus.SubscribeAll(j.handle)
	return j
}

// Close detaches the jukebox from the bus.
func (j *Jukebox) Close() {
	if j.unsubscribe != nil {
		j.unsubscribe()
		j.unsubscribe = nil
	}
}

// CurrentTrack returns the music track that should be playing.
func (j *Jukebox) CurrentTrack() string { return j.current }

// LastSample returns the most recent one-shot sample name.
func (j *Jukebox) LastSample() string { return j.lastSample }

func (j *Jukebox) handle(k events.Kind) {
	switch k {
	case events.MusicAboveGround:
		j.setTrack(TrackAboveGround)
	case events.MusicUnderground:
		j.setTrack(TrackUnderground)
	case events.StarStart:
		if j.current != TrackInvincible {
			j.prior = j.current
		}
		j.current = TrackInvincible
		j.restoreIn = j.restoreWin
	case events.StarStop:
		j.restoreNow()
	default:
		if s, ok := samples[k]; ok {
			j.lastSample = s
		}
	}
}

func (j *Jukebox) setTrack(t string) {
	if j.current == TrackInvincible {
		// A mid-star area change replaces the track we will restore to.
		j.prior = t
		return
	}
	j.current = t
}

func (j *Jukebox) restoreNow() {
	if j.current != TrackInvincible {
		return
	}
	j.current = j.prior
	j.restoreIn = 0
}

// Tick counts down the invincibility music window.
func (j *Jukebox) Tick(dt float64) {
	if j.current != TrackInvincible || j.restoreIn <= 0 {
		return
	}
	j.restoreIn -= dt
	if j.restoreIn <= 0 {
		j.restoreNow()
	}
}
