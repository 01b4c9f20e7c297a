// Package events provides the notification channel that decouples gameplay
// state changes from audio/UI collaborators. Events are identity-only
// notifications dispatched synchronously, in subscription order, through a
// single bus over a closed vocabulary of kinds.
package events

// Kind identifies a gameplay notification.
type Kind int

const (
	BlockBump Kind = iota // solid knock on a block that cannot break
	BlockBreak
	PowerUpAppear
	PowerUpCollect
	PowerDown // shared pipe-travel / shrink sound
	CoinCollect
	OneUp
	JumpSmall
	JumpBig
	PlayerDeath
	StarStart
	StarStop
	EnemyHit  // any enemy killed by a generic Hit
	ShellHit  // enemy killed by a moving shell (fired before EnemyHit)
	Flattened // goomba stomped flat
	ShellEnter
	ShellKick
	FlagpoleStart
	LevelFinish
	PauseToggle
	MusicUnderground
	MusicAboveGround
	kindCount // sentinel
)

// String returns the event kind name.
func (k Kind) String() string {
	switch k {
	case BlockBump:
		return "block-bump"
	case BlockBreak:
		return "block-break"
	case PowerUpAppear:
		return "power-up-appear"
	case PowerUpCollect:
		return "power-up-collect"
	case PowerDown:
		return "power-down"
	case CoinCollect:
		return "coin-collect"
	case OneUp:
		return "one-up"
	case JumpSmall:
		return "jump-small"
	case JumpBig:
		return "jump-big"
	case PlayerDeath:
		return "player-death"
	case StarStart:
		return "star-start"
	case StarStop:
		return "star-stop"
	case EnemyHit:
		return "enemy-hit"
	case ShellHit:
		return "shell-hit"
	case Flattened:
		return "flattened"
	case ShellEnter:
		return "shell-enter"
	case ShellKick:
		return "shell-kick"
	case FlagpoleStart:
		return "flagpole-start"
	case LevelFinish:
		return "level-finish"
	case PauseToggle:
		return "pause-toggle"
	case MusicUnderground:
		return "music-underground"
	case MusicAboveGround:
		return "music-above-ground"
	default:
		return "unknown"
	}
}

// Listener receives a published event kind.
type Listener func(Kind)

type subscription struct {
	id int
	fn Listener
}

// Bus dispatches events to listeners synchronously and in subscription order.
// It is not safe for concurrent use; the simulation is single-threaded and
// all publishing happens from the tick loop.
type Bus struct {
	nextID    int
	byKind    [kindCount][]subscription
	wildcards []subscription
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a listener for a single event kind.
// Returns a function that removes the listener; listener lifetime is the
// caller's responsibility (subscribe on activation, unsubscribe on
// deactivation).
func (b *Bus) Subscribe(k Kind, fn Listener) (unsubscribe func()) {
	if k < 0 || k >= kindCount || fn == nil {
		return func() {}
	}
	b.nextID++
	id := b.nextID
	b.byKind[k] = append(b.byKind[k], subscription{id: id, fn: fn})
	return func() {
		b.byKind[k] = remove(b.byKind[k], id)
	}
}

// SubscribeAll registers a listener for every event kind.
func (b *Bus) SubscribeAll(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	b.nextID++
	id := b.nextID
	b.wildcards = append(b.wildcards, subscription{id: id, fn: fn})
	return func() {
		b.wildcards = remove(b.wildcards, id)
	}
}

// Publish delivers the event to all current listeners, in invocation order:
// kind-specific listeners first, then wildcard listeners.
func (b *Bus) Publish(k Kind) {
	if k < 0 || k >= kindCount {
		return
	}
	// Snapshot so listeners may unsubscribe during delivery.
	subs := b.byKind[k]
	for _, s := range subs {
		s.fn(k)
	}
	wild := b.wildcards
	for _, s := range wild {
		s.fn(k)
	}
}

func remove(subs []subscription, id int) []subscription {
	for i, s := range subs {
		if s.id == id {
			return append(subs[:i], subs[i+1:]...)
		}
	}
	return subs
}
