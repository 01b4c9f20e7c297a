package objects

import (
	"github.com/vovakirdan/tui-plumber/internal/core"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/physics"
)

// Coin is a free-floating collectable. Touching it credits the session;
// the coin itself only tracks whether it has been taken.
type Coin struct {
	body  *physics.Body
	taken bool
}

// NewCoin places a coin at the given tile.
func NewCoin(tileX, tileY int) *Coin {
	c := &Coin{
		body: physics.NewBody(physics.Static, physics.LayerItem, 0.6, 0.6),
	}
	c.body.Pos = core.V(float64(tileX)+0.5, float64(tileY)+0.5)
	c.body.Owner = c
	return c
}

// Body returns the coin's trigger collider.
func (c *Coin) Body() *physics.Body { return c.body }

// Taken reports whether the coin has been collected.
func (c *Coin) Taken() bool { return c.taken }

// Take marks the coin collected. Crediting the session is the caller's job
// so coin accounting stays in one place.
func (c *Coin) Take() bool {
	if c.taken {
		return false
	}
	c.taken = true
	c.body.Enabled = false
	return true
}

// coinPopDuration is how long the pop animation from a hit block lasts.
const coinPopDuration = 0.5

// CoinPop is the short coin-out-of-block animation. The coin is credited
// the moment the pop spawns; this object is presentation state only.
type CoinPop struct {
	Pos     core.Vec2
	elapsed float64
}

// NewCoinPop starts a pop at the given position.
func NewCoinPop(pos core.Vec2) *CoinPop {
	return &CoinPop{Pos: pos}
}

// Tick advances the pop; the coin rises then falls back over the duration.
func (cp *CoinPop) Tick(dt float64) {
	cp.elapsed += dt
	half := coinPopDuration / 2
	if cp.elapsed < half {
		cp.Pos.Y += 4 * dt
	} else {
		cp.Pos.Y -= 4 * dt
	}
}

// Done reports whether the animation has finished.
func (cp *CoinPop) Done() bool { return cp.elapsed >= coinPopDuration }
