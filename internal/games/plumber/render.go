package plumber

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-plumber/internal/core"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/enemies"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/level"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/objects"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber/player"
)

// Tile and sprite glyphs.
const (
	groundChar    = '█'
	pipeChar      = 'H'
	brickChar     = 'B'
	boxChar       = '?'
	emptyBoxChar  = '■'
	coinChar      = 'o'
	goombaChar    = 'n'
	squashedChar  = '_'
	koopaChar     = 'k'
	shellChar     = 'O'
	mushroomChar  = 'm'
	starChar      = '*'
	poleChar      = '|'
	flagChar      = '▶'
	debrisChar    = '·'
	playerChar    = '@'
	playerBody    = '#'
	deadChar      = 'x'
	poleHeight    = 9
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.world == nil {
		dst.DrawTextCentered(dst.Height()/2, "LOADING...")
		return
	}
	w := g.world
	camX := w.cam.Left()

	g.drawTiles(dst, camX)
	g.drawBlocks(dst, camX)
	g.drawCoins(dst, camX)
	g.drawFlag(dst, camX)
	g.drawItems(dst, camX)
	g.drawEnemies(dst, camX)
	g.drawEffects(dst, camX)
	g.drawPlayer(dst, camX)
	g.drawHUD(dst)

	if g.sess.Over() {
		dst.DrawTextCentered(dst.Height()/2, "GAME OVER")
		dst.DrawTextCentered(dst.Height()/2+1, "Press R to restart")
	} else if g.sess.Paused() {
		dst.DrawTextCentered(dst.Height()/2, "PAUSED")
	}
}

// project converts a world position to a screen cell. Row 0 is the HUD;
// world y 0 maps to the bottom screen row.
func (g *Game) project(dst *core.Screen, camX, wx, wy float64) (int, int, bool) {
	sx := int(math.Floor(wx - camX))
	sy := dst.Height() - 1 - int(math.Floor(wy))
	ok := sx >= 0 && sx < dst.Width() && sy >= 1 && sy < dst.Height()
	return sx, sy, ok
}

func (g *Game) drawTiles(dst *core.Screen, camX float64) {
	st := g.world.stage
	for sy := 1; sy < dst.Height(); sy++ {
		wy := dst.Height() - 1 - sy
		if wy >= st.Height {
			continue
		}
		for sx := 0; sx < dst.Width(); sx++ {
			wx := int(math.Floor(camX)) + sx
			if wx < 0 || wx >= st.Width || !st.Solids[wy][wx] {
				continue
			}
			if st.PipeTiles[wy][wx] {
				dst.SetColored(sx, sy, pipeChar, core.ColorBrightGreen)
			} else {
				dst.SetColored(sx, sy, groundChar, core.ColorGray)
			}
		}
	}
}

func (g *Game) drawBlocks(dst *core.Screen, camX float64) {
	for _, blk := range g.world.blocks {
		if blk.Broken() {
			continue
		}
		pos := blk.Body().Pos
		y := pos.Y
		if blk.BumpOffset() > 0.1 {
			y++
		}
		sx, sy, ok := g.project(dst, camX, pos.X, y)
		if !ok {
			continue
		}
		switch {
		case blk.Empty():
			dst.SetColored(sx, sy, emptyBoxChar, core.ColorGray)
		case blk.Kind() == level.BlockBrick:
			dst.SetColored(sx, sy, brickChar, core.ColorRed)
		default:
			dst.SetColored(sx, sy, boxChar, core.ColorBrightYellow)
		}
	}
}

func (g *Game) drawCoins(dst *core.Screen, camX float64) {
	for _, c := range g.world.coins {
		if c.Taken() {
			continue
		}
		if sx, sy, ok := g.project(dst, camX, c.Body().Pos.X, c.Body().Pos.Y); ok {
			dst.SetColored(sx, sy, coinChar, core.ColorYellow)
		}
	}
}

func (g *Game) drawFlag(dst *core.Screen, camX float64) {
	f := g.world.flag
	if f == nil {
		return
	}
	base := f.GroundY - 0.5
	for i := 0; i < poleHeight; i++ {
		if sx, sy, ok := g.project(dst, camX, f.X, base+float64(i)); ok {
			dst.SetColored(sx, sy, poleChar, core.ColorWhite)
		}
	}
	if sx, sy, ok := g.project(dst, camX, f.X+1, base+poleHeight-1); ok {
		dst.SetColored(sx, sy, flagChar, core.ColorBrightRed)
	}
}

func (g *Game) drawItems(dst *core.Screen, camX float64) {
	for _, it := range g.world.items {
		sx, sy, ok := g.project(dst, camX, it.Body().Pos.X, it.Body().Pos.Y)
		if !ok {
			continue
		}
		if it.Kind() == objects.ItemStar {
			dst.SetColored(sx, sy, starChar, core.ColorBrightYellow)
		} else {
			dst.SetColored(sx, sy, mushroomChar, core.ColorBrightRed)
		}
	}
}

func (g *Game) drawEnemies(dst *core.Screen, camX float64) {
	for _, foe := range g.world.foes {
		pos := foe.Body().Pos
		sx, sy, ok := g.project(dst, camX, pos.X, pos.Y)
		if !ok {
			continue
		}
		switch e := foe.(type) {
		case *enemies.Goomba:
			if e.Flattened() {
				dst.SetColored(sx, sy, squashedChar, core.ColorOrange)
			} else {
				dst.SetColored(sx, sy, goombaChar, core.ColorOrange)
			}
		case *enemies.Koopa:
			if e.Shelled() {
				dst.SetColored(sx, sy, shellChar, core.ColorGreen)
			} else {
				dst.SetColored(sx, sy, koopaChar, core.ColorGreen)
			}
		}
	}
}

func (g *Game) drawEffects(dst *core.Screen, camX float64) {
	for _, cp := range g.world.pops {
		if sx, sy, ok := g.project(dst, camX, cp.Pos.X, cp.Pos.Y); ok {
			dst.SetColored(sx, sy, coinChar, core.ColorBrightYellow)
		}
	}
	for _, d := range g.world.debris {
		for _, piece := range d.Pieces {
			if sx, sy, ok := g.project(dst, camX, piece.X, piece.Y); ok {
				dst.SetColored(sx, sy, debrisChar, core.ColorRed)
			}
		}
	}
}

func (g *Game) drawPlayer(dst *core.Screen, camX float64) {
	plr := g.world.plr
	cb := plr.Combat()
	if !cb.Visible() {
		return
	}

	color := core.ColorBrightCyan
	if hue := cb.ColorOverride(); hue != core.ColorDefault {
		color = hue
	}

	glyph := playerChar
	if cb.Dead() {
		glyph = deadChar
	}

	pos := plr.Body.Pos
	sx, sy, ok := g.project(dst, camX, pos.X, pos.Y)
	if !ok {
		return
	}
	if cb.DisplayForm() == player.FormBig && !cb.Dead() {
		if _, hy, hok := g.project(dst, camX, pos.X, pos.Y+1); hok {
			dst.SetColored(sx, hy, glyph, color)
		}
		dst.SetColored(sx, sy, playerBody, color)
		return
	}
	dst.SetColored(sx, sy, glyph, color)
}

func (g *Game) drawHUD(dst *core.Screen) {
	st := g.State()
	hud := fmt.Sprintf(" SCORE %06d  COINS %02d  WORLD %d-%d  LIVES %02d ",
		st.Score, st.Coins, st.World, st.Stage, st.Lives)
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)
}
