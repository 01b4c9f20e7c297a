// Package level provides stage definitions for the platformer.
// Stages are YAML files: an ASCII tile map plus pipe-link metadata. The
// package depends only on the yaml parser; gameplay code turns spawns into
// live entities.
package level

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// BlockKind identifies what a block does when hit.
type BlockKind int

const (
	BlockBrick    BlockKind = iota // breakable when the player is big
	BlockCoin                      // yields one coin, then empties
	BlockMushroom                  // spawns a mushroom, then empties
	BlockStar                      // spawns a star, then empties
)

// Tile map legend. One rune per tile; rows are authored top-first.
const (
	tileEmpty    = '.'
	tileGround   = '#'
	tilePipe     = 'H' // pipe body, solid; entry metadata lives in pipes list
	tileBrick    = 'B'
	tileCoinBox  = '?'
	tileMushroom = 'M'
	tileStarBox  = 'S'
	tileCoin     = 'o'
	tileGoomba   = 'g'
	tileKoopa    = 'k'
	tileFlag     = 'F'
	tileSpawn    = 'p'
)

// BlockSpawn places an interactive block at a tile position.
type BlockSpawn struct {
	X, Y int
	Kind BlockKind
}

// CoinSpawn places a free-floating coin at a tile position.
type CoinSpawn struct {
	X, Y int
}

// EnemySpawn places an enemy at a tile position.
type EnemySpawn struct {
	X, Y    int
	Species string // "goomba" or "koopa"
}

// Point is a world-space position in the stage YAML.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// PipeDef links a pipe entry tile to a destination elsewhere in the stage.
// A zero exit offset means an instant teleport; a nonzero offset animates
// the player from dest-offset to dest+offset on arrival.
type PipeDef struct {
	Entry       Point `yaml:"entry"` // tile the player stands on and ducks into
	Dest        Point `yaml:"dest"`
	ExitOffset  Point `yaml:"exit_offset"`
	Underground bool  `yaml:"underground"` // destination is below ground (music switch)
}

// FlagDef places the end-of-level flagpole.
type FlagDef struct {
	X int // pole column; the pole spans from the ground to near the stage top
}

// Stage is a fully parsed level.
type Stage struct {
	ID          string
	World       int
	StageNum    int
	Name        string
	Underground bool // whether the stage starts with underground music

	Width     int
	Height    int
	Solids    [][]bool // indexed [y][x], y grows upward
	PipeTiles [][]bool // solid tiles that are pipe bodies, for presentation

	SpawnX, SpawnY float64
	Blocks         []BlockSpawn
	Coins          []CoinSpawn
	Enemies        []EnemySpawn
	Pipes          []PipeDef
	Flag           *FlagDef
}

// SolidAt reports whether the tile at (x, y) is static level geometry.
func (s *Stage) SolidAt(x, y int) bool {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return false
	}
	return s.Solids[y][x]
}

// yamlStage is the on-disk structure.
type yamlStage struct {
	ID          string    `yaml:"id"`
	World       int       `yaml:"world"`
	Stage       int       `yaml:"stage"`
	Name        string    `yaml:"name"`
	Underground bool      `yaml:"underground"`
	Rows        []string  `yaml:"rows"`
	Pipes       []PipeDef `yaml:"pipes"`
}

// Parse decodes a YAML stage definition.
func Parse(data []byte) (*Stage, error) {
	var ys yamlStage
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return nil, fmt.Errorf("level: yaml unmarshal: %w", err)
	}
	if len(ys.Rows) == 0 {
		return nil, fmt.Errorf("level %s: no rows", ys.ID)
	}

	height := len(ys.Rows)
	width := 0
	for _, row := range ys.Rows {
		if len(row) > width {
			width = len(row)
		}
	}

	st := &Stage{
		ID:          ys.ID,
		World:       ys.World,
		StageNum:    ys.Stage,
		Name:        ys.Name,
		Underground: ys.Underground,
		Width:       width,
		Height:      height,
		Pipes:       ys.Pipes,
	}
	st.Solids = make([][]bool, height)
	st.PipeTiles = make([][]bool, height)
	for y := range st.Solids {
		st.Solids[y] = make([]bool, width)
		st.PipeTiles[y] = make([]bool, width)
	}

	spawnSeen := false
	for r, row := range ys.Rows {
		y := height - 1 - r // rows are authored top-first
		for x, ch := range row {
			switch ch {
			case tileEmpty:
			case tileGround:
				st.Solids[y][x] = true
			case tilePipe:
				st.Solids[y][x] = true
				st.PipeTiles[y][x] = true
			case tileBrick:
				st.Blocks = append(st.Blocks, BlockSpawn{X: x, Y: y, Kind: BlockBrick})
			case tileCoinBox:
				st.Blocks = append(st.Blocks, BlockSpawn{X: x, Y: y, Kind: BlockCoin})
			case tileMushroom:
				st.Blocks = append(st.Blocks, BlockSpawn{X: x, Y: y, Kind: BlockMushroom})
			case tileStarBox:
				st.Blocks = append(st.Blocks, BlockSpawn{X: x, Y: y, Kind: BlockStar})
			case tileCoin:
				st.Coins = append(st.Coins, CoinSpawn{X: x, Y: y})
			case tileGoomba:
				st.Enemies = append(st.Enemies, EnemySpawn{X: x, Y: y, Species: "goomba"})
			case tileKoopa:
				st.Enemies = append(st.Enemies, EnemySpawn{X: x, Y: y, Species: "koopa"})
			case tileFlag:
				st.Flag = &FlagDef{X: x}
			case tileSpawn:
				st.SpawnX = float64(x) + 0.5
				st.SpawnY = float64(y) + 0.5
				spawnSeen = true
			default:
				return nil, fmt.Errorf("level %s: unknown tile %q at row %d col %d", ys.ID, ch, r, x)
			}
		}
	}
	if !spawnSeen {
		return nil, fmt.Errorf("level %s: no player spawn", ys.ID)
	}

	return st, nil
}
