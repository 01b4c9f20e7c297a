package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-plumber/internal/core"
	"github.com/vovakirdan/tui-plumber/internal/games/plumber"
	"github.com/vovakirdan/tui-plumber/internal/platform/tui"
	"github.com/vovakirdan/tui-plumber/internal/registry"
	"github.com/vovakirdan/tui-plumber/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a game mode",
	Long: `Start playing the specified mode.

Controls:
  A/D or Left/Right  - Move
  Space/W/Up         - Jump
  S/Down             - Duck (hold near a pipe to enter it)
  X or Shift+Arrow   - Sprint
  P                  - Pause
  R                  - Restart (after game over)
  Q/Ctrl+C           - Quit

Difficulty options:
  easy   - Extra lives, slower enemies
  normal - Default balance
  hard   - Fewer lives, faster enemies

Examples:
  plumber play plumber
  plumber play plumber_stage
  plumber play plumber --difficulty hard
  plumber play plumber --config ./my-plumber.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if mode exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'plumber list' to see available modes.")
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Set config path and difficulty before creation
	plumber.SetConfigPath(flagConfig)
	plumber.SetDifficultyPreset(flagDifficulty)

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	// Run the game
	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
