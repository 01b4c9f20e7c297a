// plumber is a terminal platformer: run, jump, stomp, and reach the flagpole.
//
// Usage:
//
//	plumber list              - List available game modes
//	plumber play <mode>       - Play a mode directly
//	plumber menu              - Interactive mode picker
//	plumber serve             - Start SSH server for remote play
//	plumber scores <mode>     - Show high scores for a mode
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.plumber/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import game modes to register them
	_ "github.com/vovakirdan/tui-plumber/internal/games/plumber"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "plumber",
	Short: "Plumber Bros - A terminal platformer",
	Long: `Plumber Bros is a side-scrolling platformer played in your terminal.
Run through stages, stomp enemies, collect coins, grab power-ups, and
slide down the flagpole before your lives run out.

Available commands:
  list     - Show all available game modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  plumber list
  plumber play plumber
  plumber menu
  plumber serve --ssh :2222
  plumber scores plumber`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.plumber/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
