package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-plumber/internal/registry"
	"github.com/vovakirdan/tui-plumber/internal/storage"
)

var flagRuns bool

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show high scores for a mode",
	Long: `Display the top 10 high scores for the specified mode.

With --runs, also shows recent play-throughs and the furthest stage reached.

Examples:
  plumber scores plumber
  plumber scores plumber_stage --runs`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRuns, "runs", false, "Also show recent runs and furthest stage")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if mode exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'plumber list' to see available modes.")
		os.Exit(1)
	}

	// Get mode title
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Get top scores
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	// Display scores
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'plumber play %s' to set the first high score!\n", gameID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	// Print scores
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	// Show high score
	fmt.Println()
	highScore, err := store.HighScore(gameID)
	if err == nil {
		fmt.Printf("Best: %d\n", highScore)
	}

	if !flagRuns {
		return
	}

	// Furthest stage reached
	if furthest, err := store.FurthestRun(gameID); err == nil && furthest != nil {
		fmt.Printf("Furthest: World %d-%d (score %d)\n", furthest.World, furthest.Stage, furthest.Score)
	}

	// Recent runs
	runs, err := store.RecentRuns(gameID, 5)
	if err != nil || len(runs) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Recent runs:")
	fmt.Printf("  %-10s  %-7s  %-6s  %s\n", "Score", "World", "Coins", "Date")
	for _, r := range runs {
		fmt.Printf("  %-10d  %d-%-5d  %-6d  %s\n",
			r.Score, r.World, r.Stage, r.Coins, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
