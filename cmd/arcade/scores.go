package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-arcade/internal/registry"
	"github.com/vovakirdan/tile-arcade/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game mode",
	Long: `Display the top 10 high scores and overall stats for the specified mode.

Examples:
  arcade scores match3
  arcade scores match3_daily`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	// Get game title
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	fmt.Println()
	stats, err := store.GetGameStats(gameID)
	if err != nil {
		logger.Warn("could not read stats", "game", gameID, "err", err)
		return nil
	}
	fmt.Printf("Best: %d   Games: %d   Average: %.0f   Total: %d\n",
		stats.HighScore, stats.GamesCount, stats.AvgScore, stats.TotalScore)
	return nil
}
