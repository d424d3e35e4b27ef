package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-arcade/internal/games/match3"
	"github.com/vovakirdan/tile-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all game modes",
	Long:  `Shows every game mode with its board, moves and clock.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

// modeOf maps a registry ID back to its match-3 mode.
func modeOf(id string) (match3.Mode, bool) {
	for _, m := range []match3.Mode{match3.ModeWeekly, match3.ModeDaily} {
		if m.GameID() == id {
			return m, true
		}
	}
	return "", false
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No game modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Rules")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", strings.Repeat("-", 5))

	for _, g := range games {
		rules := ""
		if mode, ok := modeOf(g.ID); ok {
			sc := mode.SessionConfig(gameConfig, gameConfig.Board.TallRows)
			rules = fmt.Sprintf("%d moves, %s, %d tile types", sc.MovesLimit, sc.Duration.Round(time.Second), sc.TypeCount)
		}
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, g.ID, maxTitleLen, g.Title, rules)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play.")
}
