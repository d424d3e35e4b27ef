package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-arcade/internal/platform/tui"
	"github.com/vovakirdan/tile-arcade/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game mode",
	Long: `Start playing the specified mode.

Modes:
  match3        - Weekly: 5 minutes on the clock
  match3_daily  - Daily: 60 seconds on the clock

Both start with 30 moves plus any extra moves and time bought in the shop.

Controls:
  Arrows/hjkl  - Move the cursor
  Enter/Space  - Select a tile, select a second tile to swap
  Mouse click  - Select the clicked tile
  P            - Pause
  R            - Restart (after game over)
  Esc          - Back (when paused or over)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - 40 moves, 5 tile types
  normal - 30 moves, 6 tile types
  hard   - 20 moves, 7 tile types
  fixed  - Keep the values from the config file

Examples:
  arcade play match3
  arcade play match3_daily --difficulty hard
  arcade play match3 --config ./my-match3.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, w := openStoreOrWarn()
	if store != nil {
		defer store.Close()
	}

	opts := tui.GameOptions{Store: store, Wallet: w, Logger: logger}
	if err := tui.Run(game, runtimeConfig(), opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
