package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-arcade/internal/platform/tui"
	"github.com/vovakirdan/tile-arcade/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a mode picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Tab          - Scoreboard
  $            - Shop
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store, w := openStoreOrWarn()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	opts := tui.GameOptions{Store: store, Wallet: w, Logger: logger}

	for {
		menuResult, err := tui.RunMenu(w, cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		switch {
		case menuResult.Quit:
			return nil

		case menuResult.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				logger.Error("scoreboard failed", "err", err)
			}
			if !goBack {
				return nil
			}
			continue

		case menuResult.WantsShop:
			goBack, err := tui.RunShop(w, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				logger.Error("shop failed", "err", err)
			}
			if !goBack {
				return nil
			}
			continue
		}

		if menuResult.GameID == "" {
			return nil
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			logger.Error("could not create game", "game", menuResult.GameID, "err", err)
			continue
		}

		// Fresh board each time unless --seed pins it
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, cfg, opts); err != nil {
			logger.Error("game failed", "game", menuResult.GameID, "err", err)
		}
	}
}
