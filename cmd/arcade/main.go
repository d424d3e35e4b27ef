// arcade is a terminal match-3 game with a points wallet and store.
//
// Usage:
//
//	arcade list              - List available game modes
//	arcade play <game>       - Play a mode directly
//	arcade menu              - Pick a mode interactively
//	arcade serve             - Start SSH server for remote play
//	arcade api               - Start the HTTP API
//	arcade scores <game>     - Show high scores for a mode
//	arcade wallet            - Show points and purchased bonuses
//	arcade shop              - List, buy and review store items
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible boards
//	--db <path>          - Set database path (default: ~/.arcade/scores.db, or $ARCADE_DB)
//	--config <path>      - Custom match-3 config YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	_ "go.uber.org/automaxprocs"

	"github.com/vovakirdan/tile-arcade/internal/config"
	"github.com/vovakirdan/tile-arcade/internal/games/match3" // registers match3 and match3_daily
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

var (
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
	})

	// gameConfig is the loaded match-3 config, set before any command runs.
	gameConfig = config.DefaultMatch3Config()
)

func main() {
	// A missing .env is fine
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Tile Arcade - Match-3 in your terminal",
	Long: `Tile Arcade is a terminal match-3 game. Swap any two tiles to line up
three or more of a kind, trigger special tiles and chain cascades. Points you
score go into a wallet you can spend on extra moves, extra time or coupons.

Available commands:
  list     - Show all game modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  api      - Start the HTTP API
  scores   - View high scores
  wallet   - Show your points and bonuses
  shop     - Spend points

Examples:
  arcade list
  arcade play match3
  arcade play match3_daily --difficulty easy
  arcade menu
  arcade serve --ssh :2222
  arcade shop buy moves-5`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores and wallet database ($ARCADE_DB)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom match-3 config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(walletCmd)
	rootCmd.AddCommand(shopCmd)
}

// setup applies environment defaults, the log level and the game config.
func setup(cmd *cobra.Command, _ []string) error {
	if !cmd.Flags().Changed("db") {
		if v := os.Getenv("ARCADE_DB"); v != "" {
			flagDBPath = v
		}
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)
	log.SetDefault(logger)

	cfg, err := config.LoadMatch3(flagConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if flagDifficulty != "" {
		preset, ok := config.ParseDifficultyPreset(flagDifficulty)
		if !ok {
			return fmt.Errorf("unknown difficulty %q (easy, normal, hard, fixed)", flagDifficulty)
		}
		if config.IsFixedPreset(preset) {
			logger.Debug("fixed difficulty, using config values as loaded")
		}
		config.ApplyMatch3Preset(&cfg, preset)
	}

	gameConfig = cfg
	match3.SetConfig(cfg)
	return nil
}
