// trio runs three-player arena matches from the terminal.
//
// Usage:
//
//	trio list                    - List available variants
//	trio play [variant]          - Play one match with narration
//	trio simulate [variant]      - Run many matches in parallel and summarize
//	trio history [match-id]      - Show recent matches or one match in detail
//	trio leaderboard             - Rank players across stored matches
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible matches (0 = time based)
//	--db <path>          - Set database path (default: ~/.trio/trio.db)
//	--config <path>      - Use a specific config file
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/trio/internal/config"
	"github.com/vovakirdan/trio/internal/eventlog"
	// Import variants to register them
	_ "github.com/vovakirdan/trio/internal/games/trio"
	"github.com/vovakirdan/trio/internal/storage"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string

	// Set by the root pre-run
	appCfg config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "trio",
	Short: "Trio - a three-player turn-based arena",
	Long: `Trio pits three players against each other. Every turn each player
attacks, defends or uses a special ability; the first to reach the
winning score wins, otherwise the match ends at the turn limit.

Available commands:
  list         - Show all variants
  play         - Play one match
  simulate     - Run many matches and summarize the results
  history      - Show stored matches
  leaderboard  - Rank players by wins

Examples:
  trio list
  trio play
  trio play cards --names Ann,Bob,Cid --seed 42
  trio simulate --matches 500
  trio leaderboard`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to match database (default from config: ~/.trio/trio.db)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(leaderboardCmd)
}

// setup loads .env and the config, then applies global flags on top.
func setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Game.Seed = flagSeed
	}
	if flags.Changed("db") {
		cfg.Storage.DBPath = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	appCfg = cfg
	logger = eventlog.NewLogger(os.Stderr, "trio", cfg.Log.Level)
	return nil
}

// resolveSeed turns the configured seed into the one a match uses.
func resolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

// openStore opens the configured database.
func openStore() (*storage.Store, error) {
	store, err := storage.Open(appCfg.Storage.DBPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("opened match database", "path", appCfg.Storage.DBPath)
	return store, nil
}
