// tetris is a command line front end for the tetris core: it inspects kick
// tables, replays rotation fixtures, runs scripted games and browses the
// rotation trace journal.
//
// Usage:
//
//	tetris kicks [piece...]       - Print wall-kick tables
//	tetris rotate <fixture...>    - Replay rotation fixtures
//	tetris demo                   - Play a scripted game with effects
//	tetris traces                 - Show recorded rotations
//	tetris config                 - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Config file (default: search order, see config)
//	--db <path>         - Trace database (default: ~/.tetris/traces.db)
//	--log-level <level> - debug, info, warn or error
//	--seed <value>      - RNG seed for reproducible games
//
// TETRIS_CONFIG, TETRIS_DB and TETRIS_LOG_LEVEL set the flag defaults and may
// also come from a .env file in the working directory.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-core/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagSeed     int64

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetris",
	})
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris core - SRS rotation engine and effect orchestrator",
	Long: `Tetris core tools for the SRS rotation engine, the move validator and
the animation orchestrator.

Available commands:
  kicks    - Show wall-kick tables per piece
  rotate   - Replay rotation fixtures and check their expectations
  demo     - Play a scripted game and run its effects
  traces   - View recorded rotations
  config   - Print the effective configuration

Examples:
  tetris kicks I T
  tetris rotate internal/fixture/testdata
  tetris demo --pieces 40 --seed 7
  tetris traces --limit 10 --stats`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logger.SetLevel(level)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// A missing .env is normal outside development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("cannot load .env", "err", err)
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", os.Getenv("TETRIS_CONFIG"), "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", envOr("TETRIS_DB", "~/.tetris/traces.db"), "Path to trace database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", envOr("TETRIS_LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = config seed or time)")

	// Add subcommands
	rootCmd.AddCommand(kicksCmd)
	rootCmd.AddCommand(rotateCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(tracesCmd)
	rootCmd.AddCommand(configCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadConfig loads the config selected by --config and applies --seed.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	return cfg, nil
}
