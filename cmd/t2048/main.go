// t2048 is the 2048 sliding-tile game for the terminal.
//
// Usage:
//
//	t2048 play [mode]        - Play classic or endless (menu when omitted)
//	t2048 modes              - List available modes
//	t2048 results [mode]     - Show best or recent runs
//	t2048 sim                - Play headless runs with a fixed policy
//	t2048 serve              - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>    - Config file (default search: ~/.t2048, ./configs, built-in)
//	--seed <value>     - Set RNG seed for reproducible spawns
//	--db <path>        - Set results database path
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"

	// Import modes to register them
	_ "github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagFPS      int

	// Resolved in PersistentPreRunE
	appConfig config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 in your terminal",
	Long: `t2048 is the 2048 sliding-tile puzzle for the terminal.

Slide the board to merge equal tiles. Classic mode ends at 2048,
endless mode keeps going until no move is left.

Available commands:
  play     - Play a mode directly, or pick one from the menu
  modes    - Show all available modes
  results  - Show recorded runs
  sim      - Simulate runs without a terminal
  serve    - Start SSH server for remote play

Examples:
  t2048 play
  t2048 play endless --seed 42
  t2048 results classic --recent
  t2048 sim --runs 5 --policy random
  t2048 serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to results database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (overrides config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig reads the config file and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command, _ []string) error {
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
	if flags.Changed("fps") {
		cfg.Game.TickRate = flagFPS
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	appConfig = cfg
	return nil
}

// newLogger builds a logger at the configured level writing to w.
func newLogger(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           appConfig.LogLevel(),
	})
}
