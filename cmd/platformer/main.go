// platformer is a side-scrolling platformer played in the terminal.
//
// Usage:
//
//	platformer play              - Play the campaign
//	platformer levels            - List available levels
//	platformer validate <file>   - Check level files
//	platformer scores [level]    - Show high scores
//	platformer sim               - Run a level headless and print its state
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--db <path>         - Set database path (default: ~/.platformer/platformer.db)
//	--log-file <path>   - Write logs to a rotating file
//	--log-level <lvl>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
	flagLevels   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "TUI Platformer - Run and jump in your terminal",
	Long: `TUI Platformer is a side-scrolling platform game that runs directly
in your terminal.

Available commands:
  play      - Play the campaign
  levels    - Show all available levels
  validate  - Check level files for errors
  scores    - View high scores
  sim       - Run a level without a terminal UI

Examples:
  platformer play
  platformer play --level level2 --difficulty hard
  platformer play --continue
  platformer levels --levels ./my-levels
  platformer scores level1
  platformer sim --ticks 600`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (simulation steps per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.platformer/platformer.db", "Path to scores and saves database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (rotated)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory of level files (default: built-in campaign)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}
