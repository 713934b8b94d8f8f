// termgame runs terminal demos built on the sprite engine.
//
// Usage:
//
//	termgame list              - List available demos
//	termgame play <demo>       - Play a demo
//	termgame menu              - Start menu to pick demos interactively
//	termgame bench <demo>      - Run a demo headless and record its frame rate
//	termgame scores <demo>     - Show high scores and bench runs for a demo
//	termgame serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: from engine config)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.termgame/scores.db)
//	--engine-config <p>   - Engine config YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import demos to register them
	_ "github.com/vovakirdan/termgame/internal/demos/balls"
	_ "github.com/vovakirdan/termgame/internal/demos/shooter"
)

var (
	// Global flags
	flagFPS          int
	flagSeed         int64
	flagDBPath       string
	flagEngineConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "termgame",
	Short: "termgame - sprite demos in your terminal",
	Long: `termgame runs small programs built on a terminal sprite engine:
scenes of sprites redrawn with minimal writes, with sub-tick collision
detection between ticks.

Available commands:
  list     - Show all available demos
  play     - Play a specific demo directly
  menu     - Interactive demo picker menu
  bench    - Run a demo headless and record its frame rate
  scores   - View high scores and bench runs
  serve    - Start SSH server for remote play

Examples:
  termgame list
  termgame play shooter
  termgame play balls --backend tcell
  termgame bench balls --ticks 600
  termgame serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = engine config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.termgame/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagEngineConfig, "engine-config", "", "Path to engine config YAML")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
