package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/termgame/internal/config"
	"github.com/vovakirdan/termgame/internal/core"
	"github.com/vovakirdan/termgame/internal/platform/tui"
	"github.com/vovakirdan/termgame/internal/registry"
	"github.com/vovakirdan/termgame/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start termgame with a demo picker menu",
	Long: `Start termgame in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a demo.
After a demo ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select demo
  Tab          - Scoreboard
  Q            - Quit

Examples:
  termgame menu
  termgame menu --fps 60
  termgame menu --db ./scores.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom demo config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runMenu(_ *cobra.Command, _ []string) {
	ecfg, err := loadEngineConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading engine config: %v\n", err)
		os.Exit(1)
	}
	logger, closeLog, err := newLogger(ecfg.Log, io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: scores disabled: %v\n", err)
		store = nil
	} else {
		defer store.Close()
	}

	cfg := runtimeConfig(ecfg)
	for {
		res, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = res.Config

		switch {
		case res.Quit:
			return
		case res.WantsScoreboard:
			back, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if !back {
				return
			}
		default:
			if err := playFromMenu(res.DemoID, store, cfg, ecfg, logger); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return
			}
		}
	}
}

// playFromMenu runs one game of demoID with a fresh seed. Only a bad demo
// config is fatal; a demo that fails to start drops back to the menu.
func playFromMenu(demoID string, store *storage.Store, cfg core.RuntimeConfig, ecfg config.EngineConfig, logger *log.Logger) error {
	if err := configureDemos(demoID, flagConfig, flagDifficulty); err != nil {
		return err
	}
	demo, err := registry.Create(demoID)
	if err != nil {
		logger.Warn("cannot create demo", "demo", demoID, "err", err)
		return nil
	}
	cfg.Seed = time.Now().UnixNano()
	state, err := tui.Run(demo, store, cfg, logger, engineOptions(ecfg, logger)...)
	if err != nil {
		logger.Warn("demo ended with error", "demo", demoID, "err", err)
		return nil
	}
	logger.Info("demo finished", "demo", demoID, "score", state.Score)
	return nil
}
