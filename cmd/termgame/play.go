package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/termgame/internal/config"
	"github.com/vovakirdan/termgame/internal/core"
	"github.com/vovakirdan/termgame/internal/engine"
	"github.com/vovakirdan/termgame/internal/platform/ansi"
	"github.com/vovakirdan/termgame/internal/platform/tcellterm"
	"github.com/vovakirdan/termgame/internal/platform/tui"
	"github.com/vovakirdan/termgame/internal/registry"
	"github.com/vovakirdan/termgame/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagBackend    string
)

var playCmd = &cobra.Command{
	Use:   "play <demo>",
	Short: "Play a demo",
	Long: `Start playing the specified demo.

Controls:
  Arrows     - Move
  Space      - Fire (shooter)
  R          - Restart after game over (tea backend)
  Q/Esc      - Quit

Backends:
  ansi   - Raw escape sequences written straight to the terminal
  tcell  - tcell screen with resize support
  tea    - Bubble Tea program (default)

Difficulty options (shooter):
  easy, normal, hard, fixed

Examples:
  termgame play balls
  termgame play shooter --difficulty hard
  termgame play balls --backend ansi --fps 60
  termgame play shooter --config ./my-shooter.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom demo config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagBackend, "backend", "", "Terminal backend: ansi, tcell, tea (default: engine config)")
}

func runPlay(cmd *cobra.Command, args []string) {
	demoID := args[0]

	// Check if demo exists
	if !registry.Exists(demoID) {
		fmt.Fprintf(os.Stderr, "Error: unknown demo %q\n", demoID)
		fmt.Fprintln(os.Stderr, "Run 'termgame list' to see available demos.")
		os.Exit(1)
	}

	ecfg, err := loadEngineConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading engine config: %v\n", err)
		os.Exit(1)
	}
	if flagBackend != "" {
		ecfg.Backend = config.Backend(flagBackend)
		if err := ecfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	// The demo owns the terminal, so logs only go to a file
	logger, closeLog, err := newLogger(ecfg.Log, io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg := runtimeConfig(ecfg)
	if err := configureDemos(demoID, flagConfig, flagDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	demo, err := registry.Create(demoID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating demo: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - demo still works
		store = nil
	}

	var state core.GameState
	switch ecfg.Backend {
	case config.BackendANSI:
		state, err = playANSI(demo, cfg, ecfg, logger)
	case config.BackendTcell:
		state, err = playTcell(demo, cfg, ecfg, logger)
	default:
		state, err = tui.Run(demo, store, cfg, logger, engineOptions(ecfg, logger)...)
	}

	// The tea backend saves its own scores
	if err == nil && store != nil && ecfg.Backend != config.BackendTea && state.Score > 0 {
		if _, saveErr := store.SaveScore(demoID, state.Score); saveErr != nil {
			logger.Warn("failed to save score", "demo", demoID, "err", saveErr)
		}
	}

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running demo: %v\n", err)
		os.Exit(1)
	}
	if ecfg.Backend != config.BackendTea {
		fmt.Printf("%s: score %d\n", demo.Title(), state.Score)
	}
}

// playANSI runs demo on raw escape sequences until a quit key, game over or
// an interrupt.
func playANSI(demo registry.Demo, cfg core.RuntimeConfig, ecfg config.EngineConfig, logger *log.Logger) (core.GameState, error) {
	t, err := ansi.Open(os.Stdin, os.Stdout, ansi.Options{
		AlternateScreen: ecfg.AlternateScreen,
		HideCursor:      ecfg.HideCursor,
	})
	if err != nil {
		return core.GameState{}, err
	}
	defer t.Restore()

	w := ansi.NewWriter(os.Stdout, 0, 0)
	q := &quitSource{src: ansi.NewSource(os.Stdin)}
	return runEngine(demo, cfg, ecfg, logger, w, q)
}

// playTcell runs demo on a tcell screen. Resizes reach the game between
// ticks through the source.
func playTcell(demo registry.Demo, cfg core.RuntimeConfig, ecfg config.EngineConfig, logger *log.Logger) (core.GameState, error) {
	screen, err := tcellterm.Open()
	if err != nil {
		return core.GameState{}, err
	}
	defer screen.Fini()

	w := tcellterm.NewWriter(screen)
	cfg.ScreenW, cfg.ScreenH = w.Size()

	q := &quitSource{}
	q.src = tcellterm.NewSource(screen, tcellterm.OnResize(func(width, height int) {
		if err := q.game.Resize(width, height); err != nil {
			logger.Warn("resize failed", "width", width, "height", height, "err", err)
		}
	}))
	return runEngine(demo, cfg, ecfg, logger, w, q)
}

// runEngine sets demo up on a game drawing to w and runs it.
func runEngine(demo registry.Demo, cfg core.RuntimeConfig, ecfg config.EngineConfig, logger *log.Logger, w engine.Writer, q *quitSource) (core.GameState, error) {
	opts := append(engineOptions(ecfg, logger),
		engine.WithFPS(cfg.TickRate),
		engine.WithSize(cfg.ScreenW, cfg.ScreenH),
		engine.WithSource(q),
	)
	g := engine.NewGame(w, opts...)
	q.game = g
	q.gameOver = func() bool { return demo.State().GameOver }

	if err := demo.Setup(g, cfg); err != nil {
		return core.GameState{}, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := g.Run(ctx); err != nil {
		return demo.State(), err
	}
	return demo.State(), nil
}
