package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/termgame/internal/config"
	"github.com/vovakirdan/termgame/internal/core"
	"github.com/vovakirdan/termgame/internal/demos/balls"
	"github.com/vovakirdan/termgame/internal/demos/shooter"
	"github.com/vovakirdan/termgame/internal/engine"
)

// loadEngineConfig loads the engine config and applies the --fps override.
func loadEngineConfig() (config.EngineConfig, error) {
	cfg, err := config.LoadEngine(flagEngineConfig)
	if err != nil {
		return cfg, err
	}
	if flagFPS > 0 {
		cfg.FPS = flagFPS
	}
	return cfg, nil
}

// newLogger builds the CLI logger. Logs go to the configured file when there
// is one and to fallback otherwise. The returned func closes the file.
func newLogger(lc config.LogConfig, fallback io.Writer) (*log.Logger, func(), error) {
	out := fallback
	closeFn := func() {}
	if lc.File != "" {
		f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "termgame",
	})
	if lc.Level != "" {
		level, err := log.ParseLevel(lc.Level)
		if err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("cannot parse log level: %w", err)
		}
		logger.SetLevel(level)
	}
	return logger, closeFn, nil
}

// runtimeConfig sizes a demo to the terminal attached to stdout.
func runtimeConfig(ecfg config.EngineConfig) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if ecfg.FPS > 0 {
		cfg.TickRate = ecfg.FPS
	}

	cfg.Seed = flagSeed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg
}

// engineOptions returns the engine options every backend shares.
func engineOptions(ecfg config.EngineConfig, logger *log.Logger) []engine.Option {
	return []engine.Option{
		engine.WithLogger(logger),
		engine.WithSceneDefaults(engine.WithGridCell(ecfg.GridCell)),
	}
}

// configureDemos hands the demo flags to the demo packages before any demo
// is created.
func configureDemos(demoID, configPath, difficulty string) error {
	switch demoID {
	case balls.ID:
		balls.SetConfigPath(configPath)
	case shooter.ID:
		shooter.SetConfigPath(configPath)
		return shooter.SetDifficultyPreset(difficulty)
	}
	return nil
}
