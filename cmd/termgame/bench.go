package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/termgame/internal/core"
	"github.com/vovakirdan/termgame/internal/engine"
	"github.com/vovakirdan/termgame/internal/registry"
	"github.com/vovakirdan/termgame/internal/storage"
)

var (
	flagBenchTicks  int
	flagBenchWidth  int
	flagBenchHeight int
	flagBenchNoSave bool
)

var benchCmd = &cobra.Command{
	Use:   "bench <demo>",
	Short: "Run a demo headless and record its frame rate",
	Long: `Run the specified demo without a terminal, as fast as the engine can
tick, and report the profiler reading. The run is stored alongside the
demo's scores unless --no-save is given.

When the engine config sets profiler.min_average_fps, the command fails if
the average frame rate falls below it.

Examples:
  termgame bench balls
  termgame bench shooter --ticks 2000 --width 120 --height 40
  termgame bench balls --seed 42 --no-save`,
	Args: cobra.ExactArgs(1),
	Run:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagBenchTicks, "ticks", 600, "Number of ticks to run")
	benchCmd.Flags().IntVar(&flagBenchWidth, "width", 80, "Screen width")
	benchCmd.Flags().IntVar(&flagBenchHeight, "height", 24, "Screen height")
	benchCmd.Flags().BoolVar(&flagBenchNoSave, "no-save", false, "Do not store the run")
	benchCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom demo config YAML")
	benchCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runBench(_ *cobra.Command, args []string) {
	demoID := args[0]

	if !registry.Exists(demoID) {
		fmt.Fprintf(os.Stderr, "Error: unknown demo %q\n", demoID)
		fmt.Fprintln(os.Stderr, "Run 'termgame list' to see available demos.")
		os.Exit(1)
	}
	if flagBenchTicks < 1 {
		fmt.Fprintln(os.Stderr, "Error: --ticks must be at least 1")
		os.Exit(1)
	}

	ecfg, err := loadEngineConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading engine config: %v\n", err)
		os.Exit(1)
	}
	logger, closeLog, err := newLogger(ecfg.Log, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := configureDemos(demoID, flagConfig, flagDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	demo, err := registry.Create(demoID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating demo: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := core.RuntimeConfig{
		ScreenW:  flagBenchWidth,
		ScreenH:  flagBenchHeight,
		TickRate: engine.DefaultFPS,
		Seed:     seed,
	}

	run, prof, err := bench(demo, cfg, flagBenchTicks, ecfg.Profiler.SampleTicks, engineOptions(ecfg, logger)...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running bench: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Bench - %s\n", demo.Title())
	fmt.Println()
	fmt.Printf("  Ticks:       %d\n", run.Ticks)
	fmt.Printf("  Elapsed:     %s\n", run.Elapsed.Round(time.Millisecond))
	fmt.Printf("  Average FPS: %.1f\n", run.AverageFPS)
	fmt.Printf("  Live FPS:    %.1f\n", run.LiveFPS)
	fmt.Printf("  Sprites:     %d\n", run.Sprites)
	fmt.Printf("  Writes:      %d\n", run.Writes)
	logger.Info("bench finished", "demo", demoID, "ticks", run.Ticks,
		"average_fps", run.AverageFPS, "sprites", run.Sprites)

	if !flagBenchNoSave {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open scores database", "err", err)
		} else {
			if _, err := store.SaveBenchRun(run); err != nil {
				logger.Warn("failed to save bench run", "err", err)
			}
			store.Close()
		}
	}

	if minFPS := ecfg.Profiler.MinAverageFPS; minFPS > 0 {
		if err := prof.MinAverageFPS(minFPS); err != nil {
			var perr *engine.ProfileError
			if errors.As(err, &perr) {
				logger.Error("frame rate below minimum", "min", minFPS, "average_fps", perr.Stats.AverageFPS)
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// bench sets demo up on a headless game and ticks it as fast as possible.
func bench(demo registry.Demo, cfg core.RuntimeConfig, ticks, sampleTicks int, opts ...engine.Option) (storage.BenchRun, *engine.Profiler, error) {
	prof := engine.NewProfiler(sampleTicks)
	w := &engine.CountingWriter{}
	opts = append(opts,
		engine.WithFPS(0),
		engine.WithSize(cfg.ScreenW, cfg.ScreenH),
		engine.WithProfiler(prof),
	)
	g := engine.NewGame(w, opts...)
	if err := demo.Setup(g, cfg); err != nil {
		return storage.BenchRun{}, nil, err
	}

	start := time.Now()
	for i := 0; i < ticks; i++ {
		if _, err := g.Tick(); err != nil {
			return storage.BenchRun{}, nil, err
		}
	}
	elapsed := time.Since(start)

	stats := prof.Stats()
	return storage.BenchRun{
		DemoID:     demo.ID(),
		Ticks:      ticks,
		AverageFPS: stats.AverageFPS,
		LiveFPS:    stats.LiveFPS,
		Sprites:    stats.Sprites,
		Writes:     stats.Writes,
		Elapsed:    elapsed,
	}, prof, nil
}
