// Package config provides YAML-based configuration loading for the engine
// and the bundled demos, plus difficulty management for demos that scale
// with score or time.
package config

import "fmt"

// Backend names a terminal backend.
type Backend string

const (
	BackendANSI  Backend = "ansi"  // raw escape sequences on stdout
	BackendTcell Backend = "tcell" // tcell screen
	BackendTea   Backend = "tea"   // Bubble Tea program
)

// EngineConfig contains the engine and terminal settings.
type EngineConfig struct {
	FPS             int            `yaml:"fps"`
	AlternateScreen bool           `yaml:"alternate_screen"`
	HideCursor      bool           `yaml:"hide_cursor"`
	Backend         Backend        `yaml:"backend"`
	GridCell        int            `yaml:"grid_cell"` // spatial bucket size in cells
	Log             LogConfig      `yaml:"log"`
	Profiler        ProfilerConfig `yaml:"profiler"`
}

// LogConfig selects the log level and destination.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error
	File  string `yaml:"file"`  // empty discards logs while playing
}

// ProfilerConfig tunes the frame-rate profiler.
type ProfilerConfig struct {
	SampleTicks   int     `yaml:"sample_ticks"`
	MinAverageFPS float64 `yaml:"min_average_fps"` // 0 disables the check
}

// Validate reports the first invalid setting.
func (c EngineConfig) Validate() error {
	if c.FPS < 0 {
		return fmt.Errorf("config: fps must not be negative, got %d", c.FPS)
	}
	switch c.Backend {
	case BackendANSI, BackendTcell, BackendTea:
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	if c.GridCell < 0 {
		return fmt.Errorf("config: grid_cell must not be negative, got %d", c.GridCell)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	return nil
}

// BallsConfig contains the configuration of the bouncing-balls stress demo.
type BallsConfig struct {
	Spawn  BallsSpawn `yaml:"spawn"`
	Speed  BallsSpeed `yaml:"speed"`
	Colors []string   `yaml:"colors"` // cycled through as balls spawn
}

// BallsSpawn controls how balls enter the scene.
type BallsSpawn struct {
	EveryTicks int `yaml:"every_ticks"`
	MaxBalls   int `yaml:"max_balls"`
	X          int `yaml:"x"`
	Y          int `yaml:"y"`
}

// BallsSpeed bounds the random initial velocity, in cells per tick.
type BallsSpeed struct {
	VX float64 `yaml:"vx"`
	VY float64 `yaml:"vy"`
}

// ShooterConfig contains the configuration of the space shooter demo.
type ShooterConfig struct {
	Ship       ShooterShip      `yaml:"ship"`
	Asteroids  ShooterAsteroids `yaml:"asteroids"`
	Power      ShooterPower     `yaml:"power"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ShooterShip defines the player's ship and its bullets.
type ShooterShip struct {
	Speed       int     `yaml:"speed"`        // cells per key press
	BulletSpeed float64 `yaml:"bullet_speed"` // cells per tick
	ShotCost    float64 `yaml:"shot_cost"`    // power used per bullet
}

// ShooterAsteroids defines asteroid spawning and motion.
type ShooterAsteroids struct {
	SpawnMillis int     `yaml:"spawn_millis"`
	Speed       float64 `yaml:"speed"` // cells per tick, leftwards
	MinWidth    int     `yaml:"min_width"`
	MaxWidth    int     `yaml:"max_width"`
	MaxHeight   int     `yaml:"max_height"`
	Glyphs      string  `yaml:"glyphs"`
}

// ShooterPower defines the weapon power gauge.
type ShooterPower struct {
	Max         float64 `yaml:"max"`
	Regen       float64 `yaml:"regen"` // power regained per refill
	RegenMillis int     `yaml:"regen_millis"`
	GaugeLength int     `yaml:"gauge_length"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // ProgressScore, ProgressTime or ProgressNone
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
	SpawnReduction  float64 `yaml:"spawn_reduction"`  // Fraction cut from spawn intervals at max difficulty
}
