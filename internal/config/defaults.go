package config

import (
	_ "embed"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

//go:embed defaults/balls.yaml
var defaultBallsYAML []byte

//go:embed defaults/shooter.yaml
var defaultShooterYAML []byte

// DefaultEngineConfig returns the default engine configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		FPS:             30,
		AlternateScreen: true,
		HideCursor:      true,
		Backend:         BackendANSI,
		GridCell:        8,
		Log: LogConfig{
			Level: "info",
		},
		Profiler: ProfilerConfig{
			SampleTicks: 10,
		},
	}
}

// DefaultBallsConfig returns the default bouncing-balls configuration.
func DefaultBallsConfig() BallsConfig {
	return BallsConfig{
		Spawn: BallsSpawn{
			EveryTicks: 10,
			MaxBalls:   200,
			X:          5,
			Y:          5,
		},
		Speed: BallsSpeed{
			VX: 3.0,
			VY: 1.0,
		},
		Colors: []string{"bright_yellow", "bright_cyan", "bright_magenta", "bright_green"},
	}
}

// DefaultShooterConfig returns the default space shooter configuration.
func DefaultShooterConfig() ShooterConfig {
	return ShooterConfig{
		Ship: ShooterShip{
			Speed:       1,
			BulletSpeed: 6.0,
			ShotCost:    2.0,
		},
		Asteroids: ShooterAsteroids{
			SpawnMillis: 1000,
			Speed:       0.5,
			MinWidth:    4,
			MaxWidth:    7,
			MaxHeight:   3,
			Glyphs:      " *@#$",
		},
		Power: ShooterPower{
			Max:         20,
			Regen:       1,
			RegenMillis: 500,
			GaugeLength: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				SpawnReduction:  0.6,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a config name.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "engine":
		return defaultEngineYAML
	case "balls":
		return defaultBallsYAML
	case "shooter":
		return defaultShooterYAML
	default:
		return nil
	}
}
