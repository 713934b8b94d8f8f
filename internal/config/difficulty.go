package config

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Progression types.
const (
	ProgressScore = "score" // level follows the score
	ProgressTime  = "time"  // level follows the tick count
	ProgressNone  = "none"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // no progression
)

// presetLevels holds the starting level of each progressing preset.
var presetLevels = map[DifficultyPreset]float64{
	DifficultyEasy:   0.0,
	DifficultyNormal: 0.3,
	DifficultyHard:   0.7,
}

// ParsePreset resolves a preset name. The empty name is valid and means
// "keep the config as is".
func ParsePreset(name string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	if p == "" || p == DifficultyFixed {
		return p, nil
	}
	if _, ok := presetLevels[p]; !ok {
		return "", fmt.Errorf("config: unknown difficulty preset %q", name)
	}
	return p, nil
}

// ApplyPreset rewrites cfg for preset. The empty preset changes nothing.
func ApplyPreset(cfg *DifficultyConfig, preset DifficultyPreset) {
	switch preset {
	case "":
	case DifficultyFixed:
		cfg.Enabled = false
	default:
		cfg.Enabled = true
		cfg.InitialLevel = presetLevels[preset]
	}
}

// Difficulty maps progress in a run to a level in [0, 1] and scales demo
// parameters by it.
type Difficulty struct {
	cfg   DifficultyConfig
	start float64
}

// NewDifficulty creates a difficulty curve from cfg.
func NewDifficulty(cfg DifficultyConfig) Difficulty {
	return Difficulty{cfg: cfg, start: unit(cfg.InitialLevel)}
}

// Progressing reports whether the level moves during a run.
func (d Difficulty) Progressing() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressNone
}

// Level returns the level after reaching score at tick. It rises linearly
// from the initial level to 1 as progress approaches max_at.
func (d Difficulty) Level(score int, tick uint64) float64 {
	if !d.Progressing() {
		return d.start
	}
	var progress float64
	switch d.cfg.Progression.Type {
	case ProgressScore:
		progress = float64(score)
	case ProgressTime:
		progress = float64(tick)
	default:
		return d.start
	}
	progress /= math.Max(float64(d.cfg.Progression.MaxAt), 1)
	return d.start + unit(progress)*(1-d.start)
}

// Speed scales base up by speed_multiplier at full level.
func (d Difficulty) Speed(base float64, score int, tick uint64) float64 {
	return base * (1 + d.Level(score, tick)*d.cfg.Scaling.SpeedMultiplier)
}

// SpawnInterval shortens base as the level rises, never below a tenth of it.
func (d Difficulty) SpawnInterval(base time.Duration, score int, tick uint64) time.Duration {
	cut := math.Min(unit(d.Level(score, tick)*d.cfg.Scaling.SpawnReduction), 0.9)
	return time.Duration(float64(base) * (1 - cut))
}

// unit clamps v to [0, 1].
func unit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
