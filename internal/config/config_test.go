package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	eng, err := LoadEngine("")
	if err != nil {
		t.Fatalf("LoadEngine() failed: %v", err)
	}
	if eng != DefaultEngineConfig() {
		t.Errorf("LoadEngine() = %+v, expected %+v", eng, DefaultEngineConfig())
	}

	balls, err := LoadBalls("")
	if err != nil {
		t.Fatalf("LoadBalls() failed: %v", err)
	}
	if !reflect.DeepEqual(balls, DefaultBallsConfig()) {
		t.Errorf("LoadBalls() = %+v, expected %+v", balls, DefaultBallsConfig())
	}

	shooter, err := LoadShooter("")
	if err != nil {
		t.Fatalf("LoadShooter() failed: %v", err)
	}
	if shooter != DefaultShooterConfig() {
		t.Errorf("LoadShooter() = %+v, expected %+v", shooter, DefaultShooterConfig())
	}
}

func TestCustomPathOverridesSomeKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	if err := os.WriteFile(path, []byte("fps: 60\nbackend: tcell\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadEngine(path)
	if err != nil {
		t.Fatalf("LoadEngine() failed: %v", err)
	}
	if cfg.FPS != 60 {
		t.Errorf("FPS = %d, expected 60", cfg.FPS)
	}
	if cfg.Backend != BackendTcell {
		t.Errorf("Backend = %q, expected %q", cfg.Backend, BackendTcell)
	}
	if cfg.GridCell != 8 {
		t.Errorf("GridCell = %d, expected default 8", cfg.GridCell)
	}
}

func TestCustomPathErrors(t *testing.T) {
	if _, err := LoadEngine(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadEngine() with a missing file should fail")
	}

	path := filepath.Join(t.TempDir(), "engine.yaml")
	if err := os.WriteFile(path, []byte("backend: vga\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadEngine(path); err == nil {
		t.Error("LoadEngine() with an unknown backend should fail")
	}
}

func TestUserConfigDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".termgame", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "balls.yaml"), []byte("spawn:\n  max_balls: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBalls("")
	if err != nil {
		t.Fatalf("LoadBalls() failed: %v", err)
	}
	if cfg.Spawn.MaxBalls != 7 {
		t.Errorf("MaxBalls = %d, expected 7", cfg.Spawn.MaxBalls)
	}
	if cfg.Spawn.EveryTicks != 10 {
		t.Errorf("EveryTicks = %d, expected default 10", cfg.Spawn.EveryTicks)
	}
}

func TestSource(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got, err := Source("balls", ""); err != nil || got != SourceEmbedded {
		t.Errorf("Source() = %q, %v; expected %q", got, err, SourceEmbedded)
	}

	dir := filepath.Join(home, ".termgame", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	user := filepath.Join(dir, "balls.yaml")
	if err := os.WriteFile(user, []byte("spawn:\n  max_balls: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got, err := Source("balls", ""); err != nil || got != user {
		t.Errorf("Source() = %q, %v; expected %q", got, err, user)
	}

	missing := filepath.Join(home, "missing.yaml")
	if _, err := Source("balls", missing); err == nil {
		t.Error("Source() with a missing explicit path should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*EngineConfig)
		ok     bool
	}{
		{"defaults", func(*EngineConfig) {}, true},
		{"negative fps", func(c *EngineConfig) { c.FPS = -1 }, false},
		{"unpaced", func(c *EngineConfig) { c.FPS = 0 }, true},
		{"bad backend", func(c *EngineConfig) { c.Backend = "x11" }, false},
		{"bad level", func(c *EngineConfig) { c.Log.Level = "loud" }, false},
		{"negative grid", func(c *EngineConfig) { c.GridCell = -8 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultEngineConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, expected ok=%v", err, tt.ok)
			}
		})
	}
}

func TestDifficultyLevel(t *testing.T) {
	cfg := DefaultShooterConfig().Difficulty
	d := NewDifficulty(cfg)

	if got := d.Level(0, 0); got != 0 {
		t.Errorf("Level(0) = %v, expected 0", got)
	}
	if got := d.Level(25, 0); got != 0.5 {
		t.Errorf("Level(25) = %v, expected 0.5", got)
	}
	if got := d.Level(500, 0); got != 1 {
		t.Errorf("Level(500) = %v, expected 1", got)
	}

	cfg.Progression.Type = ProgressTime
	d = NewDifficulty(cfg)
	if got := d.Level(500, 25); got != 0.5 {
		t.Errorf("Level(tick 25) = %v, expected 0.5", got)
	}

	cfg.Enabled = false
	cfg.InitialLevel = 0.3
	d = NewDifficulty(cfg)
	if d.Progressing() {
		t.Error("Progressing() = true with progression disabled")
	}
	if got := d.Level(500, 0); got != 0.3 {
		t.Errorf("Level() with progression disabled = %v, expected 0.3", got)
	}
}

func TestDifficultyScaling(t *testing.T) {
	d := NewDifficulty(DefaultShooterConfig().Difficulty)

	if got := d.Speed(0.5, 50, 0); got != 1.0 {
		t.Errorf("Speed() at max level = %v, expected 1.0", got)
	}
	if got := d.SpawnInterval(time.Second, 0, 0); got != time.Second {
		t.Errorf("SpawnInterval() at level 0 = %v, expected 1s", got)
	}
	if got := d.SpawnInterval(time.Second, 50, 0); got != 400*time.Millisecond {
		t.Errorf("SpawnInterval() at max level = %v, expected 400ms", got)
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultShooterConfig().Difficulty

	ApplyPreset(&cfg, DifficultyHard)
	if !cfg.Enabled || cfg.InitialLevel != 0.7 {
		t.Errorf("hard preset = %+v, expected enabled at 0.7", cfg)
	}

	ApplyPreset(&cfg, "")
	if !cfg.Enabled || cfg.InitialLevel != 0.7 {
		t.Errorf("empty preset changed the config to %+v", cfg)
	}

	ApplyPreset(&cfg, DifficultyFixed)
	if cfg.Enabled {
		t.Error("fixed preset should disable progression")
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		name    string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", "", false},
		{"easy", DifficultyEasy, false},
		{" Hard ", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"insane", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePreset(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePreset(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, expected %q", tt.name, got, tt.want)
		}
	}
}
