// Package shooter implements a small space shooter. The ship flies with the
// arrow keys and fires with space; asteroids drift in from the right.
// Destroying an asteroid scores a point, letting one reach the left side
// costs one, and an asteroid hitting the ship ends the game.
package shooter

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/termgame/internal/config"
	"github.com/vovakirdan/termgame/internal/core"
	"github.com/vovakirdan/termgame/internal/engine"
	"github.com/vovakirdan/termgame/internal/registry"
	"github.com/vovakirdan/termgame/internal/sprites"
)

// ID is the registry id of the demo.
const ID = "shooter"

// User event codes posted by the demo's timers.
const (
	EventSpawn = iota + 1
	EventGainPower
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied over the loaded
// config. The empty name keeps the config's own difficulty.
func SetDifficultyPreset(name string) error {
	preset, err := config.ParsePreset(name)
	if err != nil {
		return fmt.Errorf("shooter: %w", err)
	}
	difficultyPreset = preset
	return nil
}

// Demo is the space shooter.
type Demo struct {
	fixed *config.ShooterConfig
	cfg   config.ShooterConfig

	rng        *rand.Rand
	difficulty config.Difficulty
	game       *engine.Game
	scene      *engine.Scene
	field      core.Rect // play area above the HUD row

	ship      *ship
	asteroids *engine.Group
	bullets   *engine.Group
	power     *sprites.Gauge
	score     *sprites.Counter

	gameOver bool
}

// New creates a demo that loads its configuration at Setup.
func New() *Demo {
	return &Demo{}
}

// NewWithConfig creates a demo with a fixed configuration.
func NewWithConfig(cfg config.ShooterConfig) *Demo {
	return &Demo{fixed: &cfg}
}

// ID returns the unique identifier for this demo.
func (d *Demo) ID() string { return ID }

// Title returns the display name for this demo.
func (d *Demo) Title() string { return "Space Shooter" }

// Setup builds the scene, places the ship and the HUD, and starts the
// spawn and power timers.
func (d *Demo) Setup(g *engine.Game, rc core.RuntimeConfig) error {
	if rc.ScreenH < 5 || rc.ScreenW < 10 {
		return fmt.Errorf("shooter: screen %dx%d is too small", rc.ScreenW, rc.ScreenH)
	}
	if d.fixed != nil {
		d.cfg = *d.fixed
	} else {
		cfg, err := config.LoadShooter(configPath)
		if err != nil {
			return fmt.Errorf("shooter: %w", err)
		}
		config.ApplyPreset(&cfg.Difficulty, difficultyPreset)
		d.cfg = cfg
	}

	d.rng = rand.New(rand.NewSource(rc.Seed))
	d.difficulty = config.NewDifficulty(d.cfg.Difficulty)
	d.game = g
	d.scene = g.NewScene(ID, engine.WithViewport(rc.ScreenW, rc.ScreenH))
	d.field = core.NewRect(0, 0, rc.ScreenW, rc.ScreenH-1)
	d.asteroids = engine.NewGroup("asteroids")
	d.bullets = engine.NewGroup("bullets")
	d.gameOver = false
	g.SetScene(d.scene)

	d.ship = newShip(d)
	if err := d.scene.Place(d.ship.Sprite, 0, 0, engine.WithZ(1)); err != nil {
		return fmt.Errorf("shooter: %w", err)
	}

	hud := rc.ScreenH - 1
	d.power = sprites.NewGauge(d.cfg.Power.Max, d.cfg.Power.GaugeLength, d.cfg.Power.Max)
	if err := d.scene.Place(d.power.Sprite, 0, hud, engine.WithZ(2)); err != nil {
		return fmt.Errorf("shooter: %w", err)
	}
	d.score = sprites.NewLabeledCounter("Score: ", 0)
	if err := d.scene.Place(d.score.Sprite, d.cfg.Power.GaugeLength+4, hud, engine.WithZ(2)); err != nil {
		return fmt.Errorf("shooter: %w", err)
	}

	d.armSpawn()
	g.Timer(time.Duration(d.cfg.Power.RegenMillis)*time.Millisecond, 0, func() {
		g.Post(core.UserEvent(EventGainPower))
	})
	return nil
}

// State returns the score and whether the ship was destroyed.
func (d *Demo) State() core.GameState {
	if d.score == nil {
		return core.GameState{}
	}
	return core.GameState{Score: d.score.Get(), GameOver: d.gameOver}
}

// armSpawn schedules the next asteroid, sooner as the score rises.
func (d *Demo) armSpawn() {
	base := time.Duration(d.cfg.Asteroids.SpawnMillis) * time.Millisecond
	every := d.difficulty.SpawnInterval(base, d.score.Get(), d.game.NTick())
	d.game.Timer(every, 1, func() {
		d.game.Post(core.UserEvent(EventSpawn))
		d.armSpawn()
	})
}

// handle applies one event to the demo. It reports whether the event was
// used.
func (d *Demo) handle(e core.Event) bool {
	switch {
	case e.IsKey(core.KeyUp):
		d.ship.steer(0, -d.cfg.Ship.Speed)
	case e.IsKey(core.KeyDown):
		d.ship.steer(0, d.cfg.Ship.Speed)
	case e.IsKey(core.KeyLeft):
		d.ship.steer(-d.cfg.Ship.Speed, 0)
	case e.IsKey(core.KeyRight):
		d.ship.steer(d.cfg.Ship.Speed, 0)
	case e.IsKey(core.KeySpace):
		d.fire()
	case e.IsUser(EventSpawn):
		d.spawnAsteroid()
	case e.IsUser(EventGainPower):
		if v := d.power.Value(); v < d.cfg.Power.Max {
			if err := d.power.SetValue(min(v+d.cfg.Power.Regen, d.cfg.Power.Max)); err != nil {
				d.game.Logger().Warn("shooter: power regen", "err", err)
			}
		}
	default:
		return false
	}
	return true
}

// fire launches a bullet from the ship's nose if there is power left.
func (d *Demo) fire() {
	v := d.power.Value()
	if v <= 0 {
		return
	}
	r, err := d.ship.Rect()
	if err != nil {
		return
	}
	b := newBullet(d, d.cfg.Ship.BulletSpeed)
	if err := d.scene.Place(b.Sprite, r.Right()+1, r.Y+1, engine.InGroups(d.bullets)); err != nil {
		d.game.Logger().Warn("shooter: place bullet", "err", err)
		return
	}
	if err := d.power.SetValue(max(v-d.cfg.Ship.ShotCost, 0)); err != nil {
		d.game.Logger().Warn("shooter: spend power", "err", err)
	}
}

// spawnAsteroid places a random asteroid just past the right side.
func (d *Demo) spawnAsteroid() {
	a, height := d.randomAsteroid()
	top := d.field.Bottom() - height
	y := 0
	if top > 0 {
		y = d.rng.Intn(top + 1)
	}
	if err := d.placeAsteroid(a, d.field.Right(), y); err != nil {
		d.game.Logger().Warn("shooter: spawn asteroid", "y", y, "err", err)
	}
}

// randomAsteroid builds an unplaced asteroid and returns it with its height.
func (d *Demo) randomAsteroid() (*asteroid, int) {
	ac := d.cfg.Asteroids
	glyphs := []rune(ac.Glyphs)
	if len(glyphs) == 0 {
		glyphs = []rune{'#'}
	}
	height := 1 + d.rng.Intn(max(ac.MaxHeight, 1))
	lines := make([]string, height)
	for i := range lines {
		width := ac.MinWidth
		if ac.MaxWidth > ac.MinWidth {
			width += d.rng.Intn(ac.MaxWidth - ac.MinWidth + 1)
		}
		row := make([]rune, max(width, 1))
		for j := range row {
			row[j] = glyphs[d.rng.Intn(len(glyphs))]
		}
		lines[i] = string(row)
	}
	speed := d.difficulty.Speed(ac.Speed, d.score.Get(), d.game.NTick())
	return newAsteroid(d, engine.MustSurface(lines...), speed), height
}

func (d *Demo) placeAsteroid(a *asteroid, x, y int) error {
	return d.scene.Place(a.Sprite, x, y, engine.InGroups(d.asteroids))
}

func (d *Demo) addScore(n int) {
	if err := d.score.Increment(n); err != nil {
		d.game.Logger().Warn("shooter: score", "err", err)
	}
}

func (d *Demo) edges() engine.Edges {
	return engine.EdgesOf(d.field.Translate(d.scene.Offset().X, d.scene.Offset().Y))
}

// Register the demo with the registry
func init() {
	registry.Register(ID, func() registry.Demo {
		return New()
	})
}
