// Package balls implements the bouncing-balls stress demo. A ball enters the
// scene at a fixed point every few ticks with a random diagonal velocity and
// bounces off the screen edges and every other ball.
package balls

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/termgame/internal/config"
	"github.com/vovakirdan/termgame/internal/core"
	"github.com/vovakirdan/termgame/internal/engine"
	"github.com/vovakirdan/termgame/internal/registry"
	"github.com/vovakirdan/termgame/internal/sprites"
)

// ID is the registry id of the demo.
const ID = "balls"

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Demo is the bouncing-balls stress test.
type Demo struct {
	fixed *config.BallsConfig // set by NewWithConfig; nil loads from disk
	cfg   config.BallsConfig
	rng   *rand.Rand
	log   *log.Logger

	scene *engine.Scene
	balls *engine.Group
	edges engine.Edges
	count *sprites.Counter

	bounces int
	spawned int
}

// New creates a demo that loads its configuration at Setup.
func New() *Demo {
	return &Demo{}
}

// NewWithConfig creates a demo with a fixed configuration.
func NewWithConfig(cfg config.BallsConfig) *Demo {
	return &Demo{fixed: &cfg}
}

// ID returns the unique identifier for this demo.
func (d *Demo) ID() string { return ID }

// Title returns the display name for this demo.
func (d *Demo) Title() string { return "Bouncing Balls" }

// Setup builds the scene, the HUD and the spawn interval.
func (d *Demo) Setup(g *engine.Game, rc core.RuntimeConfig) error {
	if d.fixed != nil {
		d.cfg = *d.fixed
	} else {
		cfg, err := config.LoadBalls(configPath)
		if err != nil {
			return fmt.Errorf("balls: %w", err)
		}
		d.cfg = cfg
	}

	d.rng = rand.New(rand.NewSource(rc.Seed))
	d.log = g.Logger()
	d.scene = g.NewScene(ID, engine.WithViewport(rc.ScreenW, rc.ScreenH))
	d.balls = engine.NewGroup("balls")
	d.bounces = 0
	d.spawned = 0
	g.SetScene(d.scene)

	d.count = sprites.NewLabeledCounter("balls: ", 0)
	if err := d.scene.Place(d.count.Sprite, 0, rc.ScreenH-1, engine.WithZ(10)); err != nil {
		return fmt.Errorf("balls: %w", err)
	}
	if p := g.Profiler(); p != nil {
		if err := d.scene.Place(sprites.NewStatsDisplay(p).Sprite, 0, 0, engine.WithZ(10)); err != nil {
			return fmt.Errorf("balls: %w", err)
		}
	}

	d.track()
	g.Every(1, 0, d.track)
	every := d.cfg.Spawn.EveryTicks
	if every < 1 {
		every = 1
	}
	g.Every(uint64(every), d.cfg.Spawn.MaxBalls, d.spawn)
	return nil
}

// State reports the number of balls as the score.
func (d *Demo) State() core.GameState {
	if d.balls == nil {
		return core.GameState{}
	}
	return core.GameState{Score: d.balls.Len()}
}

// Balls returns the ball group.
func (d *Demo) Balls() *engine.Group { return d.balls }

// Bounces returns how many bounces happened so far.
func (d *Demo) Bounces() int { return d.bounces }

func (d *Demo) obstacles() []engine.Collidable {
	return append(d.edges.All(), d.balls)
}

// track keeps the balls bouncing on the current viewport after a resize or
// a scroll.
func (d *Demo) track() {
	e := d.scene.Edges()
	if e == d.edges {
		return
	}
	d.edges = e
	on := d.obstacles()
	for _, s := range d.balls.Sprites() {
		if b, ok := s.Behavior().(*sprites.BouncingBall); ok {
			b.BounceOn(on...)
		}
	}
}

func (d *Demo) spawn() {
	vx, vy := d.cfg.Speed.VX, d.cfg.Speed.VY
	if d.rng.Intn(2) == 0 {
		vx = -vx
	}
	if d.rng.Intn(2) == 0 {
		vy = -vy
	}

	b := sprites.NewBouncingBall(vx, vy, d.obstacles()...)
	b.Bounced = func([]engine.Collision) { d.bounces++ }
	if err := d.scene.Place(b.Sprite, d.cfg.Spawn.X, d.cfg.Spawn.Y, engine.InGroups(d.balls)); err != nil {
		d.log.Warn("balls: spawn", "err", err)
		return
	}
	if n := len(d.cfg.Colors); n > 0 {
		name := d.cfg.Colors[d.spawned%n]
		if c, ok := core.ParseColor(name); !ok {
			d.log.Warn("balls: unknown color", "color", name)
		} else if err := b.SetStyle(core.Style{Fg: c, Bold: true}); err != nil {
			d.log.Warn("balls: style", "err", err)
		}
	}
	d.spawned++
	if err := d.count.Set(d.balls.Len()); err != nil {
		d.log.Warn("balls: counter", "err", err)
	}
}

// Register the demo with the registry
func init() {
	registry.Register(ID, func() registry.Demo {
		return New()
	})
}
