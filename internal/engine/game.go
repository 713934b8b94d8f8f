package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/termgame/internal/core"
)

// DefaultFPS is the tick rate used when none is configured.
const DefaultFPS = core.DefaultTickRate

// Game drives ticks over the active scene. A tick runs, in order: scene
// switch, intervals and timers, input poll, update, collisions, render with a
// single flush, then the kill-queue drain.
//
// Everything except Post and Stop must be called from the goroutine that
// calls Tick or Run.
type Game struct {
	w   Writer
	src Source
	log *log.Logger
	now func() time.Time
	fps int

	scene   *Scene
	pending *Scene
	ntick   uint64

	size  core.Point
	sized bool

	intervals []*interval
	timers    []*timer
	lastSched int

	mu     sync.Mutex
	posted []core.Event

	prof      *Profiler
	sceneOpts []SceneOption
	stopped   atomic.Bool
}

// Option configures a Game.
type Option func(*Game)

// WithFPS sets the tick rate of Run. Zero or less runs unpaced.
func WithFPS(fps int) Option {
	return func(g *Game) { g.fps = fps }
}

// WithSource sets the input source polled once per tick.
func WithSource(src Source) Option {
	return func(g *Game) { g.src = src }
}

// WithLogger sets the game logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.log = l
		}
	}
}

// WithClock replaces time.Now, for deterministic timers in tests.
func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// WithProfiler attaches a profiler fed after every tick.
func WithProfiler(p *Profiler) Option {
	return func(g *Game) { g.prof = p }
}

// WithSceneDefaults sets options applied to every scene made by
// Game.NewScene, before the caller's own.
func WithSceneDefaults(opts ...SceneOption) Option {
	return func(g *Game) { g.sceneOpts = append(g.sceneOpts, opts...) }
}

// WithSize sets the screen size; scenes are clipped to it.
func WithSize(w, h int) Option {
	return func(g *Game) {
		g.size = core.Pt(w, h)
		g.sized = true
	}
}

// NewGame creates a game rendering to w. It has no active scene yet.
func NewGame(w Writer, opts ...Option) *Game {
	g := &Game{
		w:   w,
		log: discardLogger,
		now: time.Now,
		fps: DefaultFPS,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewScene creates a scene that logs to the game logger and carries the
// game's scene defaults. opts are applied last.
func (g *Game) NewScene(name string, opts ...SceneOption) *Scene {
	all := make([]SceneOption, 0, len(g.sceneOpts)+len(opts)+1)
	all = append(all, WithSceneLogger(g.log))
	all = append(all, g.sceneOpts...)
	all = append(all, opts...)
	return NewScene(name, all...)
}

// Scene returns the active scene, or nil. A scene passed to SetScene is
// active from that call on, even before the tick that repaints the screen.
func (g *Game) Scene() *Scene {
	if g.pending != nil {
		return g.pending
	}
	return g.scene
}

// Logger returns the game logger. It discards output unless WithLogger was
// given.
func (g *Game) Logger() *log.Logger { return g.log }

// NTick returns the number of ticks run.
func (g *Game) NTick() uint64 { return g.ntick }

// FPS returns the configured tick rate.
func (g *Game) FPS() int { return g.fps }

// Profiler returns the attached profiler, or nil.
func (g *Game) Profiler() *Profiler { return g.prof }

// SetScene makes sc the active scene. The first scene becomes active
// immediately; later switches take effect at the start of the next tick,
// whose single flush both erases the old scene's footprint and paints the new
// scene.
func (g *Game) SetScene(sc *Scene) {
	switch {
	case g.scene == nil:
		g.scene = sc
		g.fit(sc)
		sc.offscreen = false
		sc.Invalidate()
		g.log.Debug("scene active", "scene", sc.Name())
	case sc == g.scene:
		g.pending = nil
	default:
		sc.offscreen = true
		g.pending = sc
	}
}

func (g *Game) fit(sc *Scene) {
	if g.sized {
		sc.view = core.NewRect(0, 0, g.size.X, g.size.Y)
	}
}

func (g *Game) switchScene() {
	next := g.pending
	g.pending = nil
	prev := g.scene
	shown := prev.handOff()
	g.fit(next)
	next.adopt(shown)
	g.scene = next
	g.log.Debug("scene switched", "from", prev.Name(), "to", next.Name(), "adopted", len(shown))
}

// Place places s into the active scene, as returned by Scene.
func (g *Game) Place(s *Sprite, x, y int, opts ...PlaceOption) error {
	sc := g.Scene()
	if sc == nil {
		return fmt.Errorf("engine: place %s: %w", s, ErrNoActiveScene)
	}
	return sc.Place(s, x, y, opts...)
}

// Resize sets the screen size, clears the terminal if the writer can, and
// repaints the active scene on the next tick.
func (g *Game) Resize(w, h int) error {
	g.size = core.Pt(w, h)
	g.sized = true
	if c, ok := g.w.(Clearer); ok {
		if err := c.Clear(); err != nil {
			return fmt.Errorf("engine: clear: %w", err)
		}
	}
	if g.scene != nil {
		g.scene.SetViewport(w, h)
	}
	g.log.Debug("resized", "w", w, "h", h)
	return nil
}

// Size returns the screen size, if one was set.
func (g *Game) Size() (core.Point, bool) { return g.size, g.sized }

// Post queues an event for delivery on the next tick. Safe for concurrent
// use.
func (g *Game) Post(e core.Event) {
	g.mu.Lock()
	g.posted = append(g.posted, e)
	g.mu.Unlock()
}

func (g *Game) poll() []core.Event {
	var events []core.Event
	if g.src != nil {
		events = append(events, g.src.Poll()...)
	}
	g.mu.Lock()
	events = append(events, g.posted...)
	g.posted = nil
	g.mu.Unlock()
	return events
}

// Stop makes Run return after the current tick. Safe for concurrent use.
func (g *Game) Stop() { g.stopped.Store(true) }

// Stopped reports whether Stop was called.
func (g *Game) Stopped() bool { return g.stopped.Load() }

// Tick runs one tick.
func (g *Game) Tick() (Report, error) {
	start := g.now()
	if g.pending != nil {
		g.switchScene()
	}
	sc := g.scene
	if sc == nil {
		return Report{}, fmt.Errorf("engine: tick: %w", ErrNoActiveScene)
	}

	g.ntick++
	sc.BeginTick()
	g.fireIntervals()
	g.fireTimers(start)

	f := &Frame{N: g.ntick, Events: g.poll(), Scene: sc}
	sc.Update(f)
	hits := sc.Collide()
	writes, err := sc.Render(g.w)
	sc.Drain()

	r := Report{
		Tick:       g.ntick,
		Writes:     writes,
		Collisions: hits,
		Sprites:    sc.Len(),
		Elapsed:    g.now().Sub(start),
	}
	if g.prof != nil {
		g.prof.Observe(start, r, g.Scheduled())
	}
	if err != nil {
		g.log.Error("render failed", "tick", g.ntick, "err", err)
		return r, err
	}
	return r, nil
}

// Run ticks at the configured rate until ctx is done, Stop is called, or a
// tick fails.
func (g *Game) Run(ctx context.Context) error {
	g.log.Info("game loop started", "fps", g.fps)
	defer g.log.Info("game loop stopped", "ticks", g.ntick)

	var pace <-chan time.Time
	if g.fps > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(g.fps))
		defer ticker.Stop()
		pace = ticker.C
	}

	for {
		if g.stopped.Load() {
			return nil
		}
		if _, err := g.Tick(); err != nil {
			return err
		}
		if pace == nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			continue
		}
		select {
		case <-ctx.Done():
			return nil
		case <-pace:
		}
	}
}
