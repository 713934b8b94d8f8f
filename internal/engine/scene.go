package engine

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/termgame/internal/core"
)

var discardLogger = log.New(io.Discard)

// Scene is an ordered collection of placed sprites plus the render
// bookkeeping for them. Draw order is ascending z; sprites with equal z are
// drawn in placement order, first placed lowest.
//
// A Scene is not safe for concurrent use. All mutation happens on the
// goroutine driving the game loop.
type Scene struct {
	name string
	log  *log.Logger

	order []*Sprite // sorted by (z, seq); zombies stay until drain
	byID  map[ID]*Sprite
	seq   uint64
	tick  uint64
	kills []*Sprite
	moved []*Sprite // sprites whose tick-start rect was recorded this tick
	grid  *spatialGrid

	frame frame

	offset core.Point // scroll: screen = scene - offset
	view   core.Rect  // screen clip; empty means unclipped

	// offscreen is set while a game shows another scene
	offscreen bool
}

// SceneOption configures a Scene.
type SceneOption func(*Scene)

// WithSceneLogger sets the logger used for invariant warnings and debug
// output. Scenes log nothing by default.
func WithSceneLogger(l *log.Logger) SceneOption {
	return func(sc *Scene) {
		if l != nil {
			sc.log = l
		}
	}
}

// WithGridCell sets the bucket size of the scene's spatial index.
func WithGridCell(n int) SceneOption {
	return func(sc *Scene) {
		sc.grid = newSpatialGrid(n)
	}
}

// WithViewport clips rendering to a w x h screen area at the origin.
func WithViewport(w, h int) SceneOption {
	return func(sc *Scene) {
		sc.view = core.NewRect(0, 0, w, h)
	}
}

// NewScene creates an empty scene.
func NewScene(name string, opts ...SceneOption) *Scene {
	sc := &Scene{
		name:  name,
		log:   discardLogger,
		byID:  make(map[ID]*Sprite),
		grid:  newSpatialGrid(DefaultGridCell),
		frame: newFrame(),
	}
	for _, opt := range opts {
		opt(sc)
	}
	return sc
}

// Name returns the scene name.
func (sc *Scene) Name() string { return sc.name }

// TickN returns the number of ticks this scene has started.
func (sc *Scene) TickN() uint64 { return sc.tick }

// Len returns the number of sprites in the scene, zombies awaiting removal
// included.
func (sc *Scene) Len() int { return len(sc.order) }

// Sprites returns the placed sprites in draw order. The slice is a snapshot.
func (sc *Scene) Sprites() []*Sprite {
	out := make([]*Sprite, 0, len(sc.order))
	for _, s := range sc.order {
		if s.state == StatePlaced {
			out = append(out, s)
		}
	}
	return out
}

// Lookup resolves a sprite id. It returns nil for ids that are unknown or
// belong to a zombie.
func (sc *Scene) Lookup(id ID) *Sprite {
	s := sc.byID[id]
	if s == nil || s.state != StatePlaced {
		return nil
	}
	return s
}

// At returns the placed, visible sprites whose hitbox covers scene point p,
// topmost first.
func (sc *Scene) At(p core.Point) []*Sprite {
	var out []*Sprite
	for _, s := range sc.grid.at(p) {
		if s.visible() && s.rect().Contains(p.X, p.Y) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].above(out[j]) })
	return out
}

// PlaceOption configures a placement.
type PlaceOption func(*placeOptions)

type placeOptions struct {
	z      int
	groups []Container
}

// WithZ places the sprite at z-order z. The default is 0.
func WithZ(z int) PlaceOption {
	return func(o *placeOptions) { o.z = z }
}

// InGroups adds the sprite to the given groups once it is placed.
func InGroups(gs ...Container) PlaceOption {
	return func(o *placeOptions) { o.groups = append(o.groups, gs...) }
}

// Place moves an Abstract sprite into the scene at (x, y). The surface comes
// from the behavior's SurfaceFactory when it has one, else from the static
// surface. OnPlaced runs last, with the sprite fully placed.
func (sc *Scene) Place(s *Sprite, x, y int, opts ...PlaceOption) error {
	if s.state != StateAbstract {
		return fmt.Errorf("engine: place %s: %w", s, ErrAlreadyPlaced)
	}
	var po placeOptions
	for _, opt := range opts {
		opt(&po)
	}

	surf := s.static
	if f, ok := s.behavior.(SurfaceFactory); ok {
		var err error
		if surf, err = f.NewSurface(); err != nil {
			return fmt.Errorf("engine: surface factory: %w", err)
		}
	}
	if err := surf.validate(); err != nil {
		return err
	}

	s.id = nextID()
	s.state = StatePlaced
	s.scene = sc
	s.surf = surf
	s.pos = core.Pt(x, y)
	s.z = po.z
	sc.seq++
	s.seq = sc.seq
	s.tickMark = sc.tick
	s.tickStart = s.rect()
	sc.moved = append(sc.moved, s)

	sc.insert(s)
	sc.byID[s.id] = s
	sc.grid.update(s)
	sc.markChanged(s)

	for _, g := range po.groups {
		g.Add(s)
	}
	if h, ok := s.behavior.(PlacedHook); ok {
		h.OnPlaced(s)
	}
	return nil
}

// insert keeps order sorted by (z, seq).
func (sc *Scene) insert(s *Sprite) {
	i := sort.Search(len(sc.order), func(i int) bool { return sc.order[i].above(s) })
	sc.order = append(sc.order, nil)
	copy(sc.order[i+1:], sc.order[i:])
	sc.order[i] = s
}

func (sc *Scene) indexOf(s *Sprite) int {
	i := sort.Search(len(sc.order), func(i int) bool { return !s.above(sc.order[i]) })
	if i < len(sc.order) && sc.order[i] == s {
		return i
	}
	return -1
}

func (sc *Scene) unlink(s *Sprite) {
	if i := sc.indexOf(s); i >= 0 {
		sc.order = append(sc.order[:i], sc.order[i+1:]...)
	}
}

// reorder moves s to z, on top of its new layer.
func (sc *Scene) reorder(s *Sprite, z int) {
	sc.unlink(s)
	s.z = z
	sc.seq++
	s.seq = sc.seq
	sc.insert(s)
	sc.markChanged(s)
}

// noteMotion records where s stood when the tick started.
func (sc *Scene) noteMotion(s *Sprite) {
	if s.tickMark != sc.tick {
		s.tickMark = sc.tick
		s.tickStart = s.rect()
		sc.moved = append(sc.moved, s)
	}
}

// reindex refreshes the spatial index after a hitbox change.
func (sc *Scene) reindex(s *Sprite) {
	sc.grid.update(s)
	sc.markChanged(s)
}

func (sc *Scene) enqueueKill(s *Sprite) {
	sc.grid.remove(s)
	sc.kills = append(sc.kills, s)
	sc.markChanged(s)
}

// propagate re-runs the surface factories up the parent chain of s. A link
// that no longer resolves ends the walk.
func (sc *Scene) propagate(s *Sprite) {
	visited := map[ID]bool{s.id: true}
	for id := s.parent; id != 0 && !visited[id]; {
		visited[id] = true
		p := sc.Lookup(id)
		if p == nil {
			return
		}
		if err := p.refresh(); err != nil {
			sc.log.Warn("parent surface refresh failed", "sprite", p.id, "err", err)
			return
		}
		id = p.parent
	}
}

// BeginTick starts a new tick for motion tracking. Displacements used for
// sub-tick collision checks are measured from here.
func (sc *Scene) BeginTick() {
	sc.tick++
	sc.moved = sc.moved[:0]
}

// Update runs every placed sprite's Updater in draw order over a snapshot of
// the scene, so sprites placed or killed mid-pass do not disturb it. Sprites
// killed earlier in the pass are skipped.
func (sc *Scene) Update(f *Frame) {
	for _, s := range sc.Sprites() {
		if s.state != StatePlaced {
			continue
		}
		if u, ok := s.behavior.(Updater); ok {
			u.Update(s, f)
		}
	}
}

// Drain removes the zombies queued by Kill from the scene and from all of
// their groups. A zombie whose erase has not been rendered yet stays queued.
// It returns the number of sprites removed.
func (sc *Scene) Drain() int {
	n := 0
	pending := sc.kills[:0]
	for _, s := range sc.kills {
		if sc.frame.isChanged(s) {
			pending = append(pending, s)
			continue
		}
		sc.remove(s)
		n++
	}
	for i := len(pending); i < len(sc.kills); i++ {
		sc.kills[i] = nil
	}
	sc.kills = pending
	return n
}

func (sc *Scene) remove(s *Sprite) {
	sc.unlink(s)
	delete(sc.byID, s.id)
	sc.grid.remove(s)
	delete(sc.frame.snaps, s.id)
	for _, g := range s.groups {
		g.drop(s)
	}
	s.release()
}

// Step runs one complete tick on a standalone scene: update, collide, render
// with a single flush, then drain.
func (sc *Scene) Step(events []core.Event, w Writer) (Report, error) {
	sc.BeginTick()
	sc.Update(&Frame{N: sc.tick, Events: events, Scene: sc})
	hits := sc.Collide()
	writes, err := sc.Render(w)
	sc.Drain()
	return Report{
		Tick:       sc.tick,
		Writes:     writes,
		Collisions: hits,
		Sprites:    len(sc.order),
	}, err
}

// Offset returns the scroll offset. A sprite at scene (x, y) appears at
// screen (x - offset.X, y - offset.Y).
func (sc *Scene) Offset() core.Point { return sc.offset }

// SetOffset scrolls the scene so that scene point p is at the screen origin.
func (sc *Scene) SetOffset(p core.Point) {
	if p == sc.offset {
		return
	}
	sc.offset = p
	sc.touchAll()
}

// Scroll shifts the scroll offset by (dx, dy).
func (sc *Scene) Scroll(dx, dy int) {
	sc.SetOffset(sc.offset.Add(core.Pt(dx, dy)))
}

// Viewport returns the screen clip rectangle.
func (sc *Scene) Viewport() core.Rect { return sc.view }

// SetViewport changes the screen clip to w x h and forgets what the terminal
// shows. Callers clear the terminal alongside.
func (sc *Scene) SetViewport(w, h int) {
	sc.view = core.NewRect(0, 0, w, h)
	sc.Invalidate()
}

// Invalidate drops the render record, so the next render repaints every
// visible sprite. Use it after the terminal was cleared behind the engine.
func (sc *Scene) Invalidate() {
	sc.frame.reset()
	sc.touchAll()
}

func (sc *Scene) touchAll() {
	for _, s := range sc.order {
		sc.markChanged(s)
	}
}

func (sc *Scene) markChanged(s *Sprite) {
	sc.frame.mark(s)
}

// screenRect returns the hitbox of s in screen coordinates.
func (sc *Scene) screenRect(s *Sprite) core.Rect {
	return s.rect().Translate(-sc.offset.X, -sc.offset.Y)
}
