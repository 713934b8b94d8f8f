package engine

import (
	"fmt"
	"sync/atomic"

	"github.com/vovakirdan/termgame/internal/core"
)

// ID identifies a placed sprite. Zero means "no sprite".
type ID uint64

var lastID atomic.Uint64

func nextID() ID {
	return ID(lastID.Add(1))
}

// State is a sprite's lifecycle state.
type State int

const (
	// StateAbstract sprites have no scene, position or surface yet.
	StateAbstract State = iota
	// StatePlaced sprites belong to a scene and are drawn.
	StatePlaced
	// StateZombie sprites were killed and await removal. Terminal.
	StateZombie
)

func (s State) String() string {
	switch s {
	case StateAbstract:
		return "abstract"
	case StatePlaced:
		return "placed"
	case StateZombie:
		return "zombie"
	}
	return "unknown"
}

// Sprite is a positioned, drawable entity with a lifecycle.
//
// Game types usually embed *Sprite and pass themselves as the behavior, which
// lets them implement any of the hook interfaces (Updater, SurfaceFactory,
// PlacedHook, KilledHook, CollisionHook).
type Sprite struct {
	id       ID
	state    State
	static   Surface
	behavior any

	// valid only while Placed (retained for a Zombie until drain)
	scene  *Scene
	surf   Surface
	pos    core.Point
	z      int
	seq    uint64
	hidden bool
	style  *core.Style
	parent ID
	groups []groupRef

	// position at the start of the current tick, recorded on first move
	tickStart core.Rect
	tickMark  uint64
}

// NewSprite creates an Abstract sprite. static is used at placement unless
// behavior implements SurfaceFactory. behavior may be nil.
func NewSprite(static Surface, behavior any) *Sprite {
	return &Sprite{static: static, behavior: behavior}
}

// ID returns the id assigned at placement, or zero for an Abstract sprite.
func (s *Sprite) ID() ID { return s.id }

// State returns the lifecycle state.
func (s *Sprite) State() State { return s.state }

// Placed reports whether the sprite is currently placed.
func (s *Sprite) Placed() bool { return s.state == StatePlaced }

// Zombie reports whether the sprite has been killed.
func (s *Sprite) Zombie() bool { return s.state == StateZombie }

// Behavior returns the behavior value the sprite was created with.
func (s *Sprite) Behavior() any { return s.behavior }

// Scene returns the owning scene, or nil unless Placed.
func (s *Sprite) Scene() *Scene {
	if s.state != StatePlaced {
		return nil
	}
	return s.scene
}

func (s *Sprite) String() string {
	if s.state != StatePlaced {
		return fmt.Sprintf("sprite(%s)", s.state)
	}
	return fmt.Sprintf("sprite#%d(%d,%d z=%d %dx%d)", s.id, s.pos.X, s.pos.Y, s.z, s.surf.w, s.surf.h)
}

func (s *Sprite) notPlaced(op string) error {
	return fmt.Errorf("engine: %s on %s sprite: %w", op, s.state, ErrNotPlaced)
}

// Pos returns the sprite's scene coordinates.
func (s *Sprite) Pos() (core.Point, error) {
	if s.state != StatePlaced {
		return core.Point{}, s.notPlaced("pos")
	}
	return s.pos, nil
}

// Z returns the sprite's z-order.
func (s *Sprite) Z() (int, error) {
	if s.state != StatePlaced {
		return 0, s.notPlaced("z")
	}
	return s.z, nil
}

// Surface returns the sprite's current surface.
func (s *Sprite) Surface() (Surface, error) {
	if s.state != StatePlaced {
		return Surface{}, s.notPlaced("surface")
	}
	return s.surf, nil
}

// Rect returns the hitbox: [x, x+w) x [y, y+h) in scene coordinates.
func (s *Sprite) Rect() (core.Rect, error) {
	if s.state != StatePlaced {
		return core.Rect{}, s.notPlaced("rect")
	}
	return s.rect(), nil
}

func (s *Sprite) rect() core.Rect {
	return core.Rect{X: s.pos.X, Y: s.pos.Y, W: s.surf.w, H: s.surf.h}
}

// Hidden reports whether the sprite is placed but not drawn.
func (s *Sprite) Hidden() bool { return s.hidden }

// Move shifts the sprite by (dx, dy).
func (s *Sprite) Move(dx, dy int) error {
	if s.state != StatePlaced {
		return s.notPlaced("move")
	}
	s.setPos(s.pos.Add(core.Pt(dx, dy)))
	return nil
}

// Goto moves the sprite to (x, y).
func (s *Sprite) Goto(x, y int) error {
	if s.state != StatePlaced {
		return s.notPlaced("goto")
	}
	s.setPos(core.Pt(x, y))
	return nil
}

func (s *Sprite) setPos(p core.Point) {
	if p == s.pos {
		return
	}
	s.scene.noteMotion(s)
	s.pos = p
	s.scene.reindex(s)
}

// SetZ changes the z-order. The sprite is drawn above every sprite already
// sharing the new z.
func (s *Sprite) SetZ(z int) error {
	if s.state != StatePlaced {
		return s.notPlaced("set z")
	}
	if z == s.z {
		return nil
	}
	s.scene.reorder(s, z)
	return nil
}

// SetSurface replaces the surface wholesale. On an Abstract sprite it
// replaces the static surface used at placement.
func (s *Sprite) SetSurface(surf Surface) error {
	if err := surf.validate(); err != nil {
		return err
	}
	switch s.state {
	case StateAbstract:
		s.static = surf
		return nil
	case StateZombie:
		return s.notPlaced("set surface")
	}
	s.applySurface(surf)
	s.scene.propagate(s)
	return nil
}

// UpdateSurface asks the behavior's SurfaceFactory for a new surface and
// applies it. Sprites without a factory keep their surface.
func (s *Sprite) UpdateSurface() error {
	if s.state != StatePlaced {
		return s.notPlaced("update surface")
	}
	if err := s.refresh(); err != nil {
		return err
	}
	s.scene.propagate(s)
	return nil
}

func (s *Sprite) refresh() error {
	f, ok := s.behavior.(SurfaceFactory)
	if !ok {
		return nil
	}
	surf, err := f.NewSurface()
	if err != nil {
		return fmt.Errorf("engine: surface factory: %w", err)
	}
	if err := surf.validate(); err != nil {
		return err
	}
	s.applySurface(surf)
	return nil
}

func (s *Sprite) applySurface(surf Surface) {
	s.surf = surf
	s.scene.reindex(s)
}

// SetStyle overrides the style of every opaque cell the sprite draws.
func (s *Sprite) SetStyle(st core.Style) error {
	if s.state != StatePlaced {
		return s.notPlaced("set style")
	}
	s.style = &st
	s.scene.markChanged(s)
	return nil
}

// ClearStyle removes a style override.
func (s *Sprite) ClearStyle() error {
	if s.state != StatePlaced {
		return s.notPlaced("clear style")
	}
	s.style = nil
	s.scene.markChanged(s)
	return nil
}

// Hide stops drawing the sprite. A hidden sprite also takes no part in
// collision checks.
func (s *Sprite) Hide() error {
	if s.state != StatePlaced {
		return s.notPlaced("hide")
	}
	if !s.hidden {
		s.hidden = true
		s.scene.markChanged(s)
	}
	return nil
}

// Show undoes Hide.
func (s *Sprite) Show() error {
	if s.state != StatePlaced {
		return s.notPlaced("show")
	}
	if s.hidden {
		s.hidden = false
		s.scene.markChanged(s)
	}
	return nil
}

// SetParent links s to p for surface propagation: whenever s's surface
// changes, p's surface factory is re-run. Pass nil to unlink. The link is
// by id, so it never keeps either sprite alive.
func (s *Sprite) SetParent(p *Sprite) error {
	if s.state != StatePlaced {
		return s.notPlaced("set parent")
	}
	if p == nil {
		s.parent = 0
		return nil
	}
	if p.state != StatePlaced {
		return p.notPlaced("parent")
	}
	s.parent = p.id
	return nil
}

// Parent resolves the parent link, or returns nil if it no longer resolves.
func (s *Sprite) Parent() *Sprite {
	if s.state != StatePlaced || s.parent == 0 {
		return nil
	}
	return s.scene.Lookup(s.parent)
}

// Kill turns a placed sprite into a zombie. It stays in its scene and groups
// until the end of the tick. Killing an Abstract or Zombie sprite is a no-op.
func (s *Sprite) Kill() {
	if s.state != StatePlaced {
		return
	}
	s.state = StateZombie
	s.scene.enqueueKill(s)
	if h, ok := s.behavior.(KilledHook); ok {
		h.OnKilled(s)
	}
}

// visible reports whether the sprite takes part in drawing and collisions.
func (s *Sprite) visible() bool {
	return s.state == StatePlaced && !s.hidden
}

// cellAt returns the styled cell drawn at scene point p, which must lie in
// the hitbox.
func (s *Sprite) cellAt(p core.Point) core.Cell {
	c := s.surf.At(p.X-s.pos.X, p.Y-s.pos.Y)
	if s.style != nil && !c.Transparent() {
		c.Style = *s.style
	}
	return c
}

// above reports whether s is drawn above o.
func (s *Sprite) above(o *Sprite) bool {
	if s.z != o.z {
		return s.z > o.z
	}
	return s.seq > o.seq
}

// release drops everything that is only valid while placed.
func (s *Sprite) release() {
	s.scene = nil
	s.surf = Surface{}
	s.style = nil
	s.parent = 0
	s.groups = nil
}

// Touching reports whether the hitboxes of s and o currently overlap. Hidden,
// unplaced and zombie sprites never touch anything.
func (s *Sprite) Touching(o *Sprite) bool {
	if s == o || !s.visible() || !o.visible() || s.scene != o.scene {
		return false
	}
	return s.rect().Intersects(o.rect())
}

// IsColliding reports whether s currently overlaps c.
func (s *Sprite) IsColliding(c Collidable) bool {
	if !s.visible() {
		return false
	}
	return len(c.hits(s, s.rect(), core.Point{})) > 0
}
