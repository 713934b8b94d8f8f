package engine

import (
	"math"

	"github.com/vovakirdan/termgame/internal/core"
)

// Axis names the axis along which a swept hitbox entered its target.
type Axis int

const (
	AxisNone Axis = iota // overlapping from the start, or discrete
	AxisX
	AxisY
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	}
	return "none"
}

// Collision describes one overlap found during a tick or by a kinematic
// query. B is nil when A hit a viewport edge, in which case Edge is set.
type Collision struct {
	A, B *Sprite
	Edge Side

	// T is the fraction of A's motion at first contact: 0 when the pair
	// already overlapped at the start, 1 for plain end-of-tick overlaps.
	T float64
	// Point is where the swept sprite's top-left corner was at first
	// contact. For end-of-tick overlaps it is A's position.
	Point core.Vec
	Axis  Axis
	// Swept marks overlaps that only the continuous check found.
	Swept bool
}

// Swap returns c seen from B's side.
func (c Collision) Swap() Collision {
	if c.B != nil {
		c.A, c.B = c.B, c.A
	}
	return c
}

// Collidable is anything a moving sprite can be tested against: a *Sprite,
// a *Group, an *OrderedGroup or an Edge.
type Collidable interface {
	hits(mover *Sprite, from core.Rect, d core.Point) []Collision
}

func (s *Sprite) hits(mover *Sprite, from core.Rect, d core.Point) []Collision {
	if s == mover || !s.visible() || s.scene != mover.scene {
		return nil
	}
	c, ok := sweep(from, d, s.rect())
	if !ok {
		return nil
	}
	c.A, c.B = mover, s
	return []Collision{c}
}

func (g *Group) hits(mover *Sprite, from core.Rect, d core.Point) []Collision {
	return hitsAll(g.members, mover, from, d)
}

func (g *OrderedGroup) hits(mover *Sprite, from core.Rect, d core.Point) []Collision {
	return hitsAll(g.members, mover, from, d)
}

func hitsAll(members []*Sprite, mover *Sprite, from core.Rect, d core.Point) []Collision {
	var out []Collision
	for _, s := range members {
		out = append(out, s.hits(mover, from, d)...)
	}
	return out
}

// axisSpan returns the open interval of t in which a segment [a0, a0+aw)
// moving by da overlaps [b0, b1). ok is false if it never does.
func axisSpan(a0, aw, da, b0, b1 int) (lo, hi float64, ok bool) {
	if da == 0 {
		if a0 < b1 && a0+aw > b0 {
			return math.Inf(-1), math.Inf(1), true
		}
		return 0, 0, false
	}
	t1 := float64(b0-aw-a0) / float64(da)
	t2 := float64(b1-a0) / float64(da)
	return math.Min(t1, t2), math.Max(t1, t2), true
}

// sweep moves box from along d over t in [0, 1] and reports the earliest
// overlap with target. The target does not move.
func sweep(from core.Rect, d core.Point, target core.Rect) (Collision, bool) {
	if from.Empty() || target.Empty() {
		return Collision{}, false
	}
	lx, hx, okx := axisSpan(from.X, from.W, d.X, target.X, target.Right())
	ly, hy, oky := axisSpan(from.Y, from.H, d.Y, target.Y, target.Bottom())
	if !okx || !oky {
		return Collision{}, false
	}
	enter, exit := math.Max(lx, ly), math.Min(hx, hy)
	if enter >= exit || enter >= 1 || exit <= 0 {
		return Collision{}, false
	}

	c := Collision{Axis: AxisNone}
	if enter >= 0 {
		c.T = enter
		if lx >= ly {
			c.Axis = AxisX
		} else {
			c.Axis = AxisY
		}
	}
	c.Point = core.Vec{
		X: float64(from.X) + float64(d.X)*c.T,
		Y: float64(from.Y) + float64(d.Y)*c.T,
	}
	return c, true
}

type pairKey [2]ID

func keyOf(a, b *Sprite) pairKey {
	if a.id < b.id {
		return pairKey{a.id, b.id}
	}
	return pairKey{b.id, a.id}
}

// preTick returns the hitbox s had when the current tick began.
func (s *Sprite) preTick() core.Rect {
	if s.tickMark == s.scene.tick {
		return s.tickStart
	}
	return s.rect()
}

// fast reports whether s moved further this tick than its own extent on
// either axis, which the end-of-tick check alone could miss.
func (s *Sprite) fast() bool {
	if s.tickMark != s.scene.tick {
		return false
	}
	d := s.pos.Sub(s.tickStart.Min())
	return core.Abs(d.X) > s.tickStart.W || core.Abs(d.Y) > s.tickStart.H
}

// Collide runs the tick's collision pass. It reports every pair of placed,
// visible sprites whose hitboxes overlap, once per pair, followed by pairs
// that only a continuous sweep catches: for a sprite that moved further
// than its own size, its hitbox is swept from where it started the tick to
// where it is now, against every other sprite at that sprite's tick-start
// position.
//
// CollisionHook is then called on both sprites of each pair. A pair is
// skipped if either side has been killed by an earlier hook.
func (sc *Scene) Collide() []Collision {
	seen := make(map[pairKey]bool)
	var out []Collision

	live := sc.Sprites()
	for _, a := range live {
		if a.hidden {
			continue
		}
		for _, b := range sc.grid.query(a.rect()) {
			if b == a || !b.visible() {
				continue
			}
			k := keyOf(a, b)
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, Collision{
				A:     a,
				B:     b,
				T:     1,
				Point: core.Vec{X: float64(a.pos.X), Y: float64(a.pos.Y)},
			})
		}
	}

	for _, a := range sc.moved {
		if !a.visible() || !a.fast() {
			continue
		}
		from := a.tickStart
		d := a.pos.Sub(from.Min())
		for _, b := range sc.sweepCandidates(a, from.Union(a.rect())) {
			k := keyOf(a, b)
			if seen[k] {
				continue
			}
			c, ok := sweep(from, d, b.preTick())
			if !ok {
				continue
			}
			seen[k] = true
			c.A, c.B, c.Swept = a, b, true
			out = append(out, c)
		}
	}

	for _, c := range out {
		if c.A.state != StatePlaced || c.B.state != StatePlaced {
			continue
		}
		if h, ok := c.A.behavior.(CollisionHook); ok {
			h.OnCollision(c.A, c)
		}
		if c.A.state != StatePlaced || c.B.state != StatePlaced {
			continue
		}
		if h, ok := c.B.behavior.(CollisionHook); ok {
			h.OnCollision(c.B, c.Swap())
		}
	}
	return out
}

// sweepCandidates returns visible sprites other than a that were inside path
// when the tick began or are inside it now.
func (sc *Scene) sweepCandidates(a *Sprite, path core.Rect) []*Sprite {
	out := sc.grid.query(path)
	for _, b := range sc.moved {
		if b.tickStart.Intersects(path) && !containsSprite(out, b) {
			out = append(out, b)
		}
	}
	filtered := out[:0]
	for _, b := range out {
		if b != a && b.visible() {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

func containsSprite(list []*Sprite, s *Sprite) bool {
	for _, o := range list {
		if o == s {
			return true
		}
	}
	return false
}

// Collisions returns the sprites currently overlapping s.
func (sc *Scene) Collisions(s *Sprite) []*Sprite {
	if !s.visible() || s.scene != sc {
		return nil
	}
	var out []*Sprite
	for _, o := range sc.grid.query(s.rect()) {
		if o != s && o.visible() {
			out = append(out, o)
		}
	}
	return out
}
