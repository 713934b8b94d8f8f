package engine

import "github.com/vovakirdan/termgame/internal/core"

// Side names a viewport edge.
type Side int

const (
	SideNone Side = iota
	SideTop
	SideBottom
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	}
	return "none"
}

// Edge is one side of the visible area, as a half-plane a sprite collides
// with as soon as any of its cells leaves the area on that side.
type Edge struct {
	Side   Side
	Bounds core.Rect // visible area in scene coordinates
}

// Edges groups the four sides of a visible area.
type Edges struct {
	Top, Bottom, Left, Right Edge
}

// All returns the four edges as collidables.
func (e Edges) All() []Collidable {
	return []Collidable{e.Top, e.Bottom, e.Left, e.Right}
}

// EdgesOf returns the edges of bounds.
func EdgesOf(bounds core.Rect) Edges {
	return Edges{
		Top:    Edge{Side: SideTop, Bounds: bounds},
		Bottom: Edge{Side: SideBottom, Bounds: bounds},
		Left:   Edge{Side: SideLeft, Bounds: bounds},
		Right:  Edge{Side: SideRight, Bounds: bounds},
	}
}

// Edges returns the edges of the scene's viewport, in scene coordinates.
// A scene without a viewport has edges nothing collides with.
func (sc *Scene) Edges() Edges {
	return EdgesOf(sc.view.Translate(sc.offset.X, sc.offset.Y))
}

// crossing returns the earliest t in [0, 1) at which v0 + t*dv passes limit.
// below selects the outside direction: v < limit when true, v > limit when
// false.
func crossing(v0, dv, limit int, below bool) (float64, bool) {
	if below {
		v0, dv, limit = -v0, -dv, -limit
	}
	if v0 > limit {
		return 0, true
	}
	if dv <= 0 {
		return 0, false
	}
	t := float64(limit-v0) / float64(dv)
	return t, t < 1
}

func (e Edge) hits(mover *Sprite, from core.Rect, d core.Point) []Collision {
	if e.Bounds.Empty() || from.Empty() {
		return nil
	}
	var (
		t    float64
		ok   bool
		axis = AxisX
	)
	switch e.Side {
	case SideLeft:
		t, ok = crossing(from.X, d.X, e.Bounds.X, true)
	case SideRight:
		t, ok = crossing(from.Right(), d.X, e.Bounds.Right(), false)
	case SideTop:
		t, ok = crossing(from.Y, d.Y, e.Bounds.Y, true)
		axis = AxisY
	case SideBottom:
		t, ok = crossing(from.Bottom(), d.Y, e.Bounds.Bottom(), false)
		axis = AxisY
	}
	if !ok {
		return nil
	}
	return []Collision{{
		A:    mover,
		Edge: e.Side,
		T:    t,
		Point: core.Vec{
			X: float64(from.X) + float64(d.X)*t,
			Y: float64(from.Y) + float64(d.Y)*t,
		},
		Axis: axis,
	}}
}
