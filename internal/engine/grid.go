package engine

import "github.com/vovakirdan/termgame/internal/core"

// DefaultGridCell is the bucket edge length of a scene's spatial index.
const DefaultGridCell = 8

// spatialGrid is a sparse uniform grid over scene coordinates. Each sprite is
// registered in every bucket its hitbox touches, so a query for a rectangle
// only visits sprites near it. Unlike a fixed world grid the scene is
// unbounded, hence buckets live in a map keyed by bucket coordinate.
type spatialGrid struct {
	size    int
	buckets map[core.Point][]*Sprite
	span    map[*Sprite]core.Rect // bucket range each sprite is registered in
}

func newSpatialGrid(size int) *spatialGrid {
	if size < 1 {
		size = DefaultGridCell
	}
	return &spatialGrid{
		size:    size,
		buckets: make(map[core.Point][]*Sprite),
		span:    make(map[*Sprite]core.Rect),
	}
}

// floorDiv divides rounding towards negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// bucketsOf returns the bucket range covered by r.
func (g *spatialGrid) bucketsOf(r core.Rect) core.Rect {
	if r.Empty() {
		return core.Rect{}
	}
	x0, y0 := floorDiv(r.X, g.size), floorDiv(r.Y, g.size)
	x1, y1 := floorDiv(r.Right()-1, g.size), floorDiv(r.Bottom()-1, g.size)
	return core.Rect{X: x0, Y: y0, W: x1 - x0 + 1, H: y1 - y0 + 1}
}

// update registers s under its current hitbox.
func (g *spatialGrid) update(s *Sprite) {
	span := g.bucketsOf(s.rect())
	if old, ok := g.span[s]; ok {
		if old == span {
			return
		}
		g.remove(s)
	}
	span.Each(func(b core.Point) {
		g.buckets[b] = append(g.buckets[b], s)
	})
	g.span[s] = span
}

func (g *spatialGrid) remove(s *Sprite) {
	span, ok := g.span[s]
	if !ok {
		return
	}
	span.Each(func(b core.Point) {
		list := g.buckets[b]
		for i, o := range list {
			if o == s {
				list = append(list[:i], list[i+1:]...)
				break
			}
		}
		if len(list) == 0 {
			delete(g.buckets, b)
		} else {
			g.buckets[b] = list
		}
	})
	delete(g.span, s)
}

// at returns the sprites registered in the bucket holding p. The slice is
// owned by the grid and must not be modified.
func (g *spatialGrid) at(p core.Point) []*Sprite {
	return g.buckets[core.Pt(floorDiv(p.X, g.size), floorDiv(p.Y, g.size))]
}

// query returns every sprite whose hitbox intersects r, each once.
func (g *spatialGrid) query(r core.Rect) []*Sprite {
	var out []*Sprite
	seen := make(map[*Sprite]struct{})
	g.bucketsOf(r).Each(func(b core.Point) {
		for _, s := range g.buckets[b] {
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			if s.rect().Intersects(r) {
				out = append(out, s)
			}
		}
	})
	return out
}

func (g *spatialGrid) reset() {
	g.buckets = make(map[core.Point][]*Sprite)
	g.span = make(map[*Sprite]core.Rect)
}
