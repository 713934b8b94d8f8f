package engine

import (
	"math"

	"github.com/vovakirdan/termgame/internal/core"
)

// Kinematic gives a sprite a velocity in cells per tick. Fractional
// velocities accumulate, so VX = 0.5 moves one cell every other tick.
//
// Embed it next to *Sprite in a game type and call one of the motion
// methods from Update.
type Kinematic struct {
	VX, VY float64
	fx, fy float64
}

// step advances the sub-cell accumulators by one tick and returns the whole
// cells to move.
func (k *Kinematic) step() core.Point {
	k.fx += k.VX
	k.fy += k.VY
	dx, dy := math.Trunc(k.fx), math.Trunc(k.fy)
	k.fx -= dx
	k.fy -= dy
	return core.Pt(int(dx), int(dy))
}

// Advance moves s by one tick of velocity, ignoring obstacles.
func (k *Kinematic) Advance(s *Sprite) error {
	d := k.step()
	return s.Move(d.X, d.Y)
}

// MoveUntilCollision moves s by one tick of velocity but stops it at the
// first contact with any of targets. It returns the collisions at that
// earliest contact, or nil if the path was clear. Sprites the mover overlaps
// before moving are ignored, so stacked sprites can separate.
func (k *Kinematic) MoveUntilCollision(s *Sprite, targets ...Collidable) ([]Collision, error) {
	if s.state != StatePlaced {
		return nil, s.notPlaced("move until collision")
	}
	d := k.step()
	from := s.rect()

	var hits []Collision
	for _, t := range targets {
		for _, h := range t.hits(s, from, d) {
			// a sprite already overlapping the mover does not hold it
			if h.B != nil && h.Axis == AxisNone {
				continue
			}
			hits = append(hits, h)
		}
	}
	if len(hits) == 0 {
		return nil, s.Move(d.X, d.Y)
	}

	first := hits[0].T
	for _, h := range hits[1:] {
		first = math.Min(first, h.T)
	}
	const eps = 1e-9
	earliest := hits[:0]
	for _, h := range hits {
		if h.T <= first+eps {
			earliest = append(earliest, h)
		}
	}

	// drop the sub-cell remainder so the next tick starts from contact
	k.fx, k.fy = 0, 0
	stop := core.Pt(truncEps(float64(d.X)*first), truncEps(float64(d.Y)*first))
	return earliest, s.Move(stop.X, stop.Y)
}

// Bounce is MoveUntilCollision followed by reflecting the velocity on the
// axis each earliest collision entered along. Edges always send the sprite
// back inside.
func (k *Kinematic) Bounce(s *Sprite, targets ...Collidable) ([]Collision, error) {
	hits, err := k.MoveUntilCollision(s, targets...)
	if err != nil {
		return hits, err
	}
	var flipX, flipY bool
	for _, h := range hits {
		switch h.Edge {
		case SideLeft:
			k.VX = math.Abs(k.VX)
		case SideRight:
			k.VX = -math.Abs(k.VX)
		case SideTop:
			k.VY = math.Abs(k.VY)
		case SideBottom:
			k.VY = -math.Abs(k.VY)
		default:
			switch h.Axis {
			case AxisX:
				flipX = true
			case AxisY:
				flipY = true
			}
		}
	}
	if flipX {
		k.VX = -k.VX
	}
	if flipY {
		k.VY = -k.VY
	}
	return hits, nil
}

// truncEps truncates towards zero, tolerating float error just below an
// integer.
func truncEps(v float64) int {
	const eps = 1e-9
	if v >= 0 {
		return int(math.Floor(v + eps))
	}
	return int(math.Ceil(v - eps))
}
