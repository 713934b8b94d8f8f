package engine

import "github.com/vovakirdan/termgame/internal/core"

// Sprites take optional behavior through small capability interfaces. The
// value passed to NewSprite is checked against each of them at the point of
// invocation; a behavior that implements none of them is a static sprite.

// Updater is called once per tick during the update phase.
type Updater interface {
	Update(s *Sprite, f *Frame)
}

// SurfaceFactory produces a fresh surface. It is consulted at placement and
// by Sprite.UpdateSurface; when present it wins over the static surface.
type SurfaceFactory interface {
	NewSurface() (Surface, error)
}

// PlacedHook is called after a sprite has been placed into a scene.
type PlacedHook interface {
	OnPlaced(s *Sprite)
}

// KilledHook is called when a placed sprite becomes a zombie.
type KilledHook interface {
	OnKilled(s *Sprite)
}

// CollisionHook is called during the collision phase, once per colliding
// pair per tick, with c.A set to s.
type CollisionHook interface {
	OnCollision(s *Sprite, c Collision)
}

// Frame is the per-tick context handed to Update hooks.
type Frame struct {
	N      uint64       // tick number, starting at 1
	Events []core.Event // key and user events decoded for this tick
	Scene  *Scene       // scene being updated
}

// Key reports whether k was pressed this tick.
func (f *Frame) Key(k core.Key) bool {
	for _, e := range f.Events {
		if e.IsKey(k) {
			return true
		}
	}
	return false
}
