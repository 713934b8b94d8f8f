package shooter

import (
	"github.com/vovakirdan/termgame/internal/engine"
)

var (
	shipSurface   = engine.MustSurface(`\\`, "===>", "//")
	bulletSurface = engine.MustSurface("----")
)

// ship is the player. It also consumes the tick's events for the demo.
type ship struct {
	*engine.Sprite
	demo *Demo
}

func newShip(d *Demo) *ship {
	s := &ship{demo: d}
	s.Sprite = engine.NewSprite(shipSurface, s)
	return s
}

func (s *ship) Update(_ *engine.Sprite, f *engine.Frame) {
	for _, e := range f.Events {
		s.demo.handle(e)
	}
}

// steer moves the ship, refusing moves that leave the play area.
func (s *ship) steer(dx, dy int) {
	if err := s.Move(dx, dy); err != nil {
		return
	}
	for _, e := range s.demo.edges().All() {
		if s.IsColliding(e) {
			if err := s.Move(-dx, -dy); err != nil {
				s.demo.game.Logger().Warn("shooter: undo steer", "err", err)
			}
			return
		}
	}
}

func (s *ship) OnCollision(sp *engine.Sprite, c engine.Collision) {
	if c.B != nil && s.demo.asteroids.Has(c.B) {
		s.demo.gameOver = true
		sp.Kill()
	}
}

// bullet flies right and stops at the first asteroid or the right edge.
type bullet struct {
	*engine.Sprite
	engine.Kinematic
	demo *Demo
}

func newBullet(d *Demo, speed float64) *bullet {
	b := &bullet{demo: d}
	b.VX = speed
	b.Sprite = engine.NewSprite(bulletSurface, b)
	return b
}

func (b *bullet) Update(s *engine.Sprite, _ *engine.Frame) {
	hits, err := b.MoveUntilCollision(s, b.demo.asteroids, b.demo.edges().Right)
	if err != nil || len(hits) == 0 {
		return
	}
	s.Kill()
	for _, h := range hits {
		if h.B != nil && h.B.Placed() && b.demo.asteroids.Has(h.B) {
			h.B.Kill()
			b.demo.addScore(1)
		}
	}
}

// asteroid drifts left and costs a point when it reaches the left side.
type asteroid struct {
	*engine.Sprite
	engine.Kinematic
	demo *Demo
}

func newAsteroid(d *Demo, surf engine.Surface, speed float64) *asteroid {
	a := &asteroid{demo: d}
	a.VX = -speed
	a.Sprite = engine.NewSprite(surf, a)
	return a
}

func (a *asteroid) Update(s *engine.Sprite, _ *engine.Frame) {
	if err := a.Advance(s); err != nil {
		return
	}
	if s.IsColliding(a.demo.edges().Left) {
		s.Kill()
		a.demo.addScore(-1)
	}
}
