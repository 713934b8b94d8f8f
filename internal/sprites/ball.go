package sprites

import (
	"github.com/vovakirdan/termgame/internal/engine"
)

var ballSurface = engine.MustSurface("O")

// BouncingBall moves every tick and bounces off its obstacles.
type BouncingBall struct {
	*engine.Sprite
	engine.Kinematic
	on []engine.Collidable

	// Bounced is called with the collisions of every bounce.
	Bounced func(hits []engine.Collision)
}

// NewBouncingBall creates a ball with velocity (vx, vy) bouncing off on.
func NewBouncingBall(vx, vy float64, on ...engine.Collidable) *BouncingBall {
	b := &BouncingBall{on: on}
	b.VX, b.VY = vx, vy
	b.Sprite = engine.NewSprite(ballSurface, b)
	return b
}

// BounceOn replaces the obstacles.
func (b *BouncingBall) BounceOn(on ...engine.Collidable) { b.on = on }

// Update advances the ball.
func (b *BouncingBall) Update(s *engine.Sprite, _ *engine.Frame) {
	hits, err := b.Bounce(s, b.on...)
	if err != nil {
		return
	}
	if len(hits) > 0 && b.Bounced != nil {
		b.Bounced(hits)
	}
}
