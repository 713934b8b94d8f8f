package sprites

import (
	"fmt"

	"github.com/vovakirdan/termgame/internal/engine"
)

// StatsDisplay shows a profiler reading and refreshes itself every tick.
type StatsDisplay struct {
	*engine.Sprite
	prof *engine.Profiler
}

// NewStatsDisplay creates a display for p.
func NewStatsDisplay(p *engine.Profiler) *StatsDisplay {
	d := &StatsDisplay{prof: p}
	d.Sprite = engine.NewSprite(engine.Surface{}, d)
	return d
}

// NewSurface renders the latest reading.
func (d *StatsDisplay) NewSurface() (engine.Surface, error) {
	s := d.prof.Stats()
	return engine.NewSurface(
		fmt.Sprintf("fps %6.1f avg %6.1f", s.LiveFPS, s.AverageFPS),
		fmt.Sprintf("sprites %d writes %d", s.Sprites, s.Writes),
	)
}

// Update redraws the reading.
func (d *StatsDisplay) Update(s *engine.Sprite, _ *engine.Frame) {
	_ = s.UpdateSurface()
}
