package engine

import (
	"fmt"
	"time"
)

// DefaultSampleTicks is the profiler window when none is configured.
const DefaultSampleTicks = 10

// Stats is a profiler reading.
type Stats struct {
	LiveFPS    float64 // from the last tick interval
	AverageFPS float64 // over the sample window; 0 until a sample exists
	Sprites    int
	Scheduled  int // live intervals and timers
	Writes     int // cell writes in the last tick
	Ticks      uint64
}

func (s Stats) String() string {
	return fmt.Sprintf("live_fps=%.4f average_fps=%.4f sprites=%d scheduled=%d writes=%d",
		s.LiveFPS, s.AverageFPS, s.Sprites, s.Scheduled, s.Writes)
}

// ProfileError reports a failed frame-rate assertion.
type ProfileError struct {
	Msg   string
	Stats Stats
}

func (e *ProfileError) Error() string {
	return "engine: profiler: " + e.Msg + " (" + e.Stats.String() + ")"
}

// Profiler tracks frame rate over a sliding window of tick intervals. The
// game feeds it; nothing in the engine depends on it.
type Profiler struct {
	window  int
	samples []time.Duration
	last    time.Time
	stats   Stats
}

// NewProfiler creates a profiler averaging over sampleTicks ticks.
func NewProfiler(sampleTicks int) *Profiler {
	if sampleTicks < 1 {
		sampleTicks = DefaultSampleTicks
	}
	return &Profiler{window: sampleTicks}
}

// Observe records a tick that started at start.
func (p *Profiler) Observe(start time.Time, r Report, scheduled int) {
	p.stats.Ticks++
	p.stats.Sprites = r.Sprites
	p.stats.Scheduled = scheduled
	p.stats.Writes = r.Writes

	if !p.last.IsZero() {
		d := start.Sub(p.last)
		if d > 0 {
			p.stats.LiveFPS = 1 / d.Seconds()
			p.samples = append(p.samples, d)
			if len(p.samples) > p.window {
				p.samples = p.samples[1:]
			}
		} else {
			p.stats.LiveFPS = 0
		}
	}
	p.last = start

	var sum time.Duration
	for _, d := range p.samples {
		sum += d
	}
	if sum > 0 {
		p.stats.AverageFPS = float64(len(p.samples)) / sum.Seconds()
	}
}

// Stats returns the current reading.
func (p *Profiler) Stats() Stats { return p.stats }

// MinFPS fails if the live frame rate is below min.
func (p *Profiler) MinFPS(min float64) error {
	if p.stats.LiveFPS < min {
		return &ProfileError{
			Msg:   fmt.Sprintf("live fps %.4f is lower than minimum %.4f", p.stats.LiveFPS, min),
			Stats: p.stats,
		}
	}
	return nil
}

// MinAverageFPS fails if the average frame rate is below min. It passes
// while there is no sample yet.
func (p *Profiler) MinAverageFPS(min float64) error {
	if len(p.samples) > 0 && p.stats.AverageFPS < min {
		return &ProfileError{
			Msg:   fmt.Sprintf("average fps %.4f is lower than minimum %.4f", p.stats.AverageFPS, min),
			Stats: p.stats,
		}
	}
	return nil
}
