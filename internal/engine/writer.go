package engine

import (
	"time"

	"github.com/vovakirdan/termgame/internal/core"
)

// Writer is the terminal boundary. Writes are applied in call order and
// become visible together at Flush.
type Writer interface {
	WriteCell(x, y int, c core.Cell)
	Flush() error
}

// Clearer is implemented by writers that can blank the whole terminal. The
// game uses it when the terminal is resized.
type Clearer interface {
	Clear() error
}

// Source is the input boundary. Poll returns the events decoded since the
// previous call and must not block.
type Source interface {
	Poll() []core.Event
}

// CountingWriter discards output and counts it. Useful for benchmarks and
// headless runs.
type CountingWriter struct {
	Writes  int
	Flushes int
}

// WriteCell counts one write.
func (w *CountingWriter) WriteCell(int, int, core.Cell) { w.Writes++ }

// Flush counts one flush.
func (w *CountingWriter) Flush() error {
	w.Flushes++
	return nil
}

// Report summarizes one tick.
type Report struct {
	Tick       uint64
	Writes     int
	Collisions []Collision
	Sprites    int
	Elapsed    time.Duration
}
