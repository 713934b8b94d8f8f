package sprites

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/termgame/internal/engine"
)

// Value displays a value of any type.
type Value[T any] struct {
	*engine.Sprite
	value    T
	toString func(T) string
}

// NewValue creates a value display. A nil toString uses fmt.Sprint.
func NewValue[T any](v T, toString func(T) string) *Value[T] {
	if toString == nil {
		toString = func(v T) string { return fmt.Sprint(v) }
	}
	val := &Value[T]{value: v, toString: toString}
	val.Sprite = engine.NewSprite(engine.Surface{}, val)
	return val
}

// NewSurface renders the value.
func (v *Value[T]) NewSurface() (engine.Surface, error) {
	return engine.NewSurface(v.toString(v.value))
}

// Get returns the value.
func (v *Value[T]) Get() T { return v.value }

// Set replaces the value and redraws.
func (v *Value[T]) Set(val T) error {
	v.value = val
	return refresh(v.Sprite)
}

func (v *Value[T]) String() string { return v.toString(v.value) }

// Counter is an integer display.
type Counter struct {
	*Value[int]
}

// NewCounter creates a counter starting at n.
func NewCounter(n int) *Counter {
	return &Counter{Value: NewValue(n, nil)}
}

// NewLabeledCounter creates a counter rendered as "<label><n>".
func NewLabeledCounter(label string, n int) *Counter {
	return &Counter{Value: NewValue(n, func(v int) string { return fmt.Sprintf("%s%d", label, v) })}
}

// Increment adds by to the counter.
func (c *Counter) Increment(by int) error { return c.Set(c.value + by) }

// Decrement subtracts by from the counter.
func (c *Counter) Decrement(by int) error { return c.Increment(-by) }

// Gauge is a horizontal bar "[###   ]" filled to value/full.
type Gauge struct {
	*engine.Sprite
	full   float64
	length int
	value  float64
}

// NewGauge creates a gauge with length cells between the brackets.
func NewGauge(full float64, length int, value float64) *Gauge {
	g := &Gauge{full: full, length: length, value: value}
	g.Sprite = engine.NewSprite(engine.Surface{}, g)
	return g
}

// NewSurface renders the bar.
func (g *Gauge) NewSurface() (engine.Surface, error) {
	n := 0
	if g.full > 0 {
		n = int(math.Floor(g.value / g.full * float64(g.length)))
	}
	n = max(0, min(n, g.length))
	return engine.NewSurface("[" + strings.Repeat("#", n) + strings.Repeat(" ", g.length-n) + "]")
}

// Value returns the current value.
func (g *Gauge) Value() float64 { return g.value }

// SetValue updates the fill and redraws.
func (g *Gauge) SetValue(v float64) error {
	g.value = v
	return refresh(g.Sprite)
}
