package engine

import (
	"math"
	"testing"

	"github.com/vovakirdan/termgame/internal/core"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSweepCatchesTunneling(t *testing.T) {
	sc := NewScene("test")
	mover := dot('>')
	target := dot('#')
	mustPlace(t, sc, mover, 0, 0)
	mustPlace(t, sc, target, 3, 0)

	sc.BeginTick()
	if err := mover.Goto(5, 0); err != nil {
		t.Fatal(err)
	}
	if mover.Touching(target) {
		t.Fatal("end-of-tick hitboxes should not overlap")
	}

	hits := sc.Collide()
	if len(hits) != 1 {
		t.Fatalf("Collide() returned %d collisions, expected 1", len(hits))
	}
	c := hits[0]
	if c.A != mover || c.B != target || !c.Swept {
		t.Errorf("collision = %+v, expected swept mover -> target", c)
	}
	if !near(c.T, 0.4) {
		t.Errorf("T = %v, expected 0.4", c.T)
	}
	if !near(c.Point.X, 2) || !near(c.Point.Y, 0) {
		t.Errorf("Point = %+v, expected (2,0)", c.Point)
	}
	if c.Axis != AxisX {
		t.Errorf("Axis = %v, expected x", c.Axis)
	}
}

func TestSweepUsesTargetPreTickPosition(t *testing.T) {
	sc := NewScene("test")
	mover := dot('>')
	target := dot('#')
	mustPlace(t, sc, mover, 0, 0)
	mustPlace(t, sc, target, 3, 0)

	sc.BeginTick()
	_ = target.Goto(3, 10)
	_ = mover.Goto(6, 0)

	hits := sc.Collide()
	if len(hits) != 1 || hits[0].B != target {
		t.Fatalf("Collide() = %+v, expected a hit on the target's starting cell", hits)
	}

	// next tick the target is gone from the path
	sc.BeginTick()
	_ = mover.Goto(0, 0)
	if hits := sc.Collide(); len(hits) != 0 {
		t.Errorf("Collide() = %+v, expected nothing", hits)
	}
}

func TestSlowMoverIsNotSwept(t *testing.T) {
	sc := NewScene("test")
	mover := NewSprite(MustSurface("==="), nil)
	target := dot('#')
	mustPlace(t, sc, mover, 0, 0)
	mustPlace(t, sc, target, 4, 1)

	sc.BeginTick()
	_ = mover.Move(3, 0)
	if mover.fast() {
		t.Error("a move no longer than the sprite should not count as fast")
	}
	if hits := sc.Collide(); len(hits) != 0 {
		t.Errorf("Collide() = %+v, expected no collisions", hits)
	}
}

func TestDiscreteCollisionsOncePerPair(t *testing.T) {
	sc := NewScene("test")
	a := NewSprite(MustSurface("aaaa"), nil)
	b := dot('b')
	c := dot('c')
	mustPlace(t, sc, a, 0, 0)
	mustPlace(t, sc, b, 1, 0)
	mustPlace(t, sc, c, 3, 0)

	hits := sc.Collide()
	if len(hits) != 2 {
		t.Fatalf("Collide() returned %d collisions, expected 2", len(hits))
	}
	for _, h := range hits {
		if h.Swept || h.T != 1 {
			t.Errorf("discrete collision = %+v, expected T=1 and not swept", h)
		}
	}

	b.Kill()
	_ = c.Hide()
	if hits := sc.Collide(); len(hits) != 0 {
		t.Errorf("Collide() with zombie and hidden sprites = %+v, expected none", hits)
	}
}

type recorder struct {
	*Sprite
	got  []Collision
	kill bool
}

func newRecorder(surf Surface, kill bool) *recorder {
	r := &recorder{kill: kill}
	r.Sprite = NewSprite(surf, r)
	return r
}

func (r *recorder) OnCollision(s *Sprite, c Collision) {
	r.got = append(r.got, c)
	if r.kill {
		c.B.Kill()
	}
}

func TestCollisionHooks(t *testing.T) {
	sc := NewScene("test")
	a := newRecorder(MustSurface("a"), false)
	b := newRecorder(MustSurface("b"), false)
	mustPlace(t, sc, a.Sprite, 0, 0)
	mustPlace(t, sc, b.Sprite, 0, 0)

	sc.Collide()
	if len(a.got) != 1 || len(b.got) != 1 {
		t.Fatalf("hooks called %d/%d times, expected 1/1", len(a.got), len(b.got))
	}
	if a.got[0].A != a.Sprite || a.got[0].B != b.Sprite {
		t.Errorf("a saw %+v, expected itself as A", a.got[0])
	}
	if b.got[0].A != b.Sprite || b.got[0].B != a.Sprite {
		t.Errorf("b saw %+v, expected itself as A", b.got[0])
	}
}

func TestCollisionHookSkipsKilled(t *testing.T) {
	sc := NewScene("test")
	killer := newRecorder(MustSurface("k"), true)
	victim := newRecorder(MustSurface("v"), false)
	mustPlace(t, sc, killer.Sprite, 0, 0)
	mustPlace(t, sc, victim.Sprite, 0, 0)

	sc.Collide()
	if len(killer.got) != 1 {
		t.Errorf("killer hook called %d times, expected 1", len(killer.got))
	}
	if len(victim.got) != 0 {
		t.Errorf("victim hook called %d times after being killed, expected 0", len(victim.got))
	}
}

func TestSweepDirectly(t *testing.T) {
	tests := []struct {
		name   string
		from   core.Rect
		d      core.Point
		target core.Rect
		hit    bool
		t      float64
		axis   Axis
	}{
		{"miss above", core.NewRect(0, 0, 1, 1), core.Pt(5, 0), core.NewRect(3, 1, 1, 1), false, 0, AxisNone},
		{"vertical pass", core.NewRect(0, 0, 1, 1), core.Pt(0, 8), core.NewRect(0, 4, 1, 1), true, 3.0 / 8, AxisY},
		{"already overlapping", core.NewRect(0, 0, 2, 2), core.Pt(5, 0), core.NewRect(1, 1, 1, 1), true, 0, AxisNone},
		{"adjacent", core.NewRect(2, 0, 1, 1), core.Pt(1, 0), core.NewRect(3, 0, 1, 1), true, 0, AxisX},
		{"stops short", core.NewRect(0, 0, 1, 1), core.Pt(2, 0), core.NewRect(3, 0, 1, 1), false, 0, AxisNone},
		{"moving away", core.NewRect(4, 0, 1, 1), core.Pt(5, 0), core.NewRect(3, 0, 1, 1), false, 0, AxisNone},
		{"diagonal", core.NewRect(0, 0, 1, 1), core.Pt(4, 4), core.NewRect(2, 2, 1, 1), true, 0.25, AxisX},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := sweep(tt.from, tt.d, tt.target)
			if ok != tt.hit {
				t.Fatalf("sweep() hit = %v, expected %v", ok, tt.hit)
			}
			if !ok {
				return
			}
			if !near(c.T, tt.t) {
				t.Errorf("T = %v, expected %v", c.T, tt.t)
			}
			if c.Axis != tt.axis {
				t.Errorf("Axis = %v, expected %v", c.Axis, tt.axis)
			}
		})
	}
}
