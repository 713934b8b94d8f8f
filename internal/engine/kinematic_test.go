package engine

import (
	"errors"
	"testing"

	"github.com/vovakirdan/termgame/internal/core"
)

func TestMoveUntilCollisionStopsAtContact(t *testing.T) {
	sc := NewScene("test")
	ball := dot('o')
	wall := dot('#')
	mustPlace(t, sc, ball, 0, 0)
	mustPlace(t, sc, wall, 3, 0)

	k := Kinematic{VX: 5}
	hits, err := k.MoveUntilCollision(ball, wall)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].B != wall {
		t.Fatalf("MoveUntilCollision() = %+v, expected one hit on the wall", hits)
	}
	if pos, _ := ball.Pos(); pos != core.Pt(2, 0) {
		t.Errorf("ball at %v, expected (2,0)", pos)
	}

	// clear path moves the full distance
	k = Kinematic{VY: 2}
	hits, _ = k.MoveUntilCollision(ball, wall)
	if len(hits) != 0 {
		t.Errorf("MoveUntilCollision() = %+v, expected no hits", hits)
	}
	if pos, _ := ball.Pos(); pos != core.Pt(2, 2) {
		t.Errorf("ball at %v, expected (2,2)", pos)
	}
}

func TestMoveUntilCollisionNotPlaced(t *testing.T) {
	k := Kinematic{VX: 1}
	if _, err := k.MoveUntilCollision(dot('o')); !errors.Is(err, ErrNotPlaced) {
		t.Errorf("error = %v, expected ErrNotPlaced", err)
	}
}

func TestBounceOffSprite(t *testing.T) {
	sc := NewScene("test")
	ball := dot('o')
	wall := dot('#')
	mustPlace(t, sc, ball, 2, 0)
	mustPlace(t, sc, wall, 3, 0)

	k := Kinematic{VX: 1, VY: 0}
	hits, err := k.Bounce(ball, wall)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 {
		t.Fatalf("Bounce() returned %d hits, expected 1", len(hits))
	}
	if k.VX != -1 {
		t.Errorf("VX = %v after bounce, expected -1", k.VX)
	}
	if pos, _ := ball.Pos(); pos != core.Pt(2, 0) {
		t.Errorf("ball at %v, expected to stay at (2,0)", pos)
	}

	if _, err := k.Bounce(ball, wall); err != nil {
		t.Fatal(err)
	}
	if pos, _ := ball.Pos(); pos != core.Pt(1, 0) {
		t.Errorf("ball at %v after bouncing away, expected (1,0)", pos)
	}
}

func TestBounceOffEdges(t *testing.T) {
	sc := NewScene("test", WithViewport(10, 5))
	ball := dot('o')
	mustPlace(t, sc, ball, 8, 2)

	k := Kinematic{VX: 3}
	hits, err := k.Bounce(ball, sc.Edges().All()...)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].Edge != SideRight {
		t.Fatalf("Bounce() = %+v, expected the right edge", hits)
	}
	if k.VX != -3 {
		t.Errorf("VX = %v after bounce, expected -3", k.VX)
	}
	if pos, _ := ball.Pos(); pos != core.Pt(9, 2) {
		t.Errorf("ball at %v, expected against the edge at (9,2)", pos)
	}

	if _, err := k.Bounce(ball, sc.Edges().All()...); err != nil {
		t.Fatal(err)
	}
	if pos, _ := ball.Pos(); pos != core.Pt(6, 2) {
		t.Errorf("ball at %v, expected (6,2)", pos)
	}
}

func TestEdgeCollisions(t *testing.T) {
	sc := NewScene("test", WithViewport(10, 5))
	s := NewSprite(MustSurface("ab"), nil)
	mustPlace(t, sc, s, 8, 4)

	edges := sc.Edges()
	if s.IsColliding(edges.Right) || s.IsColliding(edges.Bottom) {
		t.Error("sprite touching the inner border should not collide with it")
	}
	_ = s.Move(1, 0)
	if !s.IsColliding(edges.Right) {
		t.Error("sprite past the right border should collide with it")
	}
	if s.IsColliding(edges.Left) || s.IsColliding(edges.Top) {
		t.Error("sprite should not collide with far edges")
	}

	// scrolling moves the edges with the view
	sc.Scroll(5, 0)
	if s.IsColliding(sc.Edges().Right) {
		t.Error("scrolled viewport should contain the sprite")
	}
}

func TestFractionalVelocity(t *testing.T) {
	sc := NewScene("test")
	s := dot('o')
	mustPlace(t, sc, s, 0, 0)

	k := Kinematic{VX: 0.5, VY: -0.25}
	for i := 0; i < 4; i++ {
		if err := k.Advance(s); err != nil {
			t.Fatal(err)
		}
	}
	if pos, _ := s.Pos(); pos != core.Pt(2, -1) {
		t.Errorf("position after 4 ticks = %v, expected (2,-1)", pos)
	}
}

func TestMoveUntilCollisionLeavesOverlap(t *testing.T) {
	sc := NewScene("test")
	a := dot('a')
	b := dot('b')
	mustPlace(t, sc, a, 4, 4)
	mustPlace(t, sc, b, 4, 4)

	k := Kinematic{VX: 2}
	hits, err := k.MoveUntilCollision(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 0 {
		t.Errorf("MoveUntilCollision() = %+v, expected the overlap to be ignored", hits)
	}
	if pos, _ := a.Pos(); pos != core.Pt(6, 4) {
		t.Errorf("a at %v, expected (6,4)", pos)
	}
}
