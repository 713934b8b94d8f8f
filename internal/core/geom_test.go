package core

import "testing"

func TestRectIntersects(t *testing.T) {
	base := NewRect(0, 0, 4, 3)
	tests := []struct {
		name     string
		other    Rect
		expected bool
	}{
		{"same rect", base, true},
		{"inside", NewRect(1, 1, 1, 1), true},
		{"corner cell", NewRect(3, 2, 5, 5), true},
		{"touching right edge", NewRect(4, 0, 2, 3), false},
		{"touching bottom edge", NewRect(0, 3, 4, 1), false},
		{"left of", NewRect(-3, 0, 3, 3), false},
		{"above", NewRect(0, -2, 4, 2), false},
		{"straddling", NewRect(-1, 1, 10, 1), true},
		{"zero width", NewRect(1, 1, 0, 1), false},
		{"zero height", NewRect(1, 1, 1, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.Intersects(tc.other); got != tc.expected {
				t.Errorf("Intersects(%+v) = %v, expected %v", tc.other, got, tc.expected)
			}
			if got := tc.other.Intersects(base); got != tc.expected {
				t.Errorf("reversed Intersects(%+v) = %v, expected %v", tc.other, got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(2, 1, 3, 2)
	inside := []Point{{2, 1}, {4, 1}, {2, 2}, {4, 2}}
	outside := []Point{{1, 1}, {5, 1}, {2, 0}, {2, 3}}
	for _, p := range inside {
		if !r.Contains(p.X, p.Y) {
			t.Errorf("Contains(%d, %d) = false, expected true", p.X, p.Y)
		}
	}
	for _, p := range outside {
		if r.Contains(p.X, p.Y) {
			t.Errorf("Contains(%d, %d) = true, expected false", p.X, p.Y)
		}
	}
}

func TestRectEdgesAndTranslate(t *testing.T) {
	r := NewRect(3, -2, 4, 5)
	if r.Right() != 7 || r.Bottom() != 3 {
		t.Errorf("Right(), Bottom() = %d, %d, expected 7, 3", r.Right(), r.Bottom())
	}
	if got := r.Min(); got != Pt(3, -2) {
		t.Errorf("Min() = %v, expected (3, -2)", got)
	}
	if got := r.Translate(-3, 2); got != NewRect(0, 0, 4, 5) {
		t.Errorf("Translate() = %+v, expected {0 0 4 5}", got)
	}
}

func TestPointArithmetic(t *testing.T) {
	p, q := Pt(5, -1), Pt(2, 3)
	if got := p.Add(q); got != Pt(7, 2) {
		t.Errorf("Add() = %v, expected (7, 2)", got)
	}
	if got := p.Sub(q); got != Pt(3, -4) {
		t.Errorf("Sub() = %v, expected (3, -4)", got)
	}
}

func TestClampAbs(t *testing.T) {
	tests := []struct {
		v, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{3, 3, 3, 3},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tt.v, tt.lo, tt.hi, got, tt.expected)
		}
	}

	for in, expected := range map[int]int{-4: 4, 0: 0, 9: 9} {
		if got := Abs(in); got != expected {
			t.Errorf("Abs(%d) = %d, expected %d", in, got, expected)
		}
	}
}

func TestRectUnion(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected Rect
	}{
		{"disjoint", NewRect(0, 0, 1, 1), NewRect(3, 2, 2, 2), NewRect(0, 0, 5, 4)},
		{"contained", NewRect(0, 0, 10, 10), NewRect(2, 2, 2, 2), NewRect(0, 0, 10, 10)},
		{"empty left", Rect{}, NewRect(1, 1, 2, 2), NewRect(1, 1, 2, 2)},
		{"empty right", NewRect(1, 1, 2, 2), Rect{}, NewRect(1, 1, 2, 2)},
		{"negative coords", NewRect(-3, -1, 2, 1), NewRect(0, 0, 1, 1), NewRect(-3, -1, 4, 2)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Union(tc.b); got != tc.expected {
				t.Errorf("Union() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestRectIntersect(t *testing.T) {
	got := NewRect(0, 0, 4, 4).Intersect(NewRect(2, 1, 4, 2))
	if got != NewRect(2, 1, 2, 2) {
		t.Errorf("Intersect() = %+v, expected {2 1 2 2}", got)
	}
	if got := NewRect(0, 0, 1, 1).Intersect(NewRect(1, 0, 1, 1)); !got.Empty() {
		t.Errorf("adjacent Intersect() = %+v, expected empty", got)
	}
}

func TestRectEach(t *testing.T) {
	var cells []Point
	NewRect(1, 2, 2, 2).Each(func(p Point) { cells = append(cells, p) })

	expected := []Point{{1, 2}, {2, 2}, {1, 3}, {2, 3}}
	if len(cells) != len(expected) {
		t.Fatalf("Each visited %d cells, expected %d", len(cells), len(expected))
	}
	for i := range expected {
		if cells[i] != expected[i] {
			t.Errorf("cell %d = %v, expected %v", i, cells[i], expected[i])
		}
	}
}
