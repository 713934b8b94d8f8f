package engine

import (
	"strings"

	"github.com/vovakirdan/termgame/internal/core"
)

// Surface is an immutable grid of styled cells. A cell whose rune is zero is
// transparent: lower sprites show through it. Ragged lines are padded with
// transparent cells; spaces are opaque.
//
// Surfaces are values. Methods that "modify" a surface return a new one, so
// a sprite's surface is never mutated in place.
type Surface struct {
	w, h  int
	cells []core.Cell
}

// NewSurface builds a surface from text lines. Each argument may itself
// contain newlines. Every rune occupies one cell.
func NewSurface(lines ...string) (Surface, error) {
	var rows [][]rune
	for _, l := range lines {
		for _, part := range strings.Split(l, "\n") {
			rows = append(rows, []rune(part))
		}
	}

	w := 0
	for _, r := range rows {
		w = max(w, len(r))
	}
	h := len(rows)
	if w <= 0 || h <= 0 {
		return Surface{}, &SurfaceError{Width: w, Height: h}
	}

	cells := make([]core.Cell, w*h)
	for y, r := range rows {
		for x, ch := range r {
			cells[y*w+x] = core.Cell{Rune: ch}
		}
	}
	return Surface{w: w, h: h, cells: cells}, nil
}

// MustSurface is like NewSurface but panics on an invalid surface.
// Intended for package-level sprite templates.
func MustSurface(lines ...string) Surface {
	s, err := NewSurface(lines...)
	if err != nil {
		panic(err)
	}
	return s
}

// BlankSurface returns a w x h surface of opaque spaces.
func BlankSurface(w, h int) (Surface, error) {
	if w <= 0 || h <= 0 {
		return Surface{}, &SurfaceError{Width: w, Height: h}
	}
	cells := make([]core.Cell, w*h)
	for i := range cells {
		cells[i] = core.BlankCell
	}
	return Surface{w: w, h: h, cells: cells}, nil
}

// SurfaceFromCells copies cells (row-major, len w*h) into a new surface.
func SurfaceFromCells(w, h int, cells []core.Cell) (Surface, error) {
	if w <= 0 || h <= 0 || len(cells) != w*h {
		return Surface{}, &SurfaceError{Width: w, Height: h}
	}
	c := make([]core.Cell, len(cells))
	copy(c, cells)
	return Surface{w: w, h: h, cells: c}, nil
}

// Width returns the number of columns.
func (s Surface) Width() int { return s.w }

// Height returns the number of rows.
func (s Surface) Height() int { return s.h }

// IsZero reports whether s is the zero Surface.
func (s Surface) IsZero() bool { return s.cells == nil }

// validate rejects surfaces of zero or negative extent.
func (s Surface) validate() error {
	if s.w <= 0 || s.h <= 0 || len(s.cells) != s.w*s.h {
		return &SurfaceError{Width: s.w, Height: s.h}
	}
	return nil
}

// At returns the cell at (x, y) relative to the surface origin.
// Coordinates outside the surface are transparent.
func (s Surface) At(x, y int) core.Cell {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return core.Cell{}
	}
	return s.cells[y*s.w+x]
}

// WithStyle returns a copy of s with every opaque cell restyled.
func (s Surface) WithStyle(st core.Style) Surface {
	out := s.clone()
	for i, c := range out.cells {
		if !c.Transparent() {
			out.cells[i].Style = st
		}
	}
	return out
}

// Transparent returns a copy of s in which every occurrence of r lets lower
// layers show through.
func (s Surface) Transparent(r rune) Surface {
	out := s.clone()
	for i, c := range out.cells {
		if c.Rune == r {
			out.cells[i] = core.Cell{}
		}
	}
	return out
}

// Lines returns the surface as text. Transparent cells read as spaces.
func (s Surface) Lines() []string {
	lines := make([]string, s.h)
	for y := 0; y < s.h; y++ {
		var sb strings.Builder
		for x := 0; x < s.w; x++ {
			r := s.cells[y*s.w+x].Rune
			if r == 0 {
				r = ' '
			}
			sb.WriteRune(r)
		}
		lines[y] = sb.String()
	}
	return lines
}

// Equal reports whether two surfaces have identical size and cells.
func (s Surface) Equal(o Surface) bool {
	if s.w != o.w || s.h != o.h || len(s.cells) != len(o.cells) {
		return false
	}
	for i := range s.cells {
		if s.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

func (s Surface) clone() Surface {
	c := make([]core.Cell, len(s.cells))
	copy(c, s.cells)
	return Surface{w: s.w, h: s.h, cells: c}
}
