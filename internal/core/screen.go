package core

import (
	"strings"
)

// Screen is an in-memory grid of styled cells. It mirrors what a terminal
// currently shows: terminal writers can apply cell writes to it, and the
// Bubble Tea backend renders it as its view.
//
// Screen satisfies the engine's terminal writer boundary (WriteCell + Flush),
// which makes it the reference "terminal" in tests.
type Screen struct {
	width, height int
	cells         []Cell // row-major

	writes  int
	flushes int
}

// NewScreen returns a blank screen of the given size.
func NewScreen(width, height int) *Screen {
	s := &Screen{width: width, height: height, cells: make([]Cell, width*height)}
	s.Clear()
	return s
}

// Width returns the screen width in cells.
func (s *Screen) Width() int { return s.width }

// Height returns the screen height in cells.
func (s *Screen) Height() int { return s.height }

func (s *Screen) inside(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// Resize changes the screen size. Cells in the area shared by the old and
// the new size keep their content; the rest is blank.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	old, oldW := s.cells, s.width
	keepW, keepH := min(s.width, width), min(s.height, height)

	s.width, s.height = width, height
	s.cells = make([]Cell, width*height)
	s.Clear()
	for y := range keepH {
		copy(s.cells[y*width:y*width+keepW], old[y*oldW:y*oldW+keepW])
	}
}

// Clear blanks every cell.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = BlankCell
	}
}

// Set places a default-styled rune. Positions off the screen are ignored.
func (s *Screen) Set(x, y int, r rune) {
	s.SetCell(x, y, Cell{Rune: r})
}

// SetCell places a styled cell. Positions off the screen are ignored and a
// transparent cell is stored as a blank.
func (s *Screen) SetCell(x, y int, c Cell) {
	if !s.inside(x, y) {
		return
	}
	if c.Transparent() {
		c.Rune = ' '
	}
	s.cells[y*s.width+x] = c
}

// Get returns the rune at (x, y), or a space off the screen.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at (x, y), or BlankCell off the screen.
func (s *Screen) GetCell(x, y int) Cell {
	if !s.inside(x, y) {
		return BlankCell
	}
	return s.cells[y*s.width+x]
}

// WriteCell applies one terminal write and counts it.
func (s *Screen) WriteCell(x, y int, c Cell) {
	s.writes++
	s.SetCell(x, y, c)
}

// Flush marks the end of a frame. Writes are already applied, so it only
// counts frames.
func (s *Screen) Flush() error {
	s.flushes++
	return nil
}

// Writes returns the number of WriteCell calls so far.
func (s *Screen) Writes() int { return s.writes }

// Flushes returns the number of Flush calls so far.
func (s *Screen) Flushes() int { return s.flushes }

// DrawText writes text left to right from (x, y), one rune per cell,
// clipped at the screen edge.
func (s *Screen) DrawText(x, y int, text string) {
	for _, r := range text {
		s.Set(x, y, r)
		x++
	}
}

// Row returns row y as plain text. Rows off the screen read as spaces.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y*s.width : (y+1)*s.width] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// String returns every row as plain text, joined by newlines.
func (s *Screen) String() string {
	rows := make([]string, s.height)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}
