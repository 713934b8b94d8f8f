// Package tcellterm renders scenes through a tcell screen and turns tcell
// key events into engine input.
package tcellterm

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/termgame/internal/core"
)

// Writer draws cells onto a tcell screen. Nothing reaches the terminal until
// Flush, which calls Show once per frame.
type Writer struct {
	screen tcell.Screen
	styles map[core.Style]tcell.Style
}

// NewWriter wraps an initialized screen.
func NewWriter(screen tcell.Screen) *Writer {
	return &Writer{screen: screen, styles: make(map[core.Style]tcell.Style)}
}

// Open creates and initializes the terminal screen.
func Open() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tcellterm: failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("tcellterm: failed to init screen: %w", err)
	}
	screen.HideCursor()
	screen.Clear()
	return screen, nil
}

// WriteCell sets one cell in tcell's back buffer.
func (w *Writer) WriteCell(x, y int, c core.Cell) {
	r := c.Rune
	if c.Transparent() {
		r = ' '
	}
	w.screen.SetContent(x, y, r, nil, w.style(c.Style))
}

// Flush shows the frame.
func (w *Writer) Flush() error {
	w.screen.Show()
	return nil
}

// Clear blanks the screen on the next Show.
func (w *Writer) Clear() error {
	w.screen.Clear()
	return nil
}

// Size returns the screen size.
func (w *Writer) Size() (int, int) {
	return w.screen.Size()
}

func (w *Writer) style(st core.Style) tcell.Style {
	if ts, ok := w.styles[st]; ok {
		return ts
	}
	ts := Style(st)
	w.styles[st] = ts
	return ts
}

// Style converts an engine style to a tcell style.
func Style(st core.Style) tcell.Style {
	return tcell.StyleDefault.
		Foreground(Color(st.Fg)).
		Background(Color(st.Bg)).
		Bold(st.Bold).
		Reverse(st.Inverted)
}

// Color converts an engine color to a tcell palette color.
func Color(c core.Color) tcell.Color {
	n := c.ANSI256()
	if n < 0 {
		return tcell.ColorDefault
	}
	return tcell.PaletteColor(n)
}
