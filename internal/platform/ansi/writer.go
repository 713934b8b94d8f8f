// Package ansi drives a terminal directly with ANSI escape sequences: a cell
// writer that batches a frame into one write, raw-mode setup through
// golang.org/x/term, and a key decoder for stdin.
package ansi

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/vovakirdan/termgame/internal/core"
)

// maxChunkSize bounds a single write to the underlying writer, which keeps
// frames flowing smoothly over SSH.
const maxChunkSize = 4096

// Writer accumulates cell writes for one frame and sends them on Flush. It
// skips cursor moves between horizontally adjacent cells and only emits SGR
// sequences when the style changes.
type Writer struct {
	buf    strings.Builder
	bufw   *bufio.Writer
	numBuf [20]byte
	offCol int
	offRow int

	// terminal state as of the end of the buffer
	cur      core.Point
	curKnown bool
	style    core.Style
}

// NewWriter creates a Writer sending to w. offsetCol and offsetRow are added
// to every cell position.
func NewWriter(w io.Writer, offsetCol, offsetRow int) *Writer {
	return &Writer{
		bufw:   bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the cell offset (e.g. after terminal resize).
func (w *Writer) SetOffset(offsetCol, offsetRow int) {
	w.offCol = offsetCol
	w.offRow = offsetRow
	w.curKnown = false
}

// WriteCell queues one cell. A transparent cell is written as a space.
func (w *Writer) WriteCell(x, y int, c core.Cell) {
	if !w.curKnown || w.cur != core.Pt(x, y) {
		w.moveCursor(x, y)
	}
	if c.Style != w.style {
		w.buf.WriteString(SGR(c.Style))
		w.style = c.Style
	}
	r := c.Rune
	if c.Transparent() {
		r = ' '
	}
	w.buf.WriteRune(r)
	w.cur = core.Pt(x+1, y)
	w.curKnown = true
}

// moveCursor appends a cursor position sequence for 0-based (x, y).
func (w *Writer) moveCursor(x, y int) {
	w.buf.WriteString("\033[")
	w.buf.Write(strconv.AppendInt(w.numBuf[:0], int64(y+w.offRow+1), 10))
	w.buf.WriteByte(';')
	w.buf.Write(strconv.AppendInt(w.numBuf[:0], int64(x+w.offCol+1), 10))
	w.buf.WriteByte('H')
}

// Flush writes the accumulated frame to the underlying writer in chunks,
// then resets the buffer.
func (w *Writer) Flush() error {
	data := w.buf.String()
	w.buf.Reset()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := w.bufw.WriteString(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return w.bufw.Flush()
}

// Clear resets attributes, clears the terminal and homes the cursor.
// Anything queued but not flushed is dropped.
func (w *Writer) Clear() error {
	w.buf.Reset()
	w.style = core.DefaultStyle
	w.curKnown = false
	if _, err := w.bufw.WriteString("\033[0m\033[H\033[2J"); err != nil {
		return err
	}
	return w.bufw.Flush()
}

// Pending returns the bytes queued since the last Flush.
func (w *Writer) Pending() string {
	return w.buf.String()
}

// SGR returns the select-graphic-rendition sequence for st, starting from a
// reset so no attribute of the previous style leaks through.
func SGR(st core.Style) string {
	var b strings.Builder
	b.WriteString("\033[0")
	if st.Bold {
		b.WriteString(";1")
	}
	if st.Inverted {
		b.WriteString(";7")
	}
	if n := st.Fg.ANSI256(); n >= 0 {
		b.WriteString(";38;5;")
		b.WriteString(strconv.Itoa(n))
	}
	if n := st.Bg.ANSI256(); n >= 0 {
		b.WriteString(";48;5;")
		b.WriteString(strconv.Itoa(n))
	}
	b.WriteByte('m')
	return b.String()
}
