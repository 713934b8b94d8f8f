package ansi

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Terminal owns the controlling terminal while a demo runs: raw input, an
// optional alternate screen and a hidden cursor. Restore undoes all of it.
type Terminal struct {
	in  *os.File
	out io.Writer

	fd       int
	oldState *term.State
	alt      bool
	hidden   bool
}

// Options selects the terminal modes entered by Open.
type Options struct {
	AlternateScreen bool
	HideCursor      bool
}

// Open switches in to raw mode and prepares out according to opts.
func Open(in *os.File, out io.Writer, opts Options) (*Terminal, error) {
	t := &Terminal{in: in, out: out, fd: int(in.Fd())}
	if term.IsTerminal(t.fd) {
		st, err := term.MakeRaw(t.fd)
		if err != nil {
			return nil, fmt.Errorf("ansi: failed to enable raw mode: %w", err)
		}
		t.oldState = st
	}
	if opts.AlternateScreen {
		fmt.Fprint(out, "\033[?1049h")
		t.alt = true
	}
	if opts.HideCursor {
		HideCursor(out)
		t.hidden = true
	}
	ClearScreen(out)
	return t, nil
}

// Size returns the terminal dimensions.
func (t *Terminal) Size() (width, height int, err error) {
	if f, ok := t.out.(*os.File); ok {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil {
			return w, h, nil
		}
	}
	w, h, err := term.GetSize(t.fd)
	if err != nil {
		return 0, 0, fmt.Errorf("ansi: failed to get terminal size: %w", err)
	}
	return w, h, nil
}

// Restore leaves the alternate screen, shows the cursor and restores the
// original terminal mode.
func (t *Terminal) Restore() error {
	fmt.Fprint(t.out, "\033[0m")
	if t.hidden {
		ShowCursor(t.out)
	}
	if t.alt {
		fmt.Fprint(t.out, "\033[?1049l")
	}
	if t.oldState != nil {
		if err := term.Restore(t.fd, t.oldState); err != nil {
			return fmt.Errorf("ansi: failed to restore terminal: %w", err)
		}
	}
	return nil
}

// Size returns the size of the terminal attached to stdout.
func Size() (width, height int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}
