package ansi

import (
	"io"
	"unicode/utf8"

	"github.com/vovakirdan/termgame/internal/core"
)

// Decode turns raw terminal input into key events. It returns the events and
// the number of bytes consumed; an incomplete escape sequence or UTF-8 rune
// at the end of buf is left unconsumed unless final is set, in which case a
// dangling ESC is reported as the escape key.
func Decode(buf []byte, final bool) ([]core.Event, int) {
	var events []core.Event
	i := 0
	for i < len(buf) {
		b := buf[i]

		if b == '\x1b' {
			k, n, complete := decodeEscape(buf[i:])
			if !complete && !final {
				break
			}
			if !complete {
				k, n = core.KeyEscape, 1
			}
			if k != core.KeyNone {
				events = append(events, core.KeyEvent(k))
			}
			i += n
			continue
		}

		if b < utf8.RuneSelf {
			if k, ok := controlKey(b); ok {
				if k != core.KeyNone {
					events = append(events, core.KeyEvent(k))
				}
			} else {
				events = append(events, core.KeyEvent(core.Key(b)))
			}
			i++
			continue
		}

		if !utf8.FullRune(buf[i:]) && !final {
			break
		}
		r, n := utf8.DecodeRune(buf[i:])
		if r != utf8.RuneError {
			events = append(events, core.KeyEvent(core.Key(r)))
		}
		i += n
	}
	return events, i
}

func controlKey(b byte) (core.Key, bool) {
	switch b {
	case '\r', '\n':
		return core.KeyEnter, true
	case '\t':
		return core.KeyTab, true
	case '\b', 0x7f:
		return core.KeyBackspace, true
	case 0x03:
		return core.KeyCtrlC, true
	}
	if b < ' ' {
		return core.KeyNone, true
	}
	return 0, false
}

// csiKeys maps the final byte of "ESC [ X" and "ESC O X" sequences.
var csiKeys = map[byte]core.Key{
	'A': core.KeyUp,
	'B': core.KeyDown,
	'C': core.KeyRight,
	'D': core.KeyLeft,
	'H': core.KeyHome,
	'F': core.KeyEnd,
}

// tildeKeys maps the parameter of "ESC [ N ~" sequences.
var tildeKeys = map[int]core.Key{
	1: core.KeyHome,
	3: core.KeyDelete,
	4: core.KeyEnd,
	5: core.KeyPageUp,
	6: core.KeyPageDown,
	7: core.KeyHome,
	8: core.KeyEnd,
}

// decodeEscape decodes a sequence starting with ESC. Unknown complete
// sequences decode to KeyNone so they are skipped whole.
func decodeEscape(buf []byte) (k core.Key, n int, complete bool) {
	if len(buf) < 2 {
		return core.KeyNone, 0, false
	}
	switch buf[1] {
	case '[':
		// CSI: parameters then a final byte in 0x40..0x7e
		param, havePrefix := 0, false
		for j := 2; j < len(buf); j++ {
			c := buf[j]
			switch {
			case c >= '0' && c <= '9':
				if !havePrefix {
					param = param*10 + int(c-'0')
				}
			case c == ';':
				// modifiers follow; keep the first parameter
				havePrefix = true
			case c >= 0x40 && c <= 0x7e:
				if c == '~' {
					return tildeKeys[param], j + 1, true
				}
				return csiKeys[c], j + 1, true
			default:
				return core.KeyNone, j + 1, true
			}
		}
		return core.KeyNone, 0, false
	case 'O':
		if len(buf) < 3 {
			return core.KeyNone, 0, false
		}
		return csiKeys[buf[2]], 3, true
	case '\x1b':
		return core.KeyEscape, 1, true
	default:
		// ESC followed by a plain key: report the escape and let the key
		// decode on its own
		return core.KeyEscape, 1, true
	}
}

// Source reads key presses from a reader on a background goroutine and
// hands them out once per tick.
type Source struct {
	ch      chan byte
	pending []byte
	closed  bool
}

// NewSource starts reading r. The goroutine ends when r returns an error.
func NewSource(r io.Reader) *Source {
	s := &Source{ch: make(chan byte, 256)}
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := r.Read(buf)
			for _, b := range buf[:n] {
				s.ch <- b
			}
			if err != nil {
				close(s.ch)
				return
			}
		}
	}()
	return s
}

// Poll drains the bytes read so far without blocking and decodes them.
func (s *Source) Poll() []core.Event {
drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			s.pending = append(s.pending, b)
		default:
			break drain
		}
	}

	// bytes arrive in one burst per key, so an ESC still alone after a
	// drain is the escape key itself
	events, n := Decode(s.pending, true)
	s.pending = s.pending[n:]
	return events
}

// Closed reports whether the reader has ended.
func (s *Source) Closed() bool { return s.closed }
