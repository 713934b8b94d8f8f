package tcellterm

import (
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/termgame/internal/core"
)

// Source collects tcell events on a background goroutine and hands the key
// presses out once per tick.
type Source struct {
	events   chan tcell.Event
	done     chan struct{}
	onResize func(w, h int)
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// OnResize registers fn to run from Poll when the terminal was resized. It
// runs on the polling goroutine, so it may safely call Game.Resize.
func OnResize(fn func(w, h int)) SourceOption {
	return func(s *Source) { s.onResize = fn }
}

// NewSource starts polling screen. The goroutine ends when the screen is
// finalized.
func NewSource(screen tcell.Screen, opts ...SourceOption) *Source {
	s := &Source{
		events: make(chan tcell.Event, 100),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	go func() {
		defer close(s.done)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			s.events <- ev
		}
	}()
	return s
}

// Poll drains the pending events without blocking.
func (s *Source) Poll() []core.Event {
	var out []core.Event
	for {
		select {
		case ev := <-s.events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if k := Key(ev); k != core.KeyNone {
					out = append(out, core.KeyEvent(k))
				}
			case *tcell.EventResize:
				if s.onResize != nil {
					w, h := ev.Size()
					s.onResize(w, h)
				}
			}
		default:
			return out
		}
	}
}

// Done is closed once the polling goroutine has exited.
func (s *Source) Done() <-chan struct{} { return s.done }

var namedKeys = map[tcell.Key]core.Key{
	tcell.KeyUp:         core.KeyUp,
	tcell.KeyDown:       core.KeyDown,
	tcell.KeyLeft:       core.KeyLeft,
	tcell.KeyRight:      core.KeyRight,
	tcell.KeyHome:       core.KeyHome,
	tcell.KeyEnd:        core.KeyEnd,
	tcell.KeyPgUp:       core.KeyPageUp,
	tcell.KeyPgDn:       core.KeyPageDown,
	tcell.KeyDelete:     core.KeyDelete,
	tcell.KeyBackspace:  core.KeyBackspace,
	tcell.KeyBackspace2: core.KeyBackspace,
	tcell.KeyEnter:      core.KeyEnter,
	tcell.KeyTab:        core.KeyTab,
	tcell.KeyEscape:     core.KeyEscape,
	tcell.KeyCtrlC:      core.KeyCtrlC,
}

// Key converts a tcell key event. Keys with no engine equivalent map to
// KeyNone.
func Key(ev *tcell.EventKey) core.Key {
	if ev.Key() == tcell.KeyRune {
		return core.Key(ev.Rune())
	}
	return namedKeys[ev.Key()]
}
