package core

// Key identifies a decoded key press. Printable keys use their rune; named
// keys use the negative constants below so they never collide with runes.
type Key rune

// Named keys.
const (
	KeyNone Key = -iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyDelete
	KeyBackspace
	KeyEnter
	KeyTab
	KeyEscape
	KeyCtrlC
)

// KeySpace is the space bar.
const KeySpace Key = ' '

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "none"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyHome:
		return "home"
	case KeyEnd:
		return "end"
	case KeyPageUp:
		return "pgup"
	case KeyPageDown:
		return "pgdown"
	case KeyDelete:
		return "delete"
	case KeyBackspace:
		return "backspace"
	case KeyEnter:
		return "enter"
	case KeyTab:
		return "tab"
	case KeyEscape:
		return "esc"
	case KeyCtrlC:
		return "ctrl+c"
	case KeySpace:
		return "space"
	}
	if k > 0 {
		return string(rune(k))
	}
	return "unknown"
}

// Printable reports whether the key carries a printable rune.
func (k Key) Printable() bool {
	return k >= ' ' && k != 0x7f
}

// EventKind distinguishes decoded key presses from user-posted events.
type EventKind int

const (
	EventKey EventKind = iota
	EventUser
)

// Event is one input item delivered to sprites at a tick boundary.
// The engine never interprets events; it only forwards them.
type Event struct {
	Kind EventKind
	Key  Key // set for EventKey
	Code int // set for EventUser
}

// KeyEvent builds a key press event.
func KeyEvent(k Key) Event {
	return Event{Kind: EventKey, Key: k}
}

// UserEvent builds a user event with the given code.
func UserEvent(code int) Event {
	return Event{Kind: EventUser, Code: code}
}

// IsKey reports whether e is a press of k.
func (e Event) IsKey(k Key) bool {
	return e.Kind == EventKey && e.Key == k
}

// IsUser reports whether e is a user event with the given code.
func (e Event) IsUser(code int) bool {
	return e.Kind == EventUser && e.Code == code
}
