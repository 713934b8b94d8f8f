package sprites

import (
	"unicode"

	"github.com/vovakirdan/termgame/internal/core"
	"github.com/vovakirdan/termgame/internal/engine"
)

// TextInput is a one-line editable field. Feed it events through Process,
// usually via engine.Dispatch. An empty field is drawn as a single space so
// it always has a surface.
type TextInput struct {
	*engine.Sprite
	value []rune
	cur   int
	allow func(rune) bool
}

// NewTextInput creates an empty field. A nil allow accepts printable runes.
func NewTextInput(allow func(rune) bool) *TextInput {
	if allow == nil {
		allow = unicode.IsPrint
	}
	in := &TextInput{allow: allow}
	in.Sprite = engine.NewSprite(engine.Surface{}, in)
	return in
}

// NewSurface renders the current value.
func (in *TextInput) NewSurface() (engine.Surface, error) {
	if len(in.value) == 0 {
		return engine.NewSurface(" ")
	}
	return engine.NewSurface(string(in.value))
}

// Value returns the text entered so far.
func (in *TextInput) Value() string { return string(in.value) }

// Cursor returns the insertion index.
func (in *TextInput) Cursor() int { return in.cur }

// SetValue replaces the text, clamping the cursor.
func (in *TextInput) SetValue(s string) error {
	in.value = []rune(s)
	in.cur = min(in.cur, len(in.value))
	return refresh(in.Sprite)
}

// Process handles editing keys and reports whether e was consumed.
func (in *TextInput) Process(e core.Event) bool {
	if e.Kind != core.EventKey {
		return false
	}
	switch e.Key {
	case core.KeyLeft:
		in.cur = max(0, in.cur-1)
	case core.KeyRight:
		in.cur = min(len(in.value), in.cur+1)
	case core.KeyHome, core.KeyUp:
		in.cur = 0
	case core.KeyEnd, core.KeyDown:
		in.cur = len(in.value)
	case core.KeyBackspace:
		if in.cur > 0 {
			in.value = append(in.value[:in.cur-1], in.value[in.cur:]...)
			in.cur--
			_ = refresh(in.Sprite)
		}
	case core.KeyDelete:
		if in.cur < len(in.value) {
			in.value = append(in.value[:in.cur], in.value[in.cur+1:]...)
			_ = refresh(in.Sprite)
		}
	default:
		r := rune(e.Key)
		if !e.Key.Printable() || !in.allow(r) {
			return false
		}
		in.value = append(in.value[:in.cur], append([]rune{r}, in.value[in.cur:]...)...)
		in.cur++
		_ = refresh(in.Sprite)
	}
	return true
}
