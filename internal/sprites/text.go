// Package sprites provides ready-made sprites built on the engine hooks:
// text labels, formatted values, gauges, a text input and a bouncing ball.
package sprites

import (
	"fmt"

	"github.com/vovakirdan/termgame/internal/core"
	"github.com/vovakirdan/termgame/internal/engine"
)

// Text is a static label.
type Text struct {
	*engine.Sprite
}

// NewText creates a label. Multi-line text is allowed.
func NewText(text string) (*Text, error) {
	surf, err := engine.NewSurface(text)
	if err != nil {
		return nil, fmt.Errorf("sprites: text %q: %w", text, err)
	}
	t := &Text{}
	t.Sprite = engine.NewSprite(surf, t)
	return t, nil
}

// NewStyledText creates a label drawn in st.
func NewStyledText(text string, st core.Style) (*Text, error) {
	t, err := NewText(text)
	if err != nil {
		return nil, err
	}
	surf := engine.MustSurface(text).WithStyle(st)
	if err := t.SetSurface(surf); err != nil {
		return nil, err
	}
	return t, nil
}

// FText is a label rendered from a format string.
type FText struct {
	*engine.Sprite
	format string
	args   []any
	style  core.Style
}

// NewFText creates a formatted label, initially showing args.
func NewFText(format string, args ...any) *FText {
	f := &FText{format: format, args: args}
	f.Sprite = engine.NewSprite(engine.Surface{}, f)
	return f
}

// NewSurface renders the current arguments.
func (f *FText) NewSurface() (engine.Surface, error) {
	surf, err := engine.NewSurface(fmt.Sprintf(f.format, f.args...))
	if err != nil {
		return surf, err
	}
	if f.style != core.DefaultStyle {
		surf = surf.WithStyle(f.style)
	}
	return surf, nil
}

// Format replaces the arguments and redraws.
func (f *FText) Format(args ...any) error {
	f.args = args
	return refresh(f.Sprite)
}

// SetTextStyle sets the style the text is drawn in.
func (f *FText) SetTextStyle(st core.Style) error {
	f.style = st
	return refresh(f.Sprite)
}

// String returns the text as currently formatted.
func (f *FText) String() string {
	return fmt.Sprintf(f.format, f.args...)
}

// refresh re-runs the surface factory of a placed sprite. Unplaced sprites
// pick the change up at placement.
func refresh(s *engine.Sprite) error {
	if !s.Placed() {
		return nil
	}
	return s.UpdateSurface()
}
