package sprites

import (
	"testing"

	"github.com/vovakirdan/termgame/internal/core"
	"github.com/vovakirdan/termgame/internal/engine"
)

func render(t *testing.T, sc *engine.Scene, w, h int) *core.Screen {
	t.Helper()
	screen := core.NewScreen(w, h)
	if _, err := sc.Render(screen); err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	return screen
}

func TestText(t *testing.T) {
	sc := engine.NewScene("test")
	txt, err := NewText("hi\nthere")
	if err != nil {
		t.Fatal(err)
	}
	if err := sc.Place(txt.Sprite, 1, 0); err != nil {
		t.Fatal(err)
	}
	screen := render(t, sc, 8, 2)
	if got := screen.Row(1); got != " there  " {
		t.Errorf("Row(1) = %q, expected %q", got, " there  ")
	}

	if _, err := NewText(""); err == nil {
		t.Error("NewText(\"\") should fail")
	}
}

func TestStyledText(t *testing.T) {
	sc := engine.NewScene("test")
	st := core.Style{Fg: core.ColorRed, Bold: true}
	txt, err := NewStyledText("ok", st)
	if err != nil {
		t.Fatal(err)
	}
	if err := sc.Place(txt.Sprite, 0, 0); err != nil {
		t.Fatal(err)
	}
	screen := render(t, sc, 3, 1)
	if got := screen.GetCell(1, 0); got.Rune != 'k' || got.Style != st {
		t.Errorf("GetCell(1, 0) = %+v, expected 'k' in %+v", got, st)
	}
}

func TestFTextFormat(t *testing.T) {
	sc := engine.NewScene("test")
	f := NewFText("You have %d points", 0)
	if err := f.Format(5); err != nil {
		t.Fatalf("Format() before placement failed: %v", err)
	}
	if err := sc.Place(f.Sprite, 0, 0); err != nil {
		t.Fatal(err)
	}
	screen := core.NewScreen(20, 1)
	_, _ = sc.Render(screen)

	if err := f.Format(12); err != nil {
		t.Fatal(err)
	}
	_, _ = sc.Render(screen)
	if got := screen.Row(0); got != "You have 12 points  " {
		t.Errorf("Row(0) = %q", got)
	}
	if f.String() != "You have 12 points" {
		t.Errorf("String() = %q", f.String())
	}
}

func TestCounter(t *testing.T) {
	sc := engine.NewScene("test")
	c := NewLabeledCounter("score: ", 9)
	if err := sc.Place(c.Sprite, 0, 0); err != nil {
		t.Fatal(err)
	}
	screen := core.NewScreen(12, 1)
	_, _ = sc.Render(screen)

	_ = c.Increment(1)
	_, _ = sc.Render(screen)
	if got := screen.Row(0); got != "score: 10   " {
		t.Errorf("Row(0) = %q", got)
	}

	// shrinking text erases the leftover cell
	_ = c.Decrement(5)
	_, _ = sc.Render(screen)
	if got := screen.Row(0); got != "score: 5    " {
		t.Errorf("Row(0) = %q", got)
	}
	if c.Get() != 5 {
		t.Errorf("Get() = %d, expected 5", c.Get())
	}
}

func TestGauge(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "[    ]"},
		{5, "[##  ]"},
		{10, "[####]"},
		{15, "[####]"},
		{-3, "[    ]"},
	}

	for _, tt := range tests {
		g := NewGauge(10, 4, tt.value)
		surf, err := g.NewSurface()
		if err != nil {
			t.Fatal(err)
		}
		if got := surf.Lines()[0]; got != tt.want {
			t.Errorf("gauge at %v = %q, expected %q", tt.value, got, tt.want)
		}
	}
}

func TestTextInputEditing(t *testing.T) {
	sc := engine.NewScene("test")
	in := NewTextInput(nil)
	if err := sc.Place(in.Sprite, 0, 0); err != nil {
		t.Fatal(err)
	}

	keys := []core.Key{'a', 'c', core.KeyLeft, 'b', core.KeyEnd, 'd', core.KeyHome, core.KeyDelete, core.KeyEnd, core.KeyBackspace}
	for _, k := range keys {
		if !in.Process(core.KeyEvent(k)) {
			t.Errorf("Process(%v) not consumed", k)
		}
	}
	if in.Value() != "bc" {
		t.Errorf("Value() = %q, expected %q", in.Value(), "bc")
	}
	if in.Cursor() != 2 {
		t.Errorf("Cursor() = %d, expected 2", in.Cursor())
	}

	if in.Process(core.UserEvent(1)) {
		t.Error("user events should not be consumed")
	}
	if in.Process(core.KeyEvent(core.KeyEscape)) {
		t.Error("escape should not be consumed")
	}
}

func TestTextInputWithDispatch(t *testing.T) {
	digits := NewTextInput(func(r rune) bool { return r >= '0' && r <= '9' })
	events := []core.Event{
		core.KeyEvent('4'),
		core.KeyEvent('x'),
		core.KeyEvent('2'),
		core.KeyEvent(core.KeyEnter),
	}
	rest := engine.Dispatch(events, digits)
	if digits.Value() != "42" {
		t.Errorf("Value() = %q, expected %q", digits.Value(), "42")
	}
	if len(rest) != 2 || !rest[0].IsKey('x') || !rest[1].IsKey(core.KeyEnter) {
		t.Errorf("unconsumed = %+v, expected x and enter", rest)
	}
}

func TestBouncingBall(t *testing.T) {
	sc := engine.NewScene("test", engine.WithViewport(5, 3))
	ball := NewBouncingBall(1, 1, sc.Edges().All()...)
	bounces := 0
	ball.Bounced = func([]engine.Collision) { bounces++ }
	if err := sc.Place(ball.Sprite, 0, 0); err != nil {
		t.Fatal(err)
	}

	screen := core.NewScreen(5, 3)
	for i := 0; i < 20; i++ {
		if _, err := sc.Step(nil, screen); err != nil {
			t.Fatal(err)
		}
		pos, _ := ball.Pos()
		if pos.X < 0 || pos.X > 4 || pos.Y < 0 || pos.Y > 2 {
			t.Fatalf("tick %d: ball escaped to %v", i, pos)
		}
	}
	if bounces == 0 {
		t.Error("ball never bounced")
	}
	if got := countRune(screen.String(), 'O'); got != 1 {
		t.Errorf("screen shows %d balls, expected 1:\n%s", got, screen.String())
	}
}

func countRune(s string, r rune) int {
	n := 0
	for _, c := range s {
		if c == r {
			n++
		}
	}
	return n
}

func TestStatsDisplay(t *testing.T) {
	p := engine.NewProfiler(4)
	d := NewStatsDisplay(p)
	sc := engine.NewScene("test")
	if err := sc.Place(d.Sprite, 0, 0); err != nil {
		t.Fatal(err)
	}
	r, _ := d.Rect()
	if r.H != 2 {
		t.Errorf("display height = %d, expected 2", r.H)
	}
}
