package tcellterm

import (
	"reflect"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/termgame/internal/core"
	"github.com/vovakirdan/termgame/internal/engine"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	screen.SetSize(20, 5)
	t.Cleanup(screen.Fini)
	return screen
}

func TestWriterDrawsCells(t *testing.T) {
	screen := newSimScreen(t)
	w := NewWriter(screen)

	bold := core.Style{Fg: core.ColorRed, Bold: true}
	w.WriteCell(2, 1, core.Cell{Rune: 'x', Style: bold})
	w.WriteCell(3, 1, core.Cell{})
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() failed: %v", err)
	}

	r, _, st, _ := screen.GetContent(2, 1)
	if r != 'x' {
		t.Errorf("cell (2,1) = %q, expected 'x'", r)
	}
	if st != Style(bold) {
		t.Errorf("cell (2,1) style = %v, expected %v", st, Style(bold))
	}
	if r, _, _, _ := screen.GetContent(3, 1); r != ' ' {
		t.Errorf("transparent cell = %q, expected a space", r)
	}
}

func TestWriterDrivesScene(t *testing.T) {
	screen := newSimScreen(t)
	w := NewWriter(screen)
	g := engine.NewGame(w, engine.WithSize(w.Size()))
	sc := engine.NewScene("sim")
	g.SetScene(sc)

	s := engine.NewSprite(engine.MustSurface("hi"), nil)
	if err := sc.Place(s, 4, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Tick(); err != nil {
		t.Fatalf("Tick() failed: %v", err)
	}

	for i, expected := range "hi" {
		if r, _, _, _ := screen.GetContent(4+i, 2); r != expected {
			t.Errorf("cell (%d,2) = %q, expected %q", 4+i, r, expected)
		}
	}
}

func TestColor(t *testing.T) {
	if got := Color(core.ColorDefault); got != tcell.ColorDefault {
		t.Errorf("Color(default) = %v, expected ColorDefault", got)
	}
	if got := Color(core.ColorOrange); got != tcell.PaletteColor(208) {
		t.Errorf("Color(orange) = %v, expected palette 208", got)
	}
}

func TestSourcePoll(t *testing.T) {
	screen := newSimScreen(t)
	src := NewSource(screen)

	screen.InjectKey(tcell.KeyUp, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	screen.InjectKey(tcell.KeyF1, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)

	expected := []core.Key{core.KeyUp, 'q', core.KeyEnter}
	var got []core.Key
	deadline := time.Now().Add(2 * time.Second)
	for len(got) < len(expected) && time.Now().Before(deadline) {
		for _, e := range src.Poll() {
			got = append(got, e.Key)
		}
		time.Sleep(time.Millisecond)
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("polled %v, expected %v", got, expected)
	}
}

func TestSourceEndsWithScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	src := NewSource(screen)
	screen.Fini()

	select {
	case <-src.Done():
	case <-time.After(2 * time.Second):
		t.Error("polling goroutine still running after Fini")
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		ev       *tcell.EventKey
		expected core.Key
	}{
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), core.KeyLeft},
		{tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), core.KeyBackspace},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), core.KeySpace},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), core.KeyCtrlC},
		{tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), core.KeyNone},
	}

	for _, tt := range tests {
		if got := Key(tt.ev); got != tt.expected {
			t.Errorf("Key(%v) = %v, expected %v", tt.ev.Name(), got, tt.expected)
		}
	}
}
