package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/termgame/internal/storage"
)

func sendMenu(t *testing.T, m MenuModel, msg tea.Msg) (MenuModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(MenuModel), cmd
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(nil, tapConfig)
	if len(m.items) == 0 {
		t.Fatal("menu has no items")
	}

	// the cursor stays on the list
	m, _ = sendMenu(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor = %d, expected 0", m.cursor)
	}
	for range m.items {
		m, _ = sendMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != len(m.items)-1 {
		t.Errorf("cursor = %d, expected %d", m.cursor, len(m.items)-1)
	}

	m, cmd := sendMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() == nil || m.Selected().DemoID != m.items[len(m.items)-1].DemoID {
		t.Errorf("Selected() = %v, expected the last item", m.Selected())
	}
	if !isQuit(cmd) {
		t.Error("selecting should end the menu program")
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := NewMenuModel(nil, tapConfig)
	m, _ = sendMenu(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("WantsScoreboard() = false after tab")
	}

	m = NewMenuModel(nil, tapConfig)
	m, _ = sendMenu(t, m, runes("q"))
	if !m.IsQuitting() {
		t.Error("IsQuitting() = false after q")
	}
}

func TestMenuShowsHighScore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	if _, err := store.SaveScore(tapID, 42); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveBenchRun(storage.BenchRun{DemoID: tapID, Ticks: 10, AverageFPS: 512}); err != nil {
		t.Fatal(err)
	}

	m := NewMenuModel(store, tapConfig)
	m, _ = sendMenu(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	if got := m.Config().ScreenW; got != 60 {
		t.Errorf("Config().ScreenW = %d, expected 60", got)
	}
	if view := m.View(); !strings.Contains(view, "best 42, 1 play, 512 fps") {
		t.Errorf("View() = %q, expected the demo stats", view)
	}
}

func TestMenuItemSummary(t *testing.T) {
	tests := []struct {
		item     MenuItem
		expected string
	}{
		{MenuItem{}, ""},
		{MenuItem{HighScore: 7, Plays: 3}, "(best 7, 3 plays)"},
		{MenuItem{BenchFPS: 99.6}, "(100 fps)"},
	}
	for _, tt := range tests {
		if got := tt.item.summary(); got != tt.expected {
			t.Errorf("summary(%+v) = %q, expected %q", tt.item, got, tt.expected)
		}
	}
}

func TestMenuResult(t *testing.T) {
	m := NewMenuModel(nil, tapConfig)
	if res := m.Result(); !res.Quit {
		t.Errorf("Result() = %+v, expected Quit with no choice", res)
	}
	m, _ = sendMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if res := m.Result(); res.DemoID != m.items[0].DemoID || res.Quit {
		t.Errorf("Result() = %+v, expected demo %q", res, m.items[0].DemoID)
	}
}

func TestSessionFlow(t *testing.T) {
	s := NewSessionModel(nil, tapConfig, nil)
	update := func(msg tea.Msg) tea.Cmd {
		next, cmd := s.Update(msg)
		s = next.(SessionModel)
		return cmd
	}

	for i, item := range s.menu.items {
		if item.DemoID == tapID {
			s.menu.cursor = i
		}
	}
	if cmd := update(tea.KeyMsg{Type: tea.KeyEnter}); isQuit(cmd) {
		t.Fatal("selecting a demo should not end the session")
	}
	if s.view != viewGame {
		t.Fatalf("view = %v, expected the demo", s.view)
	}

	update(tea.KeyMsg{Type: tea.KeyEnter})
	update(TickMsg{ID: s.game.id})
	if !s.game.State().GameOver {
		t.Fatal("demo not over after Enter")
	}
	update(tea.KeyMsg{Type: tea.KeyEsc})
	if s.view != viewMenu {
		t.Errorf("view = %v after esc, expected the menu", s.view)
	}

	update(tea.KeyMsg{Type: tea.KeyTab})
	if s.view != viewScores {
		t.Fatalf("view = %v after tab, expected the scoreboard", s.view)
	}
	update(tea.KeyMsg{Type: tea.KeyEsc})
	if s.view != viewMenu {
		t.Errorf("view = %v after esc, expected the menu", s.view)
	}

	if cmd := update(runes("q")); !isQuit(cmd) {
		t.Error("q on the menu should end the session")
	}
}
