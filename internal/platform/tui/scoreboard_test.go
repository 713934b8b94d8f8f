package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/termgame/internal/storage"
)

func TestScoreboardLoadsScoresAndBench(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	for _, score := range []int{10, 30, 20} {
		if _, err := store.SaveScore(tapID, score); err != nil {
			t.Fatal(err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	for i, d := range m.demos {
		if d.ID == tapID {
			m.demoCursor = i
		}
	}
	m.loadScores(tapID)

	if len(m.scores) != 3 || m.scores[0].Score != 30 {
		t.Fatalf("scores = %v, expected 3 scores led by 30", m.scores)
	}
	if got := m.benchLine(); !strings.Contains(got, "not benched yet") {
		t.Errorf("benchLine() = %q before any bench run", got)
	}
	if view := m.View(); !strings.Contains(view, "HIGH SCORES - Tap") {
		t.Errorf("View() = %q, expected the demo title", view)
	}

	_, err = store.SaveBenchRun(storage.BenchRun{
		DemoID:     tapID,
		Ticks:      300,
		AverageFPS: 512,
		Sprites:    40,
		Elapsed:    time.Second,
	})
	if err != nil {
		t.Fatal(err)
	}
	m.loadScores(tapID)
	if got := m.benchLine(); !strings.Contains(got, "512 fps over 300 ticks, 40 sprites") {
		t.Errorf("benchLine() = %q, expected the best run", got)
	}
}

func TestScoreboardToggleBenchRuns(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	m := NewScoreboardModel(store, 100, 30)
	for i, d := range m.demos {
		if d.ID == tapID {
			m.demoCursor = i
		}
	}
	m.loadScores(tapID)

	next, _ := m.Update(runes("v"))
	m = next.(ScoreboardModel)
	if m.view != viewBenchRuns {
		t.Fatalf("view = %v after v, expected bench runs", m.view)
	}
	if view := m.View(); !strings.Contains(view, "No bench runs yet") {
		t.Errorf("View() = %q, expected the empty bench message", view)
	}

	for _, fps := range []float64{100, 300} {
		if _, err := store.SaveBenchRun(storage.BenchRun{DemoID: tapID, Ticks: 50, AverageFPS: fps}); err != nil {
			t.Fatal(err)
		}
	}
	m.loadScores(tapID)
	if len(m.runs) != 2 {
		t.Fatalf("runs = %d, expected 2", len(m.runs))
	}
	if view := m.View(); !strings.Contains(view, "BENCH RUNS - Tap") || !strings.Contains(view, "Avg FPS") {
		t.Errorf("View() = %q, expected the bench table", view)
	}

	next, _ = m.Update(runes("v"))
	if m = next.(ScoreboardModel); m.view != viewHighScores {
		t.Errorf("view = %v after second v, expected high scores", m.view)
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if len(m.scores) != 0 {
		t.Errorf("scores = %v without a store, expected none", m.scores)
	}
	if view := m.View(); !strings.Contains(view, "No scores recorded yet") {
		t.Errorf("View() = %q, expected the empty message", view)
	}
}
