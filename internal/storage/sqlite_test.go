package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	// Save some scores
	_, err := store.SaveScore("shooter", 100)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("shooter", 50)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("shooter", 200)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Different demo
	_, err = store.SaveScore("balls", 500)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Retrieve top scores for shooter
	scores, err := store.TopScores("shooter", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 {
		t.Errorf("Expected highest score to be 200, got %d", scores[0].Score)
	}
	if scores[1].Score != 100 {
		t.Errorf("Expected second score to be 100, got %d", scores[1].Score)
	}
	if scores[2].Score != 50 {
		t.Errorf("Expected third score to be 50, got %d", scores[2].Score)
	}

	// Retrieve top scores for balls
	ballsScores, err := store.TopScores("balls", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(ballsScores) != 1 {
		t.Errorf("Expected 1 balls score, got %d", len(ballsScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	// Save 5 scores
	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	// Request only top 3
	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	// No scores yet
	high, err := store.HighScore("shooter")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty demo, got %d", high)
	}

	// Add scores
	store.SaveScore("shooter", 100)
	store.SaveScore("shooter", 300)
	store.SaveScore("shooter", 200)

	high, err = store.HighScore("shooter")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("shooter", 100)
	store.SaveScore("shooter", 200)
	store.SaveScore("balls", 300)

	// Clear only shooter scores
	err := store.ClearScores("shooter")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	// Shooter should be empty
	shooterScores, _ := store.TopScores("shooter", 10)
	if len(shooterScores) != 0 {
		t.Errorf("Expected 0 shooter scores after clear, got %d", len(shooterScores))
	}

	// Balls should still have scores
	ballsScores, _ := store.TopScores("balls", 10)
	if len(ballsScores) != 1 {
		t.Errorf("Balls scores should not be affected by clearing shooter")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	// Add many scores
	for i := 0; i < 20; i++ {
		store.SaveScore("test", i*10)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	// Test that ~ expansion works (we won't actually write to home)
	// Just verify the function doesn't crash
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestBenchRuns(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestBenchRun("balls")
	if err != nil {
		t.Fatalf("BestBenchRun() failed: %v", err)
	}
	if best != nil {
		t.Errorf("BestBenchRun() = %+v before any run, expected nil", best)
	}

	runs := []BenchRun{
		{DemoID: "balls", Ticks: 300, AverageFPS: 850.5, LiveFPS: 790, Sprites: 31, Writes: 64, Elapsed: 350 * time.Millisecond},
		{DemoID: "balls", Ticks: 300, AverageFPS: 910.25, LiveFPS: 900, Sprites: 31, Writes: 60, Elapsed: 330 * time.Millisecond},
		{DemoID: "shooter", Ticks: 100, AverageFPS: 2000, LiveFPS: 1900, Sprites: 5, Writes: 12, Elapsed: 50 * time.Millisecond},
	}
	for _, r := range runs {
		if _, err := store.SaveBenchRun(r); err != nil {
			t.Fatalf("SaveBenchRun() failed: %v", err)
		}
	}

	best, err = store.BestBenchRun("balls")
	if err != nil {
		t.Fatalf("BestBenchRun() failed: %v", err)
	}
	if best == nil || best.AverageFPS != 910.25 || best.Elapsed != 330*time.Millisecond {
		t.Errorf("BestBenchRun() = %+v, expected the 910.25 fps run", best)
	}

	recent, err := store.RecentBenchRuns("balls", 10)
	if err != nil {
		t.Fatalf("RecentBenchRuns() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].AverageFPS != 910.25 {
		t.Errorf("RecentBenchRuns(balls) = %+v, expected 2 runs newest first", recent)
	}

	all, err := store.RecentBenchRuns("", 10)
	if err != nil {
		t.Fatalf("RecentBenchRuns() failed: %v", err)
	}
	if len(all) != 3 || all[0].DemoID != "shooter" {
		t.Errorf("RecentBenchRuns(\"\") = %+v, expected all 3 runs", all)
	}
}

func TestDemoStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("shooter", 10)
	store.SaveScore("shooter", 30)
	store.SaveScore("balls", 7)

	stats, err := store.GetDemoStats("shooter")
	if err != nil {
		t.Fatalf("GetDemoStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 30 || stats.AvgScore != 20 || stats.TotalScore != 40 {
		t.Errorf("GetDemoStats() = %+v, expected 2 plays, high 30, avg 20, total 40", stats)
	}

	empty, err := store.GetDemoStats("none")
	if err != nil {
		t.Fatalf("GetDemoStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("GetDemoStats(none) = %+v, expected zero stats", empty)
	}

	all, err := store.GetAllDemosStats()
	if err != nil {
		t.Fatalf("GetAllDemosStats() failed: %v", err)
	}
	if len(all) != 2 || all["balls"].HighScore != 7 {
		t.Errorf("GetAllDemosStats() = %v, expected stats for 2 demos", all)
	}
}
