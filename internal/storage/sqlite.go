// Package storage provides SQLite-based persistence for demo high scores and
// bench runs. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	DemoID    string
	Score     int
	CreatedAt time.Time
}

// BenchRun is the outcome of one headless bench run of a demo.
type BenchRun struct {
	ID         int64
	DemoID     string
	Ticks      int
	AverageFPS float64
	LiveFPS    float64 // FPS over the last sample window
	Sprites    int     // sprites alive at the end of the run
	Writes     int     // cell writes of the last tick
	Elapsed    time.Duration
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			demo_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_demo_id ON scores(demo_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(demo_id, score DESC);

		CREATE TABLE IF NOT EXISTS bench_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			demo_id TEXT NOT NULL,
			ticks INTEGER NOT NULL,
			average_fps REAL NOT NULL,
			live_fps REAL NOT NULL,
			sprites INTEGER NOT NULL DEFAULT 0,
			writes INTEGER NOT NULL DEFAULT 0,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_bench_runs_demo_id ON bench_runs(demo_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// parseTime reads a DATETIME column, which the driver may return as either a
// time.Time or a string.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// SaveScore records a new score for the given demo.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(demoID string, score int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (demo_id, score) VALUES (?, ?)",
		demoID, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for the given demo.
// Results are ordered by score descending.
func (s *Store) TopScores(demoID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(
		`SELECT id, demo_id, score, created_at
		 FROM scores
		 WHERE demo_id = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		demoID, limit,
	)
}

// AllScores retrieves all scores for the given demo (no limit).
func (s *Store) AllScores(demoID string) ([]ScoreEntry, error) {
	return s.queryScores(
		`SELECT id, demo_id, score, created_at
		 FROM scores
		 WHERE demo_id = ?
		 ORDER BY score DESC`,
		demoID,
	)
}

func (s *Store) queryScores(query string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.DemoID, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given demo.
// Returns 0 if no scores exist.
func (s *Store) HighScore(demoID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE demo_id = ?",
		demoID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given demo.
func (s *Store) ClearScores(demoID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE demo_id = ?", demoID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// SaveBenchRun records a bench run.
// Returns the ID of the inserted record.
func (s *Store) SaveBenchRun(run BenchRun) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO bench_runs
		 (demo_id, ticks, average_fps, live_fps, sprites, writes, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.DemoID,
		run.Ticks,
		run.AverageFPS,
		run.LiveFPS,
		run.Sprites,
		run.Writes,
		run.Elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save bench run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const benchColumns = `id, demo_id, ticks, average_fps, live_fps, sprites, writes, elapsed_ms, created_at`

func scanBenchRun(row interface{ Scan(...any) error }) (BenchRun, error) {
	var (
		run       BenchRun
		elapsedMS int64
		createdAt any
	)
	err := row.Scan(
		&run.ID,
		&run.DemoID,
		&run.Ticks,
		&run.AverageFPS,
		&run.LiveFPS,
		&run.Sprites,
		&run.Writes,
		&elapsedMS,
		&createdAt,
	)
	run.Elapsed = time.Duration(elapsedMS) * time.Millisecond
	run.CreatedAt = parseTime(createdAt)
	return run, err
}

// RecentBenchRuns retrieves the most recent bench runs of a demo, newest
// first. An empty demoID lists runs of every demo.
func (s *Store) RecentBenchRuns(demoID string, limit int) ([]BenchRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+benchColumns+`
		 FROM bench_runs
		 WHERE ? = '' OR demo_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		demoID, demoID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query bench runs: %w", err)
	}
	defer rows.Close()

	var runs []BenchRun
	for rows.Next() {
		run, err := scanBenchRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestBenchRun returns the run of a demo with the highest average FPS, or
// nil if the demo was never benched.
func (s *Store) BestBenchRun(demoID string) (*BenchRun, error) {
	run, err := scanBenchRun(s.db.QueryRow(
		`SELECT `+benchColumns+`
		 FROM bench_runs
		 WHERE demo_id = ?
		 ORDER BY average_fps DESC
		 LIMIT 1`,
		demoID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query bench run: %w", err)
	}
	return &run, nil
}

// DemoStats contains aggregated score statistics for a demo.
type DemoStats struct {
	DemoID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// GetDemoStats retrieves aggregated statistics for a specific demo.
func (s *Store) GetDemoStats(demoID string) (*DemoStats, error) {
	stats := &DemoStats{DemoID: demoID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM scores WHERE demo_id = ?`,
		demoID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get demo stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE demo_id = ? ORDER BY created_at DESC LIMIT 1`,
		demoID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllDemosStats retrieves statistics for all demos that have been played.
func (s *Store) GetAllDemosStats() (map[string]*DemoStats, error) {
	rows, err := s.db.Query(
		`SELECT demo_id, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(created_at)
		 FROM scores
		 GROUP BY demo_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all demos stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*DemoStats)
	for rows.Next() {
		var st DemoStats
		var lastPlayed any
		if err := rows.Scan(&st.DemoID, &st.GamesCount, &st.HighScore, &st.AvgScore, &st.TotalScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.DemoID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
