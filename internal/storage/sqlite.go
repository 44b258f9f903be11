// Package storage provides SQLite-based persistence for Color Place: the
// player's progress record and the score history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/colorplace/internal/games/colorplace"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single finished game.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	MaxCombo  int
	Turns     int
	CreatedAt time.Time
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

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
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			max_combo INTEGER NOT NULL DEFAULT 0,
			turns INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS progress (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			total_games INTEGER NOT NULL DEFAULT 0,
			high_score INTEGER NOT NULL DEFAULT 0,
			collected_c5 INTEGER NOT NULL DEFAULT 0,
			collected_c6 INTEGER NOT NULL DEFAULT 0,
			collected_c7 INTEGER NOT NULL DEFAULT 0,
			board_clear INTEGER NOT NULL DEFAULT 0,
			combo3 INTEGER NOT NULL DEFAULT 0,
			combo4 INTEGER NOT NULL DEFAULT 0,
			combo5 INTEGER NOT NULL DEFAULT 0,
			zero_score INTEGER NOT NULL DEFAULT 0,
			row_clear INTEGER NOT NULL DEFAULT 0,
			col_clear INTEGER NOT NULL DEFAULT 0,
			cross_clear INTEGER NOT NULL DEFAULT 0,
			score_multiplier REAL NOT NULL DEFAULT 1,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS unlocked_skills (
			skill_id TEXT PRIMARY KEY
		);
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

// LoadProgress reads the progress record. A database without one yields the
// fresh-player defaults; stored values are normalized field by field.
func (s *Store) LoadProgress() (colorplace.Progress, error) {
	p := colorplace.DefaultProgress()

	err := s.db.QueryRow(
		`SELECT total_games, high_score, collected_c5, collected_c6, collected_c7,
		        board_clear, combo3, combo4, combo5,
		        zero_score, row_clear, col_clear, cross_clear, score_multiplier
		 FROM progress WHERE id = 1`,
	).Scan(
		&p.TotalGames, &p.HighScore,
		&p.ColorCollected.C5, &p.ColorCollected.C6, &p.ColorCollected.C7,
		&p.Achievements.BoardClear, &p.Achievements.Combo3, &p.Achievements.Combo4, &p.Achievements.Combo5,
		&p.Hidden.ZeroScore, &p.Hidden.RowClear, &p.Hidden.ColClear, &p.Hidden.CrossClear,
		&p.ScoreMultiplier,
	)
	if err != nil && err != sql.ErrNoRows {
		return colorplace.DefaultProgress(), fmt.Errorf("storage: cannot load progress: %w", err)
	}

	rows, err := s.db.Query("SELECT skill_id FROM unlocked_skills")
	if err != nil {
		return colorplace.DefaultProgress(), fmt.Errorf("storage: cannot load skills: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return colorplace.DefaultProgress(), fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.UnlockedSkills = append(p.UnlockedSkills, colorplace.SkillID(id))
	}
	if err := rows.Err(); err != nil {
		return colorplace.DefaultProgress(), fmt.Errorf("storage: row iteration error: %w", err)
	}

	return p.Normalize(), nil
}

// SaveProgress replaces the progress record in one transaction.
func (s *Store) SaveProgress(p colorplace.Progress) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	_, err = tx.Exec(
		`INSERT INTO progress (id, total_games, high_score, collected_c5, collected_c6, collected_c7,
		                       board_clear, combo3, combo4, combo5,
		                       zero_score, row_clear, col_clear, cross_clear, score_multiplier, updated_at)
		 VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET
			total_games = excluded.total_games,
			high_score = excluded.high_score,
			collected_c5 = excluded.collected_c5,
			collected_c6 = excluded.collected_c6,
			collected_c7 = excluded.collected_c7,
			board_clear = excluded.board_clear,
			combo3 = excluded.combo3,
			combo4 = excluded.combo4,
			combo5 = excluded.combo5,
			zero_score = excluded.zero_score,
			row_clear = excluded.row_clear,
			col_clear = excluded.col_clear,
			cross_clear = excluded.cross_clear,
			score_multiplier = excluded.score_multiplier,
			updated_at = excluded.updated_at`,
		p.TotalGames, p.HighScore,
		p.ColorCollected.C5, p.ColorCollected.C6, p.ColorCollected.C7,
		p.Achievements.BoardClear, p.Achievements.Combo3, p.Achievements.Combo4, p.Achievements.Combo5,
		p.Hidden.ZeroScore, p.Hidden.RowClear, p.Hidden.ColClear, p.Hidden.CrossClear,
		p.ScoreMultiplier,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM unlocked_skills"); err != nil {
		return fmt.Errorf("storage: cannot save skills: %w", err)
	}
	for _, id := range p.UnlockedSkills {
		if _, err := tx.Exec("INSERT OR IGNORE INTO unlocked_skills (skill_id) VALUES (?)", string(id)); err != nil {
			return fmt.Errorf("storage: cannot save skills: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit progress: %w", err)
	}
	return nil
}

// ResetProgress deletes the progress record and every unlock.
func (s *Store) ResetProgress() error {
	if _, err := s.db.Exec("DELETE FROM progress; DELETE FROM unlocked_skills;"); err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	return nil
}

var _ colorplace.ProgressStore = (*Store)(nil)

// SaveScore records a finished game.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(gameID string, score, maxCombo, turns int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, score, max_combo, turns) VALUES (?, ?, ?, ?)",
		gameID, score, maxCombo, turns,
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

// TopScores retrieves the top N scores for the given game.
// Results are ordered by score descending.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, score, max_combo, turns, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &e.MaxCombo, &e.Turns, &createdAt); err != nil {
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

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given game.
func (s *Store) ClearScores(gameID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	BestCombo  int
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(MAX(max_combo), 0)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.BestCombo)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE game_id = ? ORDER BY created_at DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// parseTime handles both time.Time and the SQLite text form.
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
