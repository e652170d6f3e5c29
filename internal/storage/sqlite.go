// Package storage provides SQLite-based persistence for level scores and
// save slots. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
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

// ErrNoSave is returned by LoadGame when the slot is empty.
var ErrNoSave = errors.New("storage: no saved game")

// ErrInvalidSave is returned when a save record fails validation.
var ErrInvalidSave = errors.New("storage: invalid save")

// DefaultSlot is the slot used by autosave.
const DefaultSlot = "auto"

const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single finished-level record.
type ScoreEntry struct {
	ID        int64
	LevelID   string
	Score     int
	Coins     int
	CreatedAt time.Time
}

// Save is the persisted progress of a campaign.
type Save struct {
	Slot      string
	LevelID   string
	Score     int
	Coins     int
	Health    int
	X, Y      float64 // player position; zero means the level's spawn
	UpdatedAt time.Time
}

// Validate checks the fields of a save record.
func (s Save) Validate() error {
	switch {
	case s.Slot == "":
		return fmt.Errorf("%w: empty slot", ErrInvalidSave)
	case s.LevelID == "":
		return fmt.Errorf("%w: empty level id", ErrInvalidSave)
	case s.Score < 0 || s.Coins < 0:
		return fmt.Errorf("%w: negative score or coins", ErrInvalidSave)
	case s.Health < 0:
		return fmt.Errorf("%w: negative health", ErrInvalidSave)
	}
	return nil
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
			level_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			coins INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_level_id ON scores(level_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(level_id, score DESC);

		CREATE TABLE IF NOT EXISTS saves (
			slot TEXT PRIMARY KEY,
			level_id TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			coins INTEGER NOT NULL DEFAULT 0,
			health INTEGER NOT NULL DEFAULT 0,
			pos_x REAL NOT NULL DEFAULT 0,
			pos_y REAL NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
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

// SaveScore records a finished level. Returns the ID of the inserted record.
func (s *Store) SaveScore(levelID string, score, coins int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (level_id, score, coins) VALUES (?, ?, ?)",
		levelID, score, coins,
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

// TopScores retrieves the top N scores for the given level.
// Results are ordered by score descending.
func (s *Store) TopScores(levelID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(
		`SELECT id, level_id, score, coins, created_at
		 FROM scores
		 WHERE level_id = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		levelID, limit,
	)
}

// AllScores retrieves all scores for the given level (no limit).
func (s *Store) AllScores(levelID string) ([]ScoreEntry, error) {
	return s.queryScores(
		`SELECT id, level_id, score, coins, created_at
		 FROM scores
		 WHERE level_id = ?
		 ORDER BY score DESC`,
		levelID,
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
		if err := rows.Scan(&e.ID, &e.LevelID, &e.Score, &e.Coins, &createdAt); err != nil {
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

// HighScore returns the highest score for the given level.
// Returns 0 if no scores exist.
func (s *Store) HighScore(levelID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE level_id = ?",
		levelID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given level.
func (s *Store) ClearScores(levelID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// SaveGame writes a save slot, replacing what was there.
func (s *Store) SaveGame(save Save) error {
	if err := save.Validate(); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`INSERT INTO saves (slot, level_id, score, coins, health, pos_x, pos_y, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET
		   level_id = excluded.level_id,
		   score = excluded.score,
		   coins = excluded.coins,
		   health = excluded.health,
		   pos_x = excluded.pos_x,
		   pos_y = excluded.pos_y,
		   updated_at = excluded.updated_at`,
		save.Slot, save.LevelID, save.Score, save.Coins, save.Health, save.X, save.Y,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game: %w", err)
	}
	return nil
}

// LoadGame reads a save slot. Returns ErrNoSave if the slot is empty.
func (s *Store) LoadGame(slot string) (Save, error) {
	var save Save
	var updatedAt any
	err := s.db.QueryRow(
		`SELECT slot, level_id, score, coins, health, pos_x, pos_y, updated_at
		 FROM saves WHERE slot = ?`,
		slot,
	).Scan(&save.Slot, &save.LevelID, &save.Score, &save.Coins, &save.Health, &save.X, &save.Y, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return Save{}, ErrNoSave
	}
	if err != nil {
		return Save{}, fmt.Errorf("storage: cannot load game: %w", err)
	}
	save.UpdatedAt = parseTime(updatedAt)

	if err := save.Validate(); err != nil {
		return Save{}, err
	}
	return save, nil
}

// DeleteGame clears a save slot.
func (s *Store) DeleteGame(slot string) error {
	if _, err := s.db.Exec("DELETE FROM saves WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("storage: cannot delete save: %w", err)
	}
	return nil
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID    string
	Clears     int
	HighScore  int
	AvgScore   float64
	TotalCoins int64
	LastPlayed time.Time
}

// AllLevelStats retrieves statistics for every level that has been cleared.
func (s *Store) AllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), MAX(score), AVG(score), SUM(coins), MAX(created_at)
		 FROM scores
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var ls LevelStats
		var lastPlayed any
		if err := rows.Scan(&ls.LevelID, &ls.Clears, &ls.HighScore, &ls.AvgScore, &ls.TotalCoins, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.LastPlayed = parseTime(lastPlayed)
		stats[ls.LevelID] = &ls
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
