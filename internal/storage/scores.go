package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ScoreEntry represents a single leaderboard record.
type ScoreEntry struct {
	ID        int64
	Username  string
	Mode      string
	Score     int
	CreatedAt time.Time
}

// SeedScore is a leaderboard row with an explicit date.
type SeedScore struct {
	Username  string
	Mode      string
	Score     int
	CreatedAt time.Time
}

// ModeStats contains aggregated statistics for a mode.
type ModeStats struct {
	Mode       string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// SaveScore records a new score.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(username, mode string, score int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (username, mode, score, created_at) VALUES (?, ?, ?, ?)",
		username, mode, score, s.timestamp(),
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

// TopScores retrieves the top N scores, optionally for one mode ("" = all).
// Results are ordered by score descending; equal scores keep insertion order.
func (s *Store) TopScores(mode string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, username, mode, score, created_at
		 FROM scores
		 WHERE ? = '' OR mode = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		mode, mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Username, &e.Mode, &e.Score, &createdAt); err != nil {
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

// ScoreRank returns the 1-based position of a score among all scores.
// Ties are ranked by age, so a new score lands after existing equal ones.
func (s *Store) ScoreRank(id int64) (int, error) {
	var score int
	err := s.db.QueryRow("SELECT score FROM scores WHERE id = ?", id).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query score: %w", err)
	}

	var ahead int
	err = s.db.QueryRow(
		"SELECT COUNT(*) FROM scores WHERE score > ? OR (score = ? AND id < ?)",
		score, score, id,
	).Scan(&ahead)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot rank score: %w", err)
	}
	return ahead + 1, nil
}

// HighScore returns the highest score for a mode ("" = all).
// Returns 0 if no scores exist.
func (s *Store) HighScore(mode string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE ? = '' OR mode = ?",
		mode, mode,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// BestScore returns a user's highest score and number of recorded games.
func (s *Store) BestScore(username string) (best, games int, err error) {
	err = s.db.QueryRow(
		"SELECT COALESCE(MAX(score), 0), COUNT(*) FROM scores WHERE username = ?",
		username,
	).Scan(&best, &games)
	if err != nil {
		return 0, 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return best, games, nil
}

// ClearScores deletes all scores for a mode ("" = all).
func (s *Store) ClearScores(mode string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE ? = '' OR mode = ?", mode, mode)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// SeedLeaderboard inserts entries if the scores table is empty.
// It reports whether anything was inserted.
func (s *Store) SeedLeaderboard(entries []SeedScore) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("storage: cannot begin seed: %w", err)
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRow("SELECT COUNT(*) FROM scores").Scan(&n); err != nil {
		return false, fmt.Errorf("storage: cannot count scores: %w", err)
	}
	if n > 0 || len(entries) == 0 {
		return false, nil
	}

	for _, e := range entries {
		_, err := tx.Exec(
			"INSERT INTO scores (username, mode, score, created_at) VALUES (?, ?, ?, ?)",
			e.Username, e.Mode, e.Score, e.CreatedAt.UTC().Format(timeLayout),
		)
		if err != nil {
			return false, fmt.Errorf("storage: cannot seed score: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("storage: cannot commit seed: %w", err)
	}
	return true, nil
}

// GetModeStats retrieves statistics for every mode that has been played.
func (s *Store) GetModeStats() (map[string]*ModeStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(created_at)
		 FROM scores
		 GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ModeStats)
	for rows.Next() {
		var m ModeStats
		var lastPlayed any
		if err := rows.Scan(&m.Mode, &m.GamesCount, &m.HighScore, &m.AvgScore, &m.TotalScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		m.LastPlayed = parseTime(lastPlayed)
		stats[m.Mode] = &m
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
