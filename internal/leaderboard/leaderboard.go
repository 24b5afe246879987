// Package leaderboard records finished games and serves the high score table.
package leaderboard

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/account"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// DefaultSize is how many entries the table shows and how deep ranks go.
const DefaultSize = 10

// Result is a finished game as reported by a front end.
type Result struct {
	Score int        `json:"score"`
	Mode  snake.Mode `json:"mode"`
}

// Submission is the outcome of recording a result. Rank is nil when the
// score did not make the table.
type Submission struct {
	Success bool `json:"success"`
	Rank    *int `json:"rank"`
}

// Entry is one row of the table.
type Entry struct {
	ID       int64      `json:"id"`
	Rank     int        `json:"rank"`
	Username string     `json:"username"`
	Score    int        `json:"score"`
	Mode     snake.Mode `json:"mode"`
	Date     string     `json:"date"` // YYYY-MM-DD
}

// Store is the persistence the service needs.
type Store interface {
	SaveScore(username, mode string, score int) (int64, error)
	TopScores(mode string, limit int) ([]storage.ScoreEntry, error)
	ScoreRank(id int64) (int, error)
	SeedLeaderboard(entries []storage.SeedScore) (bool, error)
}

// CurrentUser resolves the logged-in account.
type CurrentUser interface {
	Current() (account.User, error)
}

// Service manages the leaderboard.
type Service struct {
	store    Store
	accounts CurrentUser
	size     int
	logger   *log.Logger
}

// NewService creates a leaderboard of the given size. accounts may be nil
// when there is no local login (SSH and HTTP front ends pass usernames).
func NewService(store Store, accounts CurrentUser, size int, logger *log.Logger) *Service {
	if size <= 0 {
		size = DefaultSize
	}
	return &Service{store: store, accounts: accounts, size: size, logger: logger}
}

// Size returns the table size.
func (s *Service) Size() int { return s.size }

// Top returns the best entries, optionally for one mode ("" = all).
func (s *Service) Top(mode snake.Mode) ([]Entry, error) {
	rows, err := s.store.TopScores(string(mode), s.size)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, len(rows))
	for i, r := range rows {
		entries[i] = Entry{
			ID:       r.ID,
			Rank:     i + 1,
			Username: r.Username,
			Score:    r.Score,
			Mode:     snake.Mode(r.Mode),
			Date:     r.CreatedAt.Format(time.DateOnly),
		}
	}
	return entries, nil
}

// Submit records a result for username. Empty usernames and scores of zero
// are not recorded and yield an unsuccessful submission.
func (s *Service) Submit(username string, r Result) (Submission, error) {
	if username == "" || r.Score <= 0 {
		return Submission{}, nil
	}
	if _, err := snake.ParseMode(string(r.Mode)); err != nil {
		return Submission{}, fmt.Errorf("leaderboard: %w", err)
	}

	id, err := s.store.SaveScore(username, string(r.Mode), r.Score)
	if err != nil {
		return Submission{}, err
	}
	rank, err := s.store.ScoreRank(id)
	if err != nil {
		return Submission{}, err
	}

	sub := Submission{Success: true}
	if rank <= s.size {
		sub.Rank = &rank
	}
	s.logger.Info("score submitted", "user", username, "mode", r.Mode, "score", r.Score, "rank", rank)
	return sub, nil
}

// SubmitCurrent records a result for the logged-in account. Without a login
// the submission is unsuccessful but not an error.
func (s *Service) SubmitCurrent(r Result) (Submission, error) {
	if s.accounts == nil {
		return Submission{}, nil
	}
	u, err := s.accounts.Current()
	if errors.Is(err, account.ErrNotLoggedIn) {
		return Submission{}, nil
	}
	if err != nil {
		return Submission{}, err
	}
	return s.Submit(u.Username, r)
}

// Hook returns a game-over callback that submits for username. An empty
// username submits for the logged-in account. notify, if set, receives the
// outcome; failures are logged and reported as unsuccessful.
func (s *Service) Hook(username string, notify func(Submission)) session.GameOverFunc {
	return func(g session.GameOver) {
		r := Result{Score: g.Score, Mode: g.Mode}
		var (
			sub Submission
			err error
		)
		if username == "" {
			sub, err = s.SubmitCurrent(r)
		} else {
			sub, err = s.Submit(username, r)
		}
		if err != nil {
			s.logger.Error("score submission failed", "user", username, "err", err)
			sub = Submission{}
		}
		if notify != nil {
			notify(sub)
		}
	}
}

// Seed fills an empty leaderboard with the configured demo rows.
func (s *Service) Seed(entries []config.SeedEntry) error {
	rows := make([]storage.SeedScore, 0, len(entries))
	for _, e := range entries {
		date, err := time.Parse(time.DateOnly, e.Date)
		if err != nil {
			return fmt.Errorf("leaderboard: seed date %q: %w", e.Date, err)
		}
		rows = append(rows, storage.SeedScore{
			Username:  e.Username,
			Mode:      e.Mode,
			Score:     e.Score,
			CreatedAt: date,
		})
	}
	seeded, err := s.store.SeedLeaderboard(rows)
	if err != nil {
		return err
	}
	if seeded {
		s.logger.Debug("leaderboard seeded", "entries", len(rows))
	}
	return nil
}
