package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrEmailExists is returned by CreateUser for a duplicate email.
	ErrEmailExists = errors.New("storage: email already registered")
	// ErrUsernameExists is returned by CreateUser for a duplicate username.
	ErrUsernameExists = errors.New("storage: username already taken")
)

// User is a registered account.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// CreateUser inserts a new account. ID and PasswordHash must be set by the caller.
func (s *Store) CreateUser(u User) (User, error) {
	created := s.timestamp()
	_, err := s.db.Exec(
		"INSERT INTO users (id, username, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)",
		u.ID, u.Username, u.Email, u.PasswordHash, created,
	)
	if err != nil {
		msg := err.Error()
		switch {
		case strings.Contains(msg, "users.email"):
			return User{}, ErrEmailExists
		case strings.Contains(msg, "users.username"):
			return User{}, ErrUsernameExists
		}
		return User{}, fmt.Errorf("storage: cannot create user: %w", err)
	}
	u.CreatedAt = parseTime(created)
	return u, nil
}

// UserByEmail looks up an account by email.
func (s *Store) UserByEmail(email string) (User, error) {
	return s.userWhere("email = ?", email)
}

// UserByUsername looks up an account by username.
func (s *Store) UserByUsername(username string) (User, error) {
	return s.userWhere("username = ?", username)
}

// UserByID looks up an account by id.
func (s *Store) UserByID(id string) (User, error) {
	return s.userWhere("id = ?", id)
}

func (s *Store) userWhere(cond string, arg any) (User, error) {
	var u User
	var createdAt any
	err := s.db.QueryRow(
		"SELECT id, username, email, password_hash, created_at FROM users WHERE "+cond,
		arg,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("storage: cannot query user: %w", err)
	}
	u.CreatedAt = parseTime(createdAt)
	return u, nil
}

// SetCurrentUser records the account logged in on this machine.
func (s *Store) SetCurrentUser(userID string) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO active_login (slot, user_id) VALUES (1, ?)",
		userID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot set current user: %w", err)
	}
	return nil
}

// CurrentUser returns the logged-in account, or ErrNotFound.
func (s *Store) CurrentUser() (User, error) {
	var id string
	err := s.db.QueryRow("SELECT user_id FROM active_login WHERE slot = 1").Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("storage: cannot query current user: %w", err)
	}
	return s.UserByID(id)
}

// ClearCurrentUser logs out.
func (s *Store) ClearCurrentUser() error {
	if _, err := s.db.Exec("DELETE FROM active_login"); err != nil {
		return fmt.Errorf("storage: cannot clear current user: %w", err)
	}
	return nil
}
