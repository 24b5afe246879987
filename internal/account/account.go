// Package account handles sign-up, login and the locally remembered session.
package account

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrNotLoggedIn        = errors.New("not logged in")
)

// ValidationError describes a rejected sign-up field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// User is the public view of an account.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	// CreatedAt is RFC 3339.
	CreatedAt string `json:"createdAt"`
}

// Store is the persistence the service needs.
type Store interface {
	CreateUser(u storage.User) (storage.User, error)
	UserByEmail(email string) (storage.User, error)
	UserByID(id string) (storage.User, error)
	SetCurrentUser(userID string) error
	CurrentUser() (storage.User, error)
	ClearCurrentUser() error
}

// Service manages accounts.
type Service struct {
	store  Store
	logger *log.Logger
	cost   int
}

// NewService creates an account service.
func NewService(store Store, logger *log.Logger) *Service {
	return &Service{store: store, logger: logger, cost: bcrypt.DefaultCost}
}

// Signup creates an account and logs it in.
func (s *Service) Signup(username, email, password string) (User, error) {
	u, err := s.Register(username, email, password)
	if err != nil {
		return User{}, err
	}
	if err := s.store.SetCurrentUser(u.ID); err != nil {
		return User{}, err
	}
	return u, nil
}

// Register creates an account without touching the remembered login.
func (s *Service) Register(username, email, password string) (User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validate(username, email, password); err != nil {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return User{}, fmt.Errorf("account: hash password: %w", err)
	}

	u, err := s.store.CreateUser(storage.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
	switch {
	case errors.Is(err, storage.ErrEmailExists):
		return User{}, ErrEmailTaken
	case errors.Is(err, storage.ErrUsernameExists):
		return User{}, ErrUsernameTaken
	case err != nil:
		return User{}, err
	}

	s.logger.Info("account created", "user", u.Username)
	return publicUser(u), nil
}

// Authenticate checks credentials without changing the remembered session.
func (s *Service) Authenticate(email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.store.UserByEmail(email)
	if errors.Is(err, storage.ErrNotFound) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return publicUser(u), nil
}

// Login authenticates and remembers the account.
func (s *Service) Login(email, password string) (User, error) {
	u, err := s.Authenticate(email, password)
	if err != nil {
		s.logger.Warn("login failed", "email", email)
		return User{}, err
	}
	if err := s.store.SetCurrentUser(u.ID); err != nil {
		return User{}, err
	}
	s.logger.Info("logged in", "user", u.Username)
	return u, nil
}

// Logout forgets the remembered account. Logging out twice is not an error.
func (s *Service) Logout() error {
	return s.store.ClearCurrentUser()
}

// Current returns the remembered account or ErrNotLoggedIn.
func (s *Service) Current() (User, error) {
	u, err := s.store.CurrentUser()
	if errors.Is(err, storage.ErrNotFound) {
		return User{}, ErrNotLoggedIn
	}
	if err != nil {
		return User{}, err
	}
	return publicUser(u), nil
}

// ByID looks up an account. A missing account reads as ErrNotLoggedIn.
func (s *Service) ByID(id string) (User, error) {
	u, err := s.store.UserByID(id)
	if errors.Is(err, storage.ErrNotFound) {
		return User{}, ErrNotLoggedIn
	}
	if err != nil {
		return User{}, err
	}
	return publicUser(u), nil
}

func validate(username, email, password string) error {
	switch n := utf8.RuneCountInString(username); {
	case n == 0:
		return &ValidationError{Field: "username", Message: "required"}
	case n < 3 || n > 20:
		return &ValidationError{Field: "username", Message: "must be 3 to 20 characters"}
	}
	if !strings.Contains(email, "@") {
		return &ValidationError{Field: "email", Message: "must be a valid address"}
	}
	if len(password) < 6 {
		return &ValidationError{Field: "password", Message: "must be at least 6 characters"}
	}
	return nil
}

func publicUser(u storage.User) User {
	return User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}
