// Package api serves accounts, the leaderboard and the active player list
// over HTTP, and streams spectator games over WebSocket.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/vovakirdan/tui-snake/internal/account"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/leaderboard"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/spectate"
)

// Deps are the services behind the API.
type Deps struct {
	Config      config.SnakeConfig
	Accounts    *account.Service
	Leaderboard *leaderboard.Service
	Players     *spectate.Registry
	Logger      *log.Logger
	Seed        int64 // spectator RNG seed; 0 uses the clock
}

// Server represents the REST API server
type Server struct {
	deps   Deps
	tokens *tokenStore
	router *mux.Router
	logger *log.Logger
}

// NewServer creates a new API server
func NewServer(d Deps) *Server {
	if d.Logger == nil {
		d.Logger = log.Default()
	}
	s := &Server{
		deps:   d,
		tokens: newTokenStore(),
		router: mux.NewRouter(),
		logger: d.Logger.WithPrefix("api"),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Accounts
	api.HandleFunc("/auth/signup", s.handleSignup).Methods("POST")
	api.HandleFunc("/auth/login", s.handleLogin).Methods("POST")
	api.HandleFunc("/auth/logout", s.handleLogout).Methods("POST")
	api.HandleFunc("/auth/me", s.handleMe).Methods("GET")

	// Leaderboard
	api.HandleFunc("/leaderboard", s.handleLeaderboard).Methods("GET")
	api.HandleFunc("/scores", s.handleSubmitScore).Methods("POST")

	// Active players
	api.HandleFunc("/players", s.handleListPlayers).Methods("GET")
	api.HandleFunc("/players", s.handleJoin).Methods("POST")
	api.HandleFunc("/players/{id}", s.handleGetPlayer).Methods("GET")
	api.HandleFunc("/players/{id}", s.handleUpdatePlayer).Methods("PUT")
	api.HandleFunc("/players/{id}", s.handleLeave).Methods("DELETE")

	// Spectator stream
	s.router.HandleFunc("/ws/watch/{id}", s.handleWatch)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data) //nolint:errcheck // client gone
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decode(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	return json.NewDecoder(r.Body).Decode(v)
}

// Account handlers

type authResponse struct {
	Token string       `json:"token"`
	User  account.User `json:"user"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := s.deps.Accounts.Register(req.Username, req.Email, req.Password)
	if err != nil {
		s.respondAccountError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, authResponse{Token: s.tokens.issue(u.ID), User: u})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := s.deps.Accounts.Authenticate(req.Email, req.Password)
	if err != nil {
		s.respondAccountError(w, err)
		return
	}
	s.logger.Info("logged in", "user", u.Username)
	respondJSON(w, http.StatusOK, authResponse{Token: s.tokens.issue(u.ID), User: u})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.tokens.revoke(bearerToken(r))
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u, ok := s.currentUser(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	respondJSON(w, http.StatusOK, u)
}

func (s *Server) respondAccountError(w http.ResponseWriter, err error) {
	var verr *account.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, account.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, account.ErrEmailTaken), errors.Is(err, account.ErrUsernameTaken):
		respondError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error("account request failed", "err", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// bearerToken extracts the token from an "Authorization: Bearer" header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// currentUser resolves the bearer token to an account.
func (s *Server) currentUser(r *http.Request) (account.User, bool) {
	id, ok := s.tokens.lookup(bearerToken(r))
	if !ok {
		return account.User{}, false
	}
	u, err := s.deps.Accounts.ByID(id)
	if err != nil {
		return account.User{}, false
	}
	return u, true
}

// Leaderboard handlers

func parseModeParam(v string) (snake.Mode, error) {
	if v == "" || v == "all" {
		return "", nil
	}
	return snake.ParseMode(v)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	mode, err := parseModeParam(r.URL.Query().Get("mode"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	entries, err := s.deps.Leaderboard.Top(mode)
	if err != nil {
		s.logger.Error("leaderboard query failed", "err", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	var res leaderboard.Result
	if err := decode(r, &res); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	mode, err := snake.ParseMode(string(res.Mode))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	res.Mode = mode

	// Anonymous results are answered, not recorded.
	u, ok := s.currentUser(r)
	if !ok {
		respondJSON(w, http.StatusOK, leaderboard.Submission{})
		return
	}

	sub, err := s.deps.Leaderboard.Submit(u.Username, res)
	if err != nil {
		s.logger.Error("score submission failed", "user", u.Username, "err", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, sub)
}

// Player handlers

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.deps.Players.List())
}

func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	p, ok := s.deps.Players.Get(mux.Vars(r)["id"])
	if !ok {
		respondError(w, http.StatusNotFound, "player not found")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

type playerRequest struct {
	Mode  string `json:"mode"`
	Score int    `json:"score"`
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	u, ok := s.currentUser(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	var req playerRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	mode, err := snake.ParseMode(req.Mode)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, s.deps.Players.Join(u.Username, mode))
}

func (s *Server) handleUpdatePlayer(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.currentUser(r); !ok {
		respondError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	var req playerRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	mode, err := snake.ParseMode(req.Mode)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := mux.Vars(r)["id"]
	if !s.deps.Players.Update(id, req.Score, mode) {
		respondError(w, http.StatusNotFound, "player not found")
		return
	}
	p, _ := s.deps.Players.Get(id)
	respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleLeave(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.currentUser(r); !ok {
		respondError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	s.deps.Players.Leave(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}
