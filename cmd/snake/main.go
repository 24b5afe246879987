// snake is a neon Snake game for the terminal.
//
// Usage:
//
//	snake play              - Play a game
//	snake menu              - Start the interactive menu
//	snake watch [id]        - Watch an autopilot replay of an active player
//	snake scores            - Show the leaderboard
//	snake stats             - Show per-mode statistics
//	snake signup|login      - Manage the local account
//	snake serve             - Start the SSH server and HTTP API
//
// Global flags:
//
//	--fps <rate>        - UI refresh rate (default: from config)
//	--seed <value>      - RNG seed for reproducible games
//	--db <path>         - Database path (default: ~/.snake/snake.db)
//	--config <path>     - Config YAML (default: ~/.snake/config.yaml)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/account"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/leaderboard"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/spectate"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Neon Snake - play, watch and compete in your terminal",
	Long: `Neon Snake is a terminal Snake game with two modes, a shared
leaderboard and a spectator mode that replays active players with an
autopilot.

Modes:
  walls        - touching the border ends the game
  passthrough  - the snake wraps around the edges

Examples:
  snake play
  snake play --mode passthrough --difficulty hard
  snake menu
  snake watch
  snake scores --mode walls
  snake serve --ssh :23234 --http :8080`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "UI refresh rate (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/snake.db", "Path to the database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(serveCmd)
}

// env bundles the services a command runs against.
type env struct {
	cfg      config.SnakeConfig
	store    *storage.Store
	accounts *account.Service
	board    *leaderboard.Service
	logger   *log.Logger
}

// openEnv loads the config, opens the database and seeds an empty
// leaderboard. The caller closes env.store.
func openEnv(logger *log.Logger) (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, err
	}

	accounts := account.NewService(store, logger)
	board := leaderboard.NewService(store, accounts, cfg.Leaderboard.Size, logger)
	if err := board.Seed(cfg.Leaderboard.Seed); err != nil {
		logger.Warn("could not seed leaderboard", "err", err)
	}

	return &env{cfg: cfg, store: store, accounts: accounts, board: board, logger: logger}, nil
}

// services wires the TUI to env. The player registry is local to this
// process, so it only lists the demo players and this terminal's game.
func (e *env) services() tui.Services {
	return tui.Services{
		Config:      e.cfg,
		Leaderboard: e.board,
		Accounts:    e.accounts,
		Players:     spectate.NewRegistry(e.cfg.Spectator.DemoPlayers),
		Logger:      e.logger,
	}
}

// newLogger creates the stderr logger used by the non-interactive commands.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	setLevel(logger)
	return logger
}

// newFileLogger keeps logs out of the alt screen while the TUI runs.
func newFileLogger() (*log.Logger, func()) {
	dir := config.DataDir()
	if dir == "" {
		return log.New(io.Discard), func() {}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "snake.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{ReportTimestamp: true})
	setLevel(logger)
	return logger, func() { f.Close() }
}

func setLevel(logger *log.Logger) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)
}

// runtimeConfig reads the terminal size and applies the global flags.
func runtimeConfig(cfg config.SnakeConfig) core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.FrameRate = cfg.Session.FrameRate
	if flagFPS > 0 {
		rc.FrameRate = flagFPS
	}
	rc.Seed = flagSeed
	return rc
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
