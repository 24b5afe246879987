package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/account"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/leaderboard"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/spectate"
)

// Services are the back ends the screens use. Leaderboard, Accounts and
// Players may be nil; the screens that need them degrade.
type Services struct {
	Config      config.SnakeConfig
	Leaderboard *leaderboard.Service
	Accounts    *account.Service
	Players     *spectate.Registry
	Logger      *log.Logger
}

// Screen identifies a top-level view.
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenGame
	ScreenWatch
	ScreenScores
	ScreenAccount
)

// AppOptions selects how an App starts.
type AppOptions struct {
	Start    Screen
	Username string     // fixed player name (SSH); "" uses the logged-in account
	Mode     snake.Mode // initial game mode; "" uses the configured default
	WatchID  string     // player to open directly on the watch screen
}

// App manages the full session flow: menu -> screen -> menu.
// When started on a screen other than the menu, leaving that screen quits.
type App struct {
	svc    Services
	config core.RuntimeConfig
	opts   AppOptions

	screen Screen
	menu   MenuModel
	game   GameModel
	watch  WatchModel
	scores ScoreboardModel
	auth   AuthModel

	quitting bool
}

// NewApp creates the top-level model.
func NewApp(svc Services, cfg core.RuntimeConfig, opts AppOptions) App {
	if opts.Mode == "" {
		opts.Mode = svc.Config.Mode()
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = svc.Config.Session.FrameRate
	}
	a := App{svc: svc, config: cfg, opts: opts}
	a.open(opts.Start)
	return a
}

// Init starts the frame clock.
func (a App) Init() tea.Cmd {
	return tickCmd(a.config.FrameRate)
}

// open switches to a screen with a fresh model.
func (a *App) open(s Screen) {
	a.screen = s
	switch s {
	case ScreenMenu:
		a.menu = NewMenuModel(a.svc, a.config, a.opts.Username)
	case ScreenGame:
		a.game = NewGameModel(a.svc, a.config, a.opts.Username, a.opts.Mode)
	case ScreenWatch:
		a.watch = NewWatchModel(a.svc, a.config, a.opts.WatchID)
		a.opts.WatchID = ""
	case ScreenScores:
		a.scores = NewScoreboardModel(a.svc, a.config.ScreenW, a.config.ScreenH)
	case ScreenAccount:
		a.auth = NewAuthModel(a.svc.Accounts, a.config.ScreenW, a.config.ScreenH)
	}
}

// Update routes messages to the active screen.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var next tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.config.ScreenW = msg.Width
		a.config.ScreenH = msg.Height
	case TickMsg:
		next = tickCmd(a.config.FrameRate)
	}

	var (
		cmd      tea.Cmd
		back     bool
		quitting bool
	)
	switch a.screen {
	case ScreenMenu:
		a.menu, cmd = a.menu.Update(msg)
		quitting = a.menu.IsQuitting()
		if item := a.menu.Selected(); item != nil {
			a.open(item.Screen)
			return a, tea.Batch(cmd, next)
		}
	case ScreenGame:
		a.game, cmd = a.game.Update(msg)
		back, quitting = a.game.BackToMenu(), a.game.IsQuitting()
		// Keep the mode for the next game.
		a.opts.Mode = a.game.State().Mode
	case ScreenWatch:
		a.watch, cmd = a.watch.Update(msg)
		back, quitting = a.watch.IsGoingBack(), a.watch.IsQuitting()
	case ScreenScores:
		a.scores, cmd = a.scores.Update(msg)
		back, quitting = a.scores.IsGoingBack(), a.scores.IsQuitting()
	case ScreenAccount:
		a.auth, cmd = a.auth.Update(msg)
		back, quitting = a.auth.IsGoingBack(), a.auth.IsQuitting()
	}

	if quitting || (back && a.opts.Start != ScreenMenu) {
		a.quitting = true
		return a, tea.Quit
	}
	if back {
		a.open(ScreenMenu)
	}
	return a, tea.Batch(cmd, next)
}

// View renders the active screen.
func (a App) View() string {
	if a.quitting {
		return ""
	}
	switch a.screen {
	case ScreenGame:
		return a.game.View()
	case ScreenWatch:
		return a.watch.View()
	case ScreenScores:
		return a.scores.View()
	case ScreenAccount:
		return a.auth.View()
	}
	return a.menu.View()
}

// Run starts a local Bubble Tea program.
func Run(svc Services, cfg core.RuntimeConfig, opts AppOptions) error {
	p := tea.NewProgram(
		NewApp(svc, cfg, opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)
	_, err := p.Run()
	return err
}
