package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/leaderboard"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// submittedMsg carries the leaderboard outcome of a finished game.
type submittedMsg struct {
	sub leaderboard.Submission
}

// endedGame is written by the driver's game-over callback and drained on
// the next tick. Models are copied by value, so it is shared by pointer.
type endedGame struct {
	game *session.GameOver
}

// GameModel is the screen where a human plays.
type GameModel struct {
	svc      Services
	username string // fixed leaderboard name; "" uses the logged-in account

	driver *session.Driver
	ended  *endedGame
	screen *core.Screen
	keys   *KeyMapper
	help   help.Model
	hk     GameKeyMap

	name       string
	recorded   bool   // name is a real account
	playerID   string // registry entry while a game runs
	submitting bool
	result     *leaderboard.Submission
	best       int

	width    int
	height   int
	back     bool
	quitting bool
}

// NewGameModel creates an idle game in mode.
func NewGameModel(svc Services, cfg core.RuntimeConfig, username string, mode snake.Mode) GameModel {
	ended := &endedGame{}
	driver := session.New(mode,
		session.WithRules(svc.Config.Rules()),
		session.WithSeed(cfg.Seed),
		session.WithGameOver(func(g session.GameOver) { ended.game = &g }),
	)

	m := GameModel{
		svc:      svc,
		username: username,
		driver:   driver,
		ended:    ended,
		screen:   core.NewScreen(cfg.ScreenW, max(0, cfg.ScreenH-1)),
		keys:     NewKeyMapper(),
		help:     help.New(),
		hk:       DefaultGameKeyMap(),
		width:    cfg.ScreenW,
		height:   cfg.ScreenH,
	}
	m.help.Width = cfg.ScreenW
	m.name, m.recorded = playerName(svc, username)
	m.best = m.highScore()
	return m
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (GameModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.screen.Resize(msg.Width, max(0, msg.Height-1))
		m.help.Width = msg.Width
		return m, nil
	case TickMsg:
		return m.handleTick(time.Time(msg))
	case submittedMsg:
		m.submitting = false
		m.result = &msg.sub
		m.best = m.highScore()
		return m, nil
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (GameModel, tea.Cmd) {
	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	status := m.driver.State().Status
	switch action {
	case core.ActionBack:
		m.leave()
		m.back = true
	case core.ActionConfirm:
		if status == snake.StatusIdle || status == snake.StatusGameOver {
			m.start()
		}
	case core.ActionPause:
		m.driver.TogglePause()
	case core.ActionToggleMode:
		if status == snake.StatusIdle || status == snake.StatusGameOver {
			m.driver.SetMode(m.driver.Mode().Toggle())
			m.result = nil
			m.best = m.highScore()
		}
	case core.ActionRestart:
		m.leave()
		m.driver.Reset()
		m.result = nil
	default:
		if dir, ok := action.Direction(); ok {
			m.driver.RequestDirection(dir)
		}
	}
	return m, nil
}

// handleTick moves the snake when its interval has elapsed.
func (m GameModel) handleTick(now time.Time) (GameModel, tea.Cmd) {
	if !m.driver.Tick(now) {
		return m, nil
	}

	s := m.driver.State()
	if m.playerID != "" && m.svc.Players != nil {
		m.svc.Players.Update(m.playerID, s.Score, s.Mode)
	}

	if m.ended.game == nil {
		return m, nil
	}
	g := *m.ended.game
	m.ended.game = nil
	m.leave()
	return m, m.submitCmd(g)
}

func (m *GameModel) start() {
	m.leave()
	m.driver.Start()
	m.result = nil
	if m.svc.Players != nil {
		m.playerID = m.svc.Players.Join(m.name, m.driver.Mode()).ID
	}
}

// leave drops the registry entry, if any.
func (m *GameModel) leave() {
	if m.playerID != "" && m.svc.Players != nil {
		m.svc.Players.Leave(m.playerID)
	}
	m.playerID = ""
}

// submitCmd records the finished game off the update loop.
func (m *GameModel) submitCmd(g session.GameOver) tea.Cmd {
	lb := m.svc.Leaderboard
	if lb == nil {
		return nil
	}
	m.submitting = true
	user := m.username
	return func() tea.Msg {
		var sub leaderboard.Submission
		lb.Hook(user, func(s leaderboard.Submission) { sub = s })(g)
		return submittedMsg{sub: sub}
	}
}

// playerName resolves the name shown on the board and whether scores will
// be recorded under it.
func playerName(svc Services, username string) (name string, recorded bool) {
	if username != "" {
		return username, true
	}
	if svc.Accounts != nil {
		if u, err := svc.Accounts.Current(); err == nil {
			return u.Username, true
		}
	}
	return "guest", false
}

func (m GameModel) highScore() int {
	if m.svc.Leaderboard == nil {
		return 0
	}
	top, err := m.svc.Leaderboard.Top(m.driver.Mode())
	if err != nil || len(top) == 0 {
		return 0
	}
	return top[0].Score
}

// resultLine describes the leaderboard outcome on the game over overlay.
func (m GameModel) resultLine() string {
	s := m.driver.State()
	switch {
	case m.submitting:
		return "Saving score..."
	case s.Score == 0:
		return ""
	case !m.recorded:
		return "Log in to save your score"
	case m.result == nil:
		return ""
	case m.result.Rank != nil:
		return fmt.Sprintf("Leaderboard rank #%d!", *m.result.Rank)
	case m.result.Success:
		return "Score saved"
	}
	return "Score not saved"
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	s := m.driver.State()
	dst := m.screen
	dst.Clear()

	bw, bh := BoardSize(s.Rules.GridSize)
	if dst.Width() < bw || dst.Height() < bh+1 {
		DrawOverlay(dst, core.NewRect(0, 0, dst.Width(), dst.Height()),
			"Window too small", fmt.Sprintf("Need %dx%d", bw, bh+2))
		return RenderScreen(dst)
	}

	area := core.NewRect(0, 0, dst.Width(), dst.Height()).Centered(bw, bh+1)
	DrawHUD(dst, area.X, area.Y, bw, s, m.best)
	DrawBoard(dst, area.X, area.Y+1, s)
	DrawTitle(dst, area.X, area.Y+1, m.name)

	if lines := statusOverlay(s); lines != nil {
		if s.Status == snake.StatusGameOver {
			if r := m.resultLine(); r != "" {
				lines = append(lines[:2:2], r, lines[2])
			}
		}
		DrawOverlay(dst, core.NewRect(area.X, area.Y+1, bw, bh), lines...)
	}

	helpLine := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.help.View(m.hk))
	return RenderScreen(dst) + "\n" + helpLine
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool { return m.back }

// State returns the current game.
func (m GameModel) State() snake.GameState { return m.driver.State() }
