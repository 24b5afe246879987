package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/spectate"
)

// WatchKeyMap defines the key bindings for the watch screen.
type WatchKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Copy   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k WatchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Copy, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k WatchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Select}, {k.Copy, k.Back, k.Quit}}
}

// DefaultWatchKeyMap returns default key bindings.
func DefaultWatchKeyMap() WatchKeyMap {
	return WatchKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "prev player"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "next player"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "watch"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy watch command"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// WatchModel lists active players and shows an autopilot game for the one
// selected.
type WatchModel struct {
	svc    Services
	seed   int64
	keys   WatchKeyMap
	help   help.Model
	screen *core.Screen

	players     []spectate.Player
	cursor      int
	lastRefresh time.Time
	notice      string

	viewer *spectate.Viewer
	now    time.Time

	width     int
	height    int
	goingBack bool
	quitting  bool
}

// NewWatchModel creates the watch screen. A non-empty target opens that
// player's game straight away.
func NewWatchModel(svc Services, cfg core.RuntimeConfig, target string) WatchModel {
	m := WatchModel{
		svc:    svc,
		seed:   cfg.Seed,
		keys:   DefaultWatchKeyMap(),
		help:   help.New(),
		screen: core.NewScreen(cfg.ScreenW, max(0, cfg.ScreenH-1)),
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		now:    time.Now(),
	}
	m.help.Width = cfg.ScreenW
	m.refresh(m.now)

	if target != "" {
		if p, ok := m.lookup(target); ok {
			m.open(p)
		} else {
			m.notice = fmt.Sprintf("Player %q is not playing", target)
		}
	}
	return m
}

func (m *WatchModel) lookup(id string) (spectate.Player, bool) {
	if m.svc.Players == nil {
		for _, p := range m.players {
			if p.ID == id {
				return p, true
			}
		}
		return spectate.Player{}, false
	}
	return m.svc.Players.Get(id)
}

// refresh reloads the player list and the watched player's details.
func (m *WatchModel) refresh(now time.Time) {
	m.lastRefresh = now
	if m.svc.Players == nil {
		// No shared registry: only the configured demo players exist.
		m.players = spectate.NewRegistry(m.svc.Config.Spectator.DemoPlayers).List()
	} else {
		m.players = m.svc.Players.List()
	}
	m.cursor = core.Clamp(m.cursor, 0, max(0, len(m.players)-1))

	if m.viewer != nil {
		if p, ok := m.lookup(m.viewer.Player().ID); ok {
			m.viewer.SetPlayer(p)
		}
	}
}

func (m *WatchModel) open(p spectate.Player) {
	cfg := m.svc.Config
	m.viewer = spectate.NewViewer(p, cfg.Rules(), cfg.AutopilotPolicy(), cfg.RestartDelay(),
		session.WithSeed(m.seed))
	m.notice = ""
}

// Update handles messages for the watch screen.
func (m WatchModel) Update(msg tea.Msg) (WatchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			if m.viewer != nil {
				m.viewer = nil
				m.refresh(m.now)
			} else {
				m.goingBack = true
			}

		case m.viewer != nil:
			// The board has no controls.

		case key.Matches(msg, m.keys.Up):
			m.cursor = core.Wrap(m.cursor-1, len(m.players))

		case key.Matches(msg, m.keys.Down):
			m.cursor = core.Wrap(m.cursor+1, len(m.players))

		case key.Matches(msg, m.keys.Select):
			if len(m.players) > 0 {
				m.open(m.players[m.cursor])
			}

		case key.Matches(msg, m.keys.Copy):
			if len(m.players) > 0 {
				return m, copyWatchCmd(m.players[m.cursor].ID)
			}
		}

	case copiedMsg:
		if msg.err != nil {
			m.notice = "Clipboard unavailable: " + msg.err.Error()
		} else {
			m.notice = "Copied: " + msg.text
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.screen.Resize(msg.Width, max(0, msg.Height-1))
		m.help.Width = msg.Width

	case TickMsg:
		m.now = time.Time(msg)
		if m.now.Sub(m.lastRefresh) >= m.svc.Config.RefreshInterval() {
			m.refresh(m.now)
		}
		if m.viewer != nil {
			m.viewer.Tick(m.now)
		}
	}
	return m, nil
}

var (
	watchTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(core.ColorPortal.ANSI()))
	watchRowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(core.ColorText.ANSI()))
	watchActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(core.ColorAccent.ANSI()))
	watchMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(core.ColorMuted.ANSI()))
)

// View renders the player list or the watched board.
func (m WatchModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}
	if m.viewer != nil {
		return m.boardView()
	}

	var b strings.Builder
	title := "LIVE GAMES"
	if len(m.players) > 0 && m.players[0].Demo {
		title = "DEMO GAMES"
	}
	b.WriteString("\n")
	b.WriteString(centerText(watchTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(centerText(watchMutedStyle.Render(m.notice), m.width))
		b.WriteString("\n\n")
	}

	if len(m.players) == 0 {
		b.WriteString(centerText(watchMutedStyle.Render("Nobody is playing right now."), m.width))
		b.WriteString("\n")
	}
	for i, p := range m.players {
		playing := m.now.Sub(p.StartedAt).Truncate(time.Second)
		line := fmt.Sprintf("%-16s %-12s %6d  %8s", p.Username, p.Mode.Title(), p.Score, playing)
		if i == m.cursor {
			b.WriteString(centerText(watchActiveStyle.Render("> "+line), m.width))
		} else {
			b.WriteString(centerText(watchRowStyle.Render("  "+line), m.width))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(watchMutedStyle.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

func (m WatchModel) boardView() string {
	v := m.viewer
	s := v.State()
	s.Score = v.DisplayScore()

	dst := m.screen
	dst.Clear()
	bw, bh := BoardSize(s.Rules.GridSize)
	area := core.NewRect(0, 0, dst.Width(), dst.Height()).Centered(bw, bh+1)

	DrawHUD(dst, area.X, area.Y, bw, s, -1)
	DrawBoard(dst, area.X, area.Y+1, s)
	DrawTitle(dst, area.X, area.Y+1, "WATCHING "+v.Player().Username)

	if left := v.RestartIn(m.now); left > 0 {
		DrawOverlay(dst, core.NewRect(area.X, area.Y+1, bw, bh),
			"GAME OVER", fmt.Sprintf("Next game in %ds", int(left.Round(time.Second)/time.Second)))
	}

	footer := watchMutedStyle.Render("esc: back to list  ·  q: quit")
	return RenderScreen(dst) + "\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Center, footer)
}

type copiedMsg struct {
	text string
	err  error
}

// copyWatchCmd puts the command that opens a player's game on the clipboard.
func copyWatchCmd(id string) tea.Cmd {
	return func() tea.Msg {
		text := "snake watch " + id
		return copiedMsg{text: text, err: clipboard.WriteAll(text)}
	}
}

// IsGoingBack returns true if user wants to go back to menu.
func (m WatchModel) IsGoingBack() bool { return m.goingBack }

// IsQuitting returns true if user wants to quit entirely.
func (m WatchModel) IsQuitting() bool { return m.quitting }
