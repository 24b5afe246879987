package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// MenuItem represents a selectable entry in the main menu.
type MenuItem struct {
	Title  string
	Screen Screen
	Quit   bool
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	user      string
	live      int
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem
}

// NewMenuModel creates a new menu model. The Account entry is only offered
// when accounts are available.
func NewMenuModel(svc Services, cfg core.RuntimeConfig, username string) MenuModel {
	items := []MenuItem{
		{Title: "Play", Screen: ScreenGame},
		{Title: "Watch", Screen: ScreenWatch},
		{Title: "Leaderboard", Screen: ScreenScores},
	}
	if svc.Accounts != nil {
		items = append(items, MenuItem{Title: "Account", Screen: ScreenAccount})
	}
	items = append(items, MenuItem{Title: "Quit", Quit: true})

	user, recorded := playerName(svc, username)
	if !recorded {
		user = ""
	}
	live := 0
	if svc.Players != nil {
		live = svc.Players.Count()
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		user:      user,
		live:      live,
		keyMapper: NewKeyMapper(),
	}
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (MenuModel, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = core.Wrap(m.cursor-1, len(m.items))

	case MenuActionDown:
		m.cursor = core.Wrap(m.cursor+1, len(m.items))

	case MenuActionSelect:
		item := m.items[m.cursor]
		if item.Quit {
			m.quitting = true
			return m, tea.Quit
		}
		m.selected = &item
	}

	return m, nil
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(core.ColorSnakeHead.ANSI()))
	menuItemStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(core.ColorText.ANSI()))
	menuCurStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(core.ColorWall.ANSI()))
	menuMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(core.ColorMuted.ANSI()))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("N E O N   S N A K E"), m.width))
	b.WriteString("\n\n")

	who := "Playing as guest"
	if m.user != "" {
		who = "Playing as " + m.user
	}
	if m.live > 0 {
		who += fmt.Sprintf("  ·  %d live", m.live)
	}
	b.WriteString(centerText(menuMutedStyle.Render(who), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := menuItemStyle.Render("  " + item.Title + "  ")
		if i == m.cursor {
			line = menuCurStyle.Render("> " + item.Title + " <")
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Q: Quit"
	b.WriteString(centerText(menuMutedStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width. Styled text is measured
// without its escape sequences.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
