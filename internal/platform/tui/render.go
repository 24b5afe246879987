package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
)

var (
	stylesMu    sync.Mutex
	colorStyles = map[core.Color]lipgloss.Style{}
)

// styleFor returns the cached lipgloss style for a palette entry.
func styleFor(c core.Color) lipgloss.Style {
	stylesMu.Lock()
	defer stylesMu.Unlock()
	if st, ok := colorStyles[c]; ok {
		return st
	}
	st := lipgloss.NewStyle()
	if code := c.ANSI(); code != "" {
		st = st.Foreground(lipgloss.Color(code))
	}
	if c == core.ColorSnakeHead || c == core.ColorAccent {
		st = st.Bold(true)
	}
	colorStyles[c] = st
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for _, run := range s.Runs(y) {
			if run.Color == core.ColorDefault {
				sb.WriteString(run.Text)
				continue
			}
			sb.WriteString(styleFor(run.Color).Render(run.Text))
		}
	}
	return sb.String()
}
