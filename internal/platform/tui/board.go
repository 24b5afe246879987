package tui

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// cellW is the number of columns per grid cell; terminal cells are about
// twice as tall as they are wide.
const cellW = 2

// BoardSize returns the screen size of an n×n board including its frame.
func BoardSize(n int) (w, h int) {
	return n*cellW + 2, n + 2
}

// DrawBoard draws the frame, grid, food and snake with the top-left corner
// of the frame at (x, y). Walls are drawn solid, wrapping edges dashed.
func DrawBoard(dst *core.Screen, x, y int, s snake.GameState) {
	n := s.Rules.GridSize
	w, h := BoardSize(n)

	frame := core.BoxSolid
	frameColor := core.ColorWall
	if s.Mode == snake.ModeWrap {
		frame = core.BoxDashed
		frameColor = core.ColorPortal
	}
	dst.DrawBox(core.NewRect(x, y, w, h), frame, frameColor)

	cell := func(p snake.Point, a, b rune, c core.Color) {
		cx := x + 1 + p.X*cellW
		cy := y + 1 + p.Y
		dst.SetColored(cx, cy, a, c)
		dst.SetColored(cx+1, cy, b, c)
	}

	for gy := range n {
		for gx := range n {
			cell(snake.Point{X: gx, Y: gy}, ' ', '·', core.ColorGrid)
		}
	}

	cell(s.Food, '●', ' ', core.ColorFood)

	dead := s.Status == snake.StatusGameOver
	// Tail first so the head wins when segments overlap after a collision.
	for i := len(s.Snake) - 1; i >= 0; i-- {
		c := core.ColorSnakeBody
		if i == 0 {
			c = core.ColorSnakeHead
		}
		if dead {
			c = core.ColorSnakeDead
		}
		cell(s.Snake[i], '█', '█', c)
	}
}

// DrawHUD writes the score line above a board. A negative best is omitted.
func DrawHUD(dst *core.Screen, x, y, width int, s snake.GameState, best int) {
	left := fmt.Sprintf("SCORE %04d", s.Score)
	if best >= 0 {
		left += fmt.Sprintf("  BEST %d", max(best, s.Score))
	}
	right := fmt.Sprintf("%s %dms", s.Mode.Title(), s.Speed.Milliseconds())
	dst.DrawText(x, y, left, core.ColorAccent)
	dst.DrawText(x+width-utf8.RuneCountInString(right), y, right, core.ColorMuted)
}

// DrawTitle writes a label into the top edge of a board frame.
func DrawTitle(dst *core.Screen, x, y int, title string) {
	if title == "" {
		return
	}
	dst.DrawText(x+2, y, " "+title+" ", core.ColorText)
}

// DrawOverlay draws a framed message box centered on area.
func DrawOverlay(dst *core.Screen, area core.Rect, lines ...string) {
	wide := 0
	for _, l := range lines {
		wide = max(wide, utf8.RuneCountInString(l))
	}
	box := area.Centered(wide+4, len(lines)+2)
	for yy := box.Y; yy < box.Bottom(); yy++ {
		for xx := box.X; xx < box.Right(); xx++ {
			dst.Set(xx, yy, ' ')
		}
	}
	dst.DrawBox(box, core.BoxSolid, core.ColorAccent)
	for i, l := range lines {
		c := core.ColorText
		if i == 0 {
			c = core.ColorAccent
		}
		lx := box.X + (box.W-utf8.RuneCountInString(l))/2
		dst.DrawText(lx, box.Y+1+i, l, c)
	}
}

// statusOverlay returns the overlay lines for a human game, or nil while
// playing.
func statusOverlay(s snake.GameState) []string {
	switch s.Status {
	case snake.StatusIdle:
		return []string{"NEON SNAKE", s.Mode.Title() + " mode", "ENTER to start · M to switch mode"}
	case snake.StatusPaused:
		return []string{"PAUSED", "SPACE to continue"}
	case snake.StatusGameOver:
		return []string{"GAME OVER", fmt.Sprintf("Score %d", s.Score), "ENTER to play again · R to reset"}
	}
	return nil
}
