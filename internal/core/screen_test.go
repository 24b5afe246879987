package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Errorf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorFood)
	if got := s.GetCell(5, 5); got.Rune != 'X' || got.Color != ColorFood {
		t.Errorf("GetCell(5, 5) = %+v", got)
	}

	s.Set(5, 5, 'Y')
	if got := s.GetCell(5, 5); got.Rune != 'Y' || got.Color != ColorDefault {
		t.Errorf("Set should reset the color, got %+v", got)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			s.SetColored(x, y, 'X', ColorWall)
		}
	}

	s.Clear()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Errorf("After Clear, expected blank at (%d, %d), got %+v", x, y, c)
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Score: 10", ColorText)

	if row := s.Row(1); !strings.HasPrefix(row, "  Score: 10") {
		t.Errorf("Row(1) = %q", row)
	}
	if s.GetCell(2, 1).Color != ColorText {
		t.Error("Text color not applied")
	}

	// Multi-byte runes take one cell each.
	s.DrawText(0, 2, "●█", ColorFood)
	if s.Get(0, 2) != '●' || s.Get(1, 2) != '█' {
		t.Errorf("Row(2) = %q", s.Row(2))
	}

	// Clipping
	s.DrawText(15, 3, "overflowing", ColorText)
	if s.Row(3)[15:] != "overf" {
		t.Errorf("Clipped row = %q", s.Row(3))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "PAUSED", ColorAccent)
	if got := s.Row(0); got != "  PAUSED   " {
		t.Errorf("Row(0) = %q", got)
	}

	// Centering counts runes, not bytes.
	s.Clear()
	s.DrawTextCentered(0, "▲▲▲", ColorAccent)
	if s.Get(4, 0) != '▲' || s.Get(6, 0) != '▲' || s.Get(3, 0) != ' ' {
		t.Errorf("Row(0) = %q", s.Row(0))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(0, 0, 6, 4), BoxSolid, ColorWall)

	want := []string{
		"┏━━━━┓",
		"┃    ┃",
		"┃    ┃",
		"┗━━━━┛",
	}
	for y, line := range want {
		if got := s.Row(y); got != line {
			t.Errorf("Row(%d) = %q, expected %q", y, got, line)
		}
	}
	if s.GetCell(0, 0).Color != ColorWall || s.GetCell(1, 1).Color != ColorDefault {
		t.Error("Box colors wrong")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'A')
	s.Set(2, 1, 'B')

	if got := s.String(); got != "A  \n  B" {
		t.Errorf("String() = %q", got)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(5, 5)
	s.SetColored(1, 1, 'X', ColorFood)
	s.Set(4, 4, 'Y')

	s.Resize(3, 3)
	if s.Width() != 3 || s.Height() != 3 {
		t.Fatalf("Resize: %dx%d", s.Width(), s.Height())
	}
	if c := s.GetCell(1, 1); c.Rune != 'X' || c.Color != ColorFood {
		t.Errorf("Content not preserved: %+v", c)
	}

	s.Resize(6, 6)
	if s.Get(1, 1) != 'X' || s.Get(4, 4) != ' ' {
		t.Error("Grow should keep old content and blank new cells")
	}
}

func TestScreenRuns(t *testing.T) {
	s := NewScreen(6, 1)
	s.SetColored(0, 0, '█', ColorSnakeHead)
	s.SetColored(1, 0, '█', ColorSnakeHead)
	s.SetColored(2, 0, '▓', ColorSnakeBody)
	s.SetColored(5, 0, '●', ColorFood)

	runs := s.Runs(0)
	want := []Run{
		{Text: "██", Color: ColorSnakeHead},
		{Text: "▓", Color: ColorSnakeBody},
		{Text: "  ", Color: ColorDefault},
		{Text: "●", Color: ColorFood},
	}
	if len(runs) != len(want) {
		t.Fatalf("Runs() = %+v", runs)
	}
	for i := range want {
		if runs[i] != want[i] {
			t.Errorf("run %d = %+v, expected %+v", i, runs[i], want[i])
		}
	}

	if s.Runs(5) != nil {
		t.Error("Out of range row should have no runs")
	}
}
