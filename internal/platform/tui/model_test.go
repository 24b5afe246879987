package tui

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/leaderboard"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/spectate"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var testRuntime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, FrameRate: 30, Seed: 1}

func newTestServices(t *testing.T) Services {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "tui.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := log.New(io.Discard)
	cfg := config.DefaultSnakeConfig()
	return Services{
		Config:      cfg,
		Leaderboard: leaderboard.NewService(store, nil, cfg.Leaderboard.Size, logger),
		Players:     spectate.NewRegistry(nil),
		Logger:      logger,
	}
}

func TestGameModelLifecycle(t *testing.T) {
	svc := newTestServices(t)
	m := NewGameModel(svc, testRuntime, "alice", snake.ModeBlocked)

	if !strings.Contains(m.View(), "ENTER to start") {
		t.Error("Idle game should prompt to start")
	}

	m, _ = m.Update(runeKey('m'))
	if m.State().Mode != snake.ModeWrap {
		t.Fatalf("Mode toggle while idle: got %s", m.State().Mode)
	}
	m, _ = m.Update(runeKey('m'))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.State().Status != snake.StatusPlaying {
		t.Fatalf("Expected playing after enter, got %s", m.State().Status)
	}
	if svc.Players.Count() != 1 {
		t.Errorf("Expected player registered, got %d", svc.Players.Count())
	}

	m, _ = m.Update(runeKey('m'))
	if m.State().Mode != snake.ModeBlocked {
		t.Error("Mode must not change while playing")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if m.State().Status != snake.StatusPaused {
		t.Fatalf("Expected paused, got %s", m.State().Status)
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("Paused view missing overlay")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})

	// Run straight into the right wall.
	var cmd tea.Cmd
	now := time.Unix(0, 0)
	for i := 0; i < 60 && m.State().Status == snake.StatusPlaying; i++ {
		now = now.Add(time.Second)
		m, cmd = m.Update(TickMsg(now))
	}
	if m.State().Status != snake.StatusGameOver {
		t.Fatalf("Expected game over, got %s", m.State().Status)
	}
	if svc.Players.Count() != 0 {
		t.Error("Player should leave the registry at game over")
	}
	if cmd == nil {
		t.Fatal("Expected a submission command")
	}

	m, _ = m.Update(cmd())
	top, _ := svc.Leaderboard.Top("")
	score := m.State().Score
	if score > 0 && (len(top) != 1 || top[0].Username != "alice") {
		t.Errorf("Score %d not recorded: %+v", score, top)
	}
	if score == 0 && len(top) != 0 {
		t.Errorf("Zero score recorded: %+v", top)
	}
	if !strings.Contains(m.View(), "GAME OVER") {
		t.Error("Game over view missing overlay")
	}

	m, _ = m.Update(runeKey('r'))
	if m.State().Status != snake.StatusIdle {
		t.Errorf("Expected idle after reset, got %s", m.State().Status)
	}
}

func TestGameModelSteering(t *testing.T) {
	m := NewGameModel(newTestServices(t), testRuntime, "bob", snake.ModeWrap)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.State().NextDirection != snake.DirRight {
		t.Error("Reversal should be ignored")
	}
	m, _ = m.Update(runeKey('w'))
	if m.State().NextDirection != snake.DirUp {
		t.Errorf("Expected up, got %s", m.State().NextDirection)
	}

	head := m.State().Head()
	now := time.Unix(0, 0)
	m, _ = m.Update(TickMsg(now))
	m, _ = m.Update(TickMsg(now.Add(snake.InitialSpeed)))
	if got := m.State().Head(); got != (snake.Point{X: head.X, Y: head.Y - 1}) {
		t.Errorf("Head moved to %v, want one up from %v", got, head)
	}
}

func TestGameModelBackAndQuit(t *testing.T) {
	svc := newTestServices(t)
	m := NewGameModel(svc, testRuntime, "carol", snake.ModeBlocked)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	back, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !back.BackToMenu() {
		t.Error("Esc should return to the menu")
	}
	if svc.Players.Count() != 0 {
		t.Error("Leaving the game should unregister the player")
	}

	quit, cmd := m.Update(runeKey('q'))
	if !quit.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}

func TestGameModelTooSmall(t *testing.T) {
	m := NewGameModel(newTestServices(t), testRuntime, "dave", snake.ModeBlocked)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	if !strings.Contains(m.View(), "Window too small") {
		t.Error("Expected too-small notice")
	}
}

func TestAppNavigation(t *testing.T) {
	svc := newTestServices(t)
	var model tea.Model = NewApp(svc, testRuntime, AppOptions{Username: "erin"})

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter}) // Play
	if model.(App).screen != ScreenGame {
		t.Fatalf("Expected game screen, got %d", model.(App).screen)
	}
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if model.(App).screen != ScreenMenu {
		t.Fatalf("Expected menu after esc, got %d", model.(App).screen)
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter}) // Leaderboard
	if model.(App).screen != ScreenScores {
		t.Fatalf("Expected scoreboard, got %d", model.(App).screen)
	}

	// Started on a screen other than the menu, back quits.
	model = NewApp(svc, testRuntime, AppOptions{Start: ScreenScores})
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil || model.View() != "" {
		t.Error("Back from a standalone screen should quit")
	}
}

func TestWatchModel(t *testing.T) {
	svc := newTestServices(t)
	svc.Players = spectate.NewRegistry(svc.Config.Spectator.DemoPlayers)

	m := NewWatchModel(svc, testRuntime, "")
	if !strings.Contains(m.View(), "PixelMaster") {
		t.Fatalf("Expected demo players listed:\n%s", m.View())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.viewer == nil || m.viewer.Player().Username != "NeonViper" {
		t.Fatal("Expected to watch the second player")
	}

	now := time.Now()
	for i := 0; i < 20; i++ {
		now = now.Add(time.Second)
		m, _ = m.Update(TickMsg(now))
	}
	if m.viewer.State().Status == snake.StatusIdle {
		t.Error("Viewer should be running")
	}
	if !strings.Contains(m.View(), "WATCHING NeonViper") {
		t.Error("Board view missing title")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.viewer != nil || m.IsGoingBack() {
		t.Error("Esc on the board should return to the list")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsGoingBack() {
		t.Error("Esc on the list should leave the screen")
	}
}

func TestWatchModelTarget(t *testing.T) {
	svc := newTestServices(t)
	p := svc.Players.Join("frank", snake.ModeWrap)

	m := NewWatchModel(svc, testRuntime, p.ID)
	if m.viewer == nil || m.viewer.Player().Username != "frank" {
		t.Fatal("Expected target opened")
	}

	m = NewWatchModel(svc, testRuntime, "missing")
	if m.viewer != nil || !strings.Contains(m.View(), "not playing") {
		t.Error("Unknown target should show a notice")
	}
}

func TestScoreboardTabs(t *testing.T) {
	svc := newTestServices(t)
	if err := svc.Leaderboard.Seed(svc.Config.Leaderboard.Seed); err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}

	m := NewScoreboardModel(svc, 80, 24)
	if len(m.Entries()) != 10 {
		t.Fatalf("Expected 10 entries, got %d", len(m.Entries()))
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	for _, e := range m.Entries() {
		if e.Mode != snake.ModeBlocked {
			t.Errorf("Walls tab shows %+v", e)
		}
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	for _, e := range m.Entries() {
		if e.Mode != snake.ModeWrap {
			t.Errorf("Passthrough tab shows %+v", e)
		}
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if len(m.Entries()) != 10 {
		t.Errorf("Expected All tab after cycling back, got %d entries", len(m.Entries()))
	}

	if !strings.Contains(m.View(), "PixelMaster") {
		t.Error("Table missing leader")
	}
}

func TestWatchModelCopyNotice(t *testing.T) {
	m := NewWatchModel(newTestServices(t), testRuntime, "")

	m, _ = m.Update(copiedMsg{text: "snake watch demo-1"})
	if !strings.Contains(m.View(), "Copied: snake watch demo-1") {
		t.Error("Expected copy confirmation")
	}
	m, _ = m.Update(copiedMsg{text: "snake watch demo-1", err: errors.New("no display")})
	if !strings.Contains(m.View(), "Clipboard unavailable") {
		t.Error("Expected clipboard error notice")
	}
}
