// Package session drives a snake.GameState over wall-clock time. It owns the
// lifecycle (idle, playing, paused, game over), gates advances to the game's
// current speed and reports the end of a game through a callback.
//
// A Driver is not safe for concurrent use; it belongs to the goroutine that
// renders it (a bubbletea model or a websocket writer).
package session

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

// GameOver describes a finished game.
type GameOver struct {
	Score  int
	Mode   snake.Mode
	Length int
	Ticks  uint64
}

// GameOverFunc is invoked once per finished game.
type GameOverFunc func(GameOver)

// Option configures a Driver.
type Option func(*Driver)

// WithRules overrides the default rule set.
func WithRules(r snake.Rules) Option {
	return func(d *Driver) { d.rules = r }
}

// WithSeed seeds the driver's random source. Zero keeps the time-based seed.
func WithSeed(seed int64) Option {
	return func(d *Driver) {
		if seed != 0 {
			d.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// WithRand injects a random source.
func WithRand(rng snake.Rand) Option {
	return func(d *Driver) { d.rng = rng }
}

// WithSpectator lets the autopilot steer instead of a human.
func WithSpectator(a snake.Autopilot) Option {
	return func(d *Driver) { d.autopilot = &a }
}

// WithGameOver registers the end-of-game callback.
func WithGameOver(fn GameOverFunc) Option {
	return func(d *Driver) { d.onGameOver = fn }
}

// Driver runs one game at a time.
type Driver struct {
	rules      snake.Rules
	mode       snake.Mode
	rng        snake.Rand
	autopilot  *snake.Autopilot
	onGameOver GameOverFunc

	state    snake.GameState
	ticks    uint64
	anchor   time.Time
	anchored bool
}

// New creates an idle driver for mode.
func New(mode snake.Mode, opts ...Option) *Driver {
	d := &Driver{
		rules: snake.DefaultRules(),
		mode:  mode,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.state = snake.NewGame(d.mode, d.rules, d.rng)
	return d
}

// State returns the current game state.
func (d *Driver) State() snake.GameState { return d.state }

// Mode returns the mode the next game will use.
func (d *Driver) Mode() snake.Mode { return d.mode }

// Ticks returns the number of advances in the current game.
func (d *Driver) Ticks() uint64 { return d.ticks }

// Spectating reports whether the autopilot steers.
func (d *Driver) Spectating() bool { return d.autopilot != nil }

// Start begins a fresh game in the current mode.
func (d *Driver) Start() {
	d.state = snake.NewGame(d.mode, d.rules, d.rng).WithStatus(snake.StatusPlaying)
	d.ticks = 0
	d.anchored = false
}

// Pause suspends a running game.
func (d *Driver) Pause() {
	if d.state.Status == snake.StatusPlaying {
		d.state = d.state.WithStatus(snake.StatusPaused)
	}
}

// Resume continues a paused game. The next Tick re-anchors the clock so the
// time spent paused does not count toward the next advance.
func (d *Driver) Resume() {
	if d.state.Status == snake.StatusPaused {
		d.state = d.state.WithStatus(snake.StatusPlaying)
		d.anchored = false
	}
}

// TogglePause switches between playing and paused.
func (d *Driver) TogglePause() {
	switch d.state.Status {
	case snake.StatusPlaying:
		d.Pause()
	case snake.StatusPaused:
		d.Resume()
	}
}

// Reset discards the current game and returns to idle.
func (d *Driver) Reset() {
	d.state = snake.NewGame(d.mode, d.rules, d.rng)
	d.ticks = 0
	d.anchored = false
}

// SetMode switches mode and resets to idle.
func (d *Driver) SetMode(m snake.Mode) {
	d.mode = m
	d.Reset()
}

// RequestDirection forwards a human turn to the direction policy.
func (d *Driver) RequestDirection(dir snake.Direction) {
	d.state = snake.RequestDirection(d.state, dir)
}

// Tick advances the game once for every Speed interval of accumulated time,
// at most once per call. The first Tick after Start or Resume only records
// now. It reports whether the game advanced.
func (d *Driver) Tick(now time.Time) bool {
	if d.state.Status != snake.StatusPlaying {
		return false
	}
	if !d.anchored {
		d.anchor = now
		d.anchored = true
		return false
	}
	speed := d.state.Speed
	if now.Sub(d.anchor) < speed {
		return false
	}
	// Carry the overshoot into the next interval; after a stall, restart
	// from now so a single call never owes more than one advance.
	d.anchor = d.anchor.Add(speed)
	if now.Sub(d.anchor) >= speed {
		d.anchor = now
	}
	return d.Step()
}

// Step advances the game once, ignoring the clock.
func (d *Driver) Step() bool {
	if d.state.Status != snake.StatusPlaying {
		return false
	}
	if d.autopilot != nil {
		d.state = snake.RequestDirection(d.state, d.autopilot.Choose(d.state, d.rng))
	}
	d.state = snake.Advance(d.state, d.rng)
	d.ticks++

	if d.state.Status == snake.StatusGameOver && d.onGameOver != nil {
		d.onGameOver(GameOver{
			Score:  d.state.Score,
			Mode:   d.state.Mode,
			Length: len(d.state.Snake),
			Ticks:  d.ticks,
		})
	}
	return true
}
