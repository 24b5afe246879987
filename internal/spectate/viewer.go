package spectate

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// DefaultRestartDelay is the pause between a finished autopilot game and
// the next one.
const DefaultRestartDelay = 2 * time.Second

// Viewer runs an autopilot game on behalf of a watched player. The board is
// simulated; only the player's name, mode and base score are real.
type Viewer struct {
	player Player
	driver *session.Driver
	delay  time.Duration

	waiting bool
	overAt  time.Time
	games   int
}

// NewViewer starts an autopilot game in the player's mode.
func NewViewer(p Player, rules snake.Rules, pilot snake.Autopilot, restartDelay time.Duration, opts ...session.Option) *Viewer {
	if restartDelay <= 0 {
		restartDelay = DefaultRestartDelay
	}
	opts = append([]session.Option{session.WithRules(rules)}, opts...)
	opts = append(opts, session.WithSpectator(pilot))

	d := session.New(p.Mode, opts...)
	d.Start()
	return &Viewer{player: p, driver: d, delay: restartDelay, games: 1}
}

// Tick advances the simulation. Once the autopilot dies, a new game starts
// after the restart delay. It reports whether anything changed.
func (v *Viewer) Tick(now time.Time) bool {
	if v.waiting {
		if now.Sub(v.overAt) < v.delay {
			return false
		}
		v.waiting = false
		v.games++
		v.driver.Start()
		return true
	}

	if !v.driver.Tick(now) {
		return false
	}
	if v.driver.State().Status == snake.StatusGameOver {
		v.waiting = true
		v.overAt = now
	}
	return true
}

// RestartIn returns the time left before the next game, or zero.
func (v *Viewer) RestartIn(now time.Time) time.Duration {
	if !v.waiting {
		return 0
	}
	left := v.delay - now.Sub(v.overAt)
	if left < 0 {
		return 0
	}
	return left
}

// DisplayScore is the player's score plus the simulated one.
func (v *Viewer) DisplayScore() int {
	return v.player.Score + v.driver.State().Score
}

// Player returns the watched player.
func (v *Viewer) Player() Player { return v.player }

// SetPlayer refreshes the watched player's details. A mode change restarts
// the simulation in the new mode.
func (v *Viewer) SetPlayer(p Player) {
	v.player = p
	if p.Mode != v.driver.Mode() {
		v.driver.SetMode(p.Mode)
		v.driver.Start()
		v.waiting = false
		v.games++
	}
}

// State returns the simulated game.
func (v *Viewer) State() snake.GameState { return v.driver.State() }

// Snapshot returns the simulated game as a snapshot.
func (v *Viewer) Snapshot() session.Snapshot { return v.driver.Snapshot() }

// Games returns how many simulated games have been started.
func (v *Viewer) Games() int { return v.games }
