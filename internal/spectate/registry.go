// Package spectate tracks who is playing and runs the autopilot games shown
// to spectators.
package spectate

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// Player is an entry in the active players list.
type Player struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Mode      snake.Mode `json:"mode"`
	Score     int        `json:"score"`
	StartedAt time.Time  `json:"startedAt"`
	Demo      bool       `json:"demo,omitempty"`
}

// Registry tracks active players.
// Thread-safe for concurrent access.
type Registry struct {
	mu      sync.RWMutex
	players map[string]Player
	demo    []config.DemoPlayer
	now     func() time.Time
}

// NewRegistry creates a registry. demo players are listed while nobody is
// playing.
func NewRegistry(demo []config.DemoPlayer) *Registry {
	return &Registry{
		players: make(map[string]Player),
		demo:    demo,
		now:     time.Now,
	}
}

// Join registers a new game and returns its entry.
func (r *Registry) Join(username string, mode snake.Mode) Player {
	p := Player{
		ID:        uuid.NewString(),
		Username:  username,
		Mode:      mode,
		StartedAt: r.now(),
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[p.ID] = p
	return p
}

// Update sets the score and mode of a registered game. It reports whether
// the id was known.
func (r *Registry) Update(id string, score int, mode snake.Mode) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok {
		return false
	}
	p.Score = score
	p.Mode = mode
	r.players[id] = p
	return true
}

// Leave removes a game.
func (r *Registry) Leave(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.players, id)
}

// Count returns the number of live games.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

// List returns live games, longest running first. With no live games the
// demo players are returned instead.
func (r *Registry) List() []Player {
	r.mu.RLock()
	out := make([]Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p)
	}
	r.mu.RUnlock()

	if len(out) == 0 {
		return r.demoPlayers()
	}
	slices.SortFunc(out, func(a, b Player) int {
		if c := a.StartedAt.Compare(b.StartedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// Get finds a live game or a demo player by id.
func (r *Registry) Get(id string) (Player, bool) {
	r.mu.RLock()
	p, ok := r.players[id]
	r.mu.RUnlock()
	if ok {
		return p, true
	}
	for _, d := range r.demoPlayers() {
		if d.ID == id {
			return d, true
		}
	}
	return Player{}, false
}

func (r *Registry) demoPlayers() []Player {
	now := r.now()
	out := make([]Player, 0, len(r.demo))
	for i, d := range r.demo {
		mode, err := snake.ParseMode(d.Mode)
		if err != nil {
			mode = snake.ModeBlocked
		}
		out = append(out, Player{
			ID:        demoID(i),
			Username:  d.Username,
			Mode:      mode,
			Score:     d.Score,
			StartedAt: now.Add(-time.Duration(d.PlayingForS) * time.Second),
			Demo:      true,
		})
	}
	return out
}

func demoID(i int) string {
	return fmt.Sprintf("demo-%d", i+1)
}
