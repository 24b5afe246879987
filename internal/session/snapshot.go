package session

import (
	"slices"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

// Snapshot is a flattened view of a game for determinism tests, logs and
// the watch feed.
type Snapshot struct {
	Tick      uint64        `json:"tick"`
	Status    snake.Status  `json:"status"`
	Mode      snake.Mode    `json:"mode"`
	Score     int           `json:"score"`
	Length    int           `json:"length"`
	Head      snake.Point   `json:"head"`
	Direction string        `json:"direction"`
	Food      snake.Point   `json:"food"`
	SpeedMS   int64         `json:"speed_ms"`
	Grid      int           `json:"grid"`
	Body      []snake.Point `json:"body"`
}

// Snapshot returns the current game snapshot.
func (d *Driver) Snapshot() Snapshot {
	s := d.state
	return Snapshot{
		Tick:      d.ticks,
		Status:    s.Status,
		Mode:      s.Mode,
		Score:     s.Score,
		Length:    len(s.Snake),
		Head:      s.Head(),
		Direction: s.Direction.String(),
		Food:      s.Food,
		SpeedMS:   s.Speed.Milliseconds(),
		Grid:      s.Rules.GridSize,
		Body:      slices.Clone(s.Snake),
	}
}
