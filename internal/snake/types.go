// Package snake contains the pure Snake simulation: the tick function, food
// placement, direction validation and the autopilot used for spectator games.
// Nothing in this package reads the clock or a global random source; every
// transition takes a GameState by value and returns a new one.
package snake

import (
	"fmt"
	"slices"
	"time"
)

// Default rule values.
const (
	GridSize     = 20
	InitialSpeed = 150 * time.Millisecond
	MinSpeed     = 50 * time.Millisecond
	SpeedStep    = 5 * time.Millisecond
	FoodReward   = 10
	StartLength  = 3
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every direction in the order the autopilot evaluates them.
var Directions = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Delta returns the unit vector for the direction. Y grows downward.
func (d Direction) Delta() Point {
	switch d {
	case DirUp:
		return Point{X: 0, Y: -1}
	case DirDown:
		return Point{X: 0, Y: 1}
	case DirLeft:
		return Point{X: -1, Y: 0}
	case DirRight:
		return Point{X: 1, Y: 0}
	default:
		return Point{}
	}
}

// ParseDirection converts a lower-case direction name to a Direction.
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if d.String() == s {
			return d, nil
		}
	}
	return DirRight, fmt.Errorf("snake: unknown direction %q", s)
}

// Mode decides what happens when the head leaves the grid.
type Mode string

const (
	// ModeWrap wraps the head to the opposite edge.
	ModeWrap Mode = "passthrough"
	// ModeBlocked ends the game when the head leaves the grid.
	ModeBlocked Mode = "walls"
)

// Modes lists the playable modes.
var Modes = []Mode{ModeBlocked, ModeWrap}

// Title returns the display name of the mode.
func (m Mode) Title() string {
	switch m {
	case ModeWrap:
		return "Passthrough"
	case ModeBlocked:
		return "Walls"
	default:
		return string(m)
	}
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeWrap {
		return ModeBlocked
	}
	return ModeWrap
}

// ParseMode accepts the stored names plus the aliases "wrap" and "blocked".
func ParseMode(s string) (Mode, error) {
	switch s {
	case string(ModeWrap), "wrap":
		return ModeWrap, nil
	case string(ModeBlocked), "blocked":
		return ModeBlocked, nil
	}
	return "", fmt.Errorf("snake: unknown mode %q (want walls or passthrough)", s)
}

// Status is the lifecycle state of a game.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusPlaying  Status = "playing"
	StatusPaused   Status = "paused"
	StatusGameOver Status = "game_over"
)

// Point represents a grid cell.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Rules holds the tunable constants of a game.
type Rules struct {
	GridSize     int
	InitialSpeed time.Duration
	MinSpeed     time.Duration
	SpeedStep    time.Duration
	FoodReward   int
}

// DefaultRules returns the classic 20x20 rules.
func DefaultRules() Rules {
	return Rules{
		GridSize:     GridSize,
		InitialSpeed: InitialSpeed,
		MinSpeed:     MinSpeed,
		SpeedStep:    SpeedStep,
		FoodReward:   FoodReward,
	}
}

// GameState is an immutable snapshot of a game. Transition functions never
// modify the Snake slice of their input; they allocate a new one.
type GameState struct {
	Snake         []Point
	Food          Point
	Direction     Direction // committed on the last advance
	NextDirection Direction // applied on the next advance
	Score         int
	Status        Status
	Mode          Mode
	Speed         time.Duration
	Rules         Rules
}

// NewGame builds an idle game: a three-segment snake in the centre heading
// right, and food somewhere off the snake.
func NewGame(mode Mode, rules Rules, rng Rand) GameState {
	center := rules.GridSize / 2
	body := make([]Point, StartLength)
	for i := range body {
		body[i] = Point{X: center - i, Y: center}
	}
	return GameState{
		Snake:         body,
		Food:          PlaceFood(body, rules.GridSize, rng),
		Direction:     DirRight,
		NextDirection: DirRight,
		Status:        StatusIdle,
		Mode:          mode,
		Speed:         rules.InitialSpeed,
		Rules:         rules,
	}
}

// Head returns the first segment. The zero Point is returned for an empty snake.
func (s GameState) Head() Point {
	if len(s.Snake) == 0 {
		return Point{}
	}
	return s.Snake[0]
}

// Occupies reports whether any segment sits on p.
func (s GameState) Occupies(p Point) bool {
	return slices.Contains(s.Snake, p)
}

// Equal reports structural equality.
func (s GameState) Equal(o GameState) bool {
	return s.Food == o.Food &&
		s.Direction == o.Direction &&
		s.NextDirection == o.NextDirection &&
		s.Score == o.Score &&
		s.Status == o.Status &&
		s.Mode == o.Mode &&
		s.Speed == o.Speed &&
		s.Rules == o.Rules &&
		slices.Equal(s.Snake, o.Snake)
}

// WithStatus returns a copy with a different status.
func (s GameState) WithStatus(status Status) GameState {
	s.Status = status
	return s
}
