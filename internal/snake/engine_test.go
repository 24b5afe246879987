package snake

import (
	"math/rand"
	"slices"
	"testing"
	"time"
)

// scriptedRand replays fixed values; Intn results are reduced modulo n.
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func playing(mode Mode, dir Direction, food Point, body ...Point) GameState {
	return GameState{
		Snake:         body,
		Food:          food,
		Direction:     dir,
		NextDirection: dir,
		Status:        StatusPlaying,
		Mode:          mode,
		Speed:         InitialSpeed,
		Rules:         DefaultRules(),
	}
}

func TestNewGame(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := NewGame(ModeBlocked, DefaultRules(), rng)

	if s.Status != StatusIdle {
		t.Errorf("Expected idle status, got %s", s.Status)
	}
	if len(s.Snake) != 3 {
		t.Fatalf("Expected 3 segments, got %d", len(s.Snake))
	}
	if s.Head() != (Point{X: 10, Y: 10}) {
		t.Errorf("Expected head at centre, got %+v", s.Head())
	}
	if s.Direction != DirRight || s.NextDirection != DirRight {
		t.Errorf("Expected initial direction right, got %v/%v", s.Direction, s.NextDirection)
	}
	if s.Speed != 150*time.Millisecond {
		t.Errorf("Expected 150ms, got %v", s.Speed)
	}
	if s.Occupies(s.Food) {
		t.Errorf("Food placed on snake at %+v", s.Food)
	}
}

func TestAdvanceNotPlaying(t *testing.T) {
	for _, status := range []Status{StatusIdle, StatusPaused, StatusGameOver} {
		s := playing(ModeBlocked, DirRight, Point{X: 0, Y: 0}, Point{X: 5, Y: 5}, Point{X: 4, Y: 5})
		s.Status = status
		got := Advance(s, &scriptedRand{})
		if !got.Equal(s) {
			t.Errorf("Advance changed a %s game", status)
		}
	}
}

func TestAdvanceMovesInEachDirection(t *testing.T) {
	want := map[Direction]Point{
		DirUp:    {X: 10, Y: 9},
		DirDown:  {X: 10, Y: 11},
		DirLeft:  {X: 9, Y: 10},
		DirRight: {X: 11, Y: 10},
	}
	for dir, head := range want {
		s := playing(ModeBlocked, dir, Point{X: 0, Y: 0}, Point{X: 10, Y: 10})
		got := Advance(s, &scriptedRand{})
		if got.Head() != head {
			t.Errorf("%v: head = %+v, want %+v", dir, got.Head(), head)
		}
		if len(got.Snake) != 1 {
			t.Errorf("%v: length changed to %d", dir, len(got.Snake))
		}
	}
}

func TestBlockedWallScenario(t *testing.T) {
	s := playing(ModeBlocked, DirRight, Point{X: 0, Y: 0}, Point{X: 19, Y: 10}, Point{X: 18, Y: 10})
	got := Advance(s, &scriptedRand{})

	if got.Status != StatusGameOver {
		t.Fatalf("Expected game over, got %s", got.Status)
	}
	if !slices.Equal(got.Snake, s.Snake) {
		t.Errorf("Snake moved on wall hit: %v", got.Snake)
	}
	if got.Food != s.Food || got.Score != s.Score || got.Speed != s.Speed {
		t.Error("Wall hit changed food, score or speed")
	}
}

func TestBlockedAllEdges(t *testing.T) {
	tests := []struct {
		name string
		head Point
		dir  Direction
	}{
		{"right edge", Point{X: 19, Y: 4}, DirRight},
		{"left edge", Point{X: 0, Y: 4}, DirLeft},
		{"top edge", Point{X: 4, Y: 0}, DirUp},
		{"bottom edge", Point{X: 4, Y: 19}, DirDown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := playing(ModeBlocked, tc.dir, Point{X: 10, Y: 10}, tc.head)
			got := Advance(s, &scriptedRand{})
			if got.Status != StatusGameOver {
				t.Errorf("Expected game over, got %s", got.Status)
			}
			if got.Head() != tc.head {
				t.Errorf("Head moved to %+v", got.Head())
			}
		})
	}
}

func TestWrapScenario(t *testing.T) {
	s := playing(ModeWrap, DirRight, Point{X: 5, Y: 5}, Point{X: 19, Y: 10})
	got := Advance(s, &scriptedRand{})

	if got.Status != StatusPlaying {
		t.Fatalf("Expected playing, got %s", got.Status)
	}
	if got.Head() != (Point{X: 0, Y: 10}) {
		t.Errorf("Expected head (0,10), got %+v", got.Head())
	}
}

func TestWrapInvariant(t *testing.T) {
	n := GridSize
	for _, dir := range Directions {
		for i := 0; i < n; i++ {
			for _, edge := range []int{0, n - 1} {
				head := Point{X: i, Y: edge}
				if dir == DirLeft || dir == DirRight {
					head = Point{X: edge, Y: i}
				}
				s := playing(ModeWrap, dir, Point{X: -1, Y: -1}, head)
				got := Advance(s, &scriptedRand{}).Head()

				d := dir.Delta()
				want := Point{X: ((head.X+d.X)%n + n) % n, Y: ((head.Y+d.Y)%n + n) % n}
				if got != want {
					t.Fatalf("%v from %+v: got %+v, want %+v", dir, head, got, want)
				}
				if !InBounds(got, n) {
					t.Fatalf("%v from %+v: %+v off grid", dir, head, got)
				}
			}
		}
	}
}

func TestEatingScenario(t *testing.T) {
	s := playing(ModeBlocked, DirRight, Point{X: 6, Y: 5},
		Point{X: 5, Y: 5}, Point{X: 4, Y: 5}, Point{X: 3, Y: 5})
	got := Advance(s, rand.New(rand.NewSource(7)))

	if len(got.Snake) != 4 {
		t.Errorf("Expected length 4, got %d", len(got.Snake))
	}
	if got.Score != 10 {
		t.Errorf("Expected score 10, got %d", got.Score)
	}
	if got.Speed != 145*time.Millisecond {
		t.Errorf("Expected 145ms, got %v", got.Speed)
	}
	if got.Food == (Point{X: 6, Y: 5}) {
		t.Error("Food was not relocated")
	}
	if got.Occupies(got.Food) {
		t.Errorf("New food %+v is on the snake", got.Food)
	}
	if got.Snake[3] != (Point{X: 3, Y: 5}) {
		t.Errorf("Tail should be kept when growing, got %v", got.Snake)
	}
}

func TestGrowthLawWithoutFood(t *testing.T) {
	s := playing(ModeBlocked, DirRight, Point{X: 0, Y: 0},
		Point{X: 5, Y: 5}, Point{X: 4, Y: 5}, Point{X: 3, Y: 5})
	got := Advance(s, &scriptedRand{})

	want := []Point{{X: 6, Y: 5}, {X: 5, Y: 5}, {X: 4, Y: 5}}
	if !slices.Equal(got.Snake, want) {
		t.Errorf("Snake = %v, want %v", got.Snake, want)
	}
	if got.Score != s.Score || got.Speed != s.Speed || got.Food != s.Food {
		t.Error("Score, speed or food changed without eating")
	}
}

func TestSpeedFloor(t *testing.T) {
	s := playing(ModeWrap, DirRight, Point{X: 6, Y: 5}, Point{X: 5, Y: 5})
	s.Speed = MinSpeed + 2*time.Millisecond

	got := Advance(s, &scriptedRand{ints: []int{0, 0}})
	if got.Speed != MinSpeed {
		t.Errorf("Expected floor %v, got %v", MinSpeed, got.Speed)
	}

	got.Food = got.Head().Add(Point{X: 1})
	again := Advance(got, &scriptedRand{ints: []int{0, 0}})
	if again.Speed != MinSpeed {
		t.Errorf("Speed dropped below floor: %v", again.Speed)
	}
}

func TestSelfCollision(t *testing.T) {
	// Head at (5,5) heading down into (5,6), which is part of the body.
	s := playing(ModeBlocked, DirRight, Point{X: 0, Y: 0},
		Point{X: 5, Y: 5}, Point{X: 4, Y: 5}, Point{X: 4, Y: 6}, Point{X: 5, Y: 6}, Point{X: 6, Y: 6})
	s.NextDirection = DirDown

	got := Advance(s, &scriptedRand{})
	if got.Status != StatusGameOver {
		t.Fatalf("Expected game over, got %s", got.Status)
	}
	if got.Direction != DirDown {
		t.Errorf("Committed direction should be the attempted one, got %v", got.Direction)
	}
	if !slices.Equal(got.Snake, s.Snake) {
		t.Error("Snake changed on self collision")
	}
}

func TestTailCellCountsAsCollision(t *testing.T) {
	// A 4-long snake in a square: the next cell is the current tail.
	s := playing(ModeBlocked, DirUp, Point{X: 0, Y: 0},
		Point{X: 5, Y: 5}, Point{X: 5, Y: 6}, Point{X: 6, Y: 6}, Point{X: 6, Y: 5})
	s.NextDirection = DirRight

	got := Advance(s, &scriptedRand{})
	if got.Status != StatusGameOver {
		t.Errorf("Moving into the tail should end the game, got %s", got.Status)
	}
}

func TestAdvanceDoesNotMutateInput(t *testing.T) {
	body := []Point{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}}
	s := playing(ModeBlocked, DirRight, Point{X: 6, Y: 5}, body...)
	before := slices.Clone(s.Snake)

	_ = Advance(s, rand.New(rand.NewSource(3)))

	if !slices.Equal(s.Snake, before) {
		t.Errorf("Input snake mutated: %v", s.Snake)
	}
}

func TestFoodNeverOnSnake(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	s := NewGame(ModeWrap, DefaultRules(), rng).WithStatus(StatusPlaying)
	for i := 0; i < 2000 && s.Status == StatusPlaying; i++ {
		s = RequestDirection(s, ChooseDirection(s, rng))
		s = Advance(s, rng)
		if s.Occupies(s.Food) {
			t.Fatalf("Tick %d: food %+v on snake", i, s.Food)
		}
	}
}
