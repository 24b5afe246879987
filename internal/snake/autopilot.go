package snake

// DefaultExploreChance is how often the autopilot ignores a food-seeking move.
const DefaultExploreChance = 0.3

// Autopilot picks directions for spectator games.
type Autopilot struct {
	// ExploreChance is the probability of picking a random safe direction
	// even when one leads toward the food.
	ExploreChance float64
}

// DefaultAutopilot returns an autopilot with the 30% exploration rate.
func DefaultAutopilot() Autopilot {
	return Autopilot{ExploreChance: DefaultExploreChance}
}

// ChooseDirection runs the default autopilot.
func ChooseDirection(s GameState, rng Rand) Direction {
	return DefaultAutopilot().Choose(s, rng)
}

// Choose returns the direction to request for the next tick.
//
// Candidates are evaluated in Directions order (up, down, left, right); the
// first safe candidate that closes in on the food along its axis is the
// food-seeking choice. rng.Float64 is consulted only when such a candidate
// exists, and rng.Intn only when the pick falls back to a random safe move.
// With no safe move the committed direction is kept.
func (a Autopilot) Choose(s GameState, rng Rand) Direction {
	safe := a.SafeDirections(s)
	if len(safe) == 0 {
		return s.Direction
	}

	head := s.Head()
	for _, d := range safe {
		if !towardFood(head, s.Food, d) {
			continue
		}
		if rng.Float64() >= a.ExploreChance {
			return d
		}
		break
	}
	return safe[rng.Intn(len(safe))]
}

// SafeDirections returns the non-reversing directions whose next cell is on
// the grid (or wraps) and not part of the body.
func (a Autopilot) SafeDirections(s GameState) []Direction {
	safe := make([]Direction, 0, len(Directions))
	for _, d := range Directions {
		if !ValidTurn(s.Direction, d) {
			continue
		}
		p, ok := nextHead(s.Head(), d, s.Mode, s.Rules.GridSize)
		if !ok || s.Occupies(p) {
			continue
		}
		safe = append(safe, d)
	}
	return safe
}

func towardFood(head, food Point, d Direction) bool {
	switch d {
	case DirUp:
		return food.Y < head.Y
	case DirDown:
		return food.Y > head.Y
	case DirLeft:
		return food.X < head.X
	case DirRight:
		return food.X > head.X
	}
	return false
}
