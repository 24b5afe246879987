package snake

// Opposite returns the reverse of d.
func Opposite(d Direction) Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// ValidTurn reports whether next may follow committed. Only an instant
// reversal is refused; it would always hit the second segment.
func ValidTurn(committed, next Direction) bool {
	return next != Opposite(committed)
}

// RequestDirection records d as the pending direction of a running game.
// The check is made against the committed direction, so several requests
// between two ticks simply overwrite each other.
func RequestDirection(s GameState, d Direction) GameState {
	if s.Status != StatusPlaying {
		return s
	}
	if ValidTurn(s.Direction, d) {
		s.NextDirection = d
	}
	return s
}
