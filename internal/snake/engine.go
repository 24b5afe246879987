package snake

// Advance moves the snake one cell. It returns s unchanged unless the game is
// playing. Wall and self collisions end the game without moving the snake;
// the committed direction is updated either way.
func Advance(s GameState, rng Rand) GameState {
	if s.Status != StatusPlaying || len(s.Snake) == 0 {
		return s
	}

	dir := s.NextDirection
	head, ok := nextHead(s.Head(), dir, s.Mode, s.Rules.GridSize)
	if !ok || s.Occupies(head) {
		s.Status = StatusGameOver
		s.Direction = dir
		return s
	}

	body := make([]Point, 0, len(s.Snake)+1)
	body = append(body, head)
	body = append(body, s.Snake...)

	next := s
	next.Direction = dir
	if head == s.Food {
		next.Score += s.Rules.FoodReward
		next.Speed = max(s.Rules.MinSpeed, s.Speed-s.Rules.SpeedStep)
		next.Food = PlaceFood(body, s.Rules.GridSize, rng)
	} else {
		body = body[:len(body)-1]
	}
	next.Snake = body
	return next
}
