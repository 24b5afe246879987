package snake

// InBounds reports whether p lies on an n×n grid.
func InBounds(p Point, n int) bool {
	return p.X >= 0 && p.X < n && p.Y >= 0 && p.Y < n
}

// Wrap reduces each axis of p modulo n so the result is always on the grid.
func Wrap(p Point, n int) Point {
	return Point{X: mod(p.X, n), Y: mod(p.Y, n)}
}

func mod(v, n int) int {
	return ((v % n) + n) % n
}

// nextHead moves head one cell in dir and resolves the grid edge for mode.
// ok is false when the move leaves a blocked grid.
func nextHead(head Point, dir Direction, mode Mode, n int) (p Point, ok bool) {
	p = head.Add(dir.Delta())
	if mode == ModeWrap {
		return Wrap(p, n), true
	}
	return p, InBounds(p, n)
}
