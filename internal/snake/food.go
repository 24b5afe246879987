package snake

// Rand is the random source used by food placement and the autopilot.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// PlaceFood draws cells uniformly from the n×n grid until one is not in
// occupied. The caller must leave at least one free cell; a full grid never
// returns.
func PlaceFood(occupied []Point, n int, rng Rand) Point {
	taken := make(map[Point]struct{}, len(occupied))
	for _, p := range occupied {
		taken[p] = struct{}{}
	}
	for {
		p := Point{X: rng.Intn(n), Y: rng.Intn(n)}
		if _, hit := taken[p]; !hit {
			return p
		}
	}
}
