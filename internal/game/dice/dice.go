// Package dice provides the randomness abstraction, the die kind catalog, and
// the roll command model for the dicetable roller.
package dice

// Source is the randomness provider for dice, physics, and bounce draws.
//
// Implementations MUST be safe for concurrent use; every rolling die draws
// from the same Source on its own goroutine.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Between returns a uniformly drawn int in [lo, hi].
//
// Precondition: lo <= hi.
func Between(src Source, lo, hi int) int {
	if lo > hi {
		panic("dice: Between called with lo > hi")
	}
	return lo + src.Intn(hi-lo+1)
}

// OneIn reports true with probability 1/n.
//
// Precondition: n > 0.
func OneIn(src Source, n int) bool {
	return src.Intn(n) == 0
}
