package colorplace

import "math/rand"

// Source supplies the randomness for every decision in a game.
// *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// NewSource returns a seeded Source.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// IntRange returns a uniform integer in [lo, hi].
func IntRange(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}

// pick returns a uniform element of items. items must not be empty.
func pick[T any](src Source, items []T) T {
	return items[src.Intn(len(items))]
}
