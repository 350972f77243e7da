package core

import "math/rand"

// Rand is the uniform source used for action and target selection.
// Implementations must return a value in [0, n) for n > 0.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a deterministic source seeded with seed.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// Pick returns a uniformly chosen element of items.
// It panics on an empty slice, like rand.Intn(0).
func Pick[T any](rng Rand, items []T) T {
	return items[rng.Intn(len(items))]
}
