package nn

import "math/rand"

// Uniform draws a value from U(lo, hi) using rng.
//
// The generator is always passed in explicitly so that a run is fully
// reproducible from its seed.
func Uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// NewRand returns a generator seeded with seed.
func NewRand(seed int64) *rand.Rand {
	//nolint:gosec // Using math/rand for weight initialization (not security-critical)
	return rand.New(rand.NewSource(seed))
}
