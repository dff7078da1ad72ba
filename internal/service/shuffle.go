package service

import (
	"math/rand/v2"
)

// Rand is a uniform random source.
type Rand interface {
	// IntN returns a uniform integer in [0, n).
	IntN(n int) int
}

// globalRand uses the process-wide generator, which is safe for concurrent use.
type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n)
}

// DefaultRand returns the unseeded process-wide random source.
func DefaultRand() Rand {
	return globalRand{}
}

// Shuffle permutes s in place with the Fisher-Yates algorithm.
func Shuffle[T any](rng Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
