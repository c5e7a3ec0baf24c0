// Package random provides the randomness source for draws and shuffles.
package random

import "math/rand/v2"

// Source draws from the runtime's ChaCha8 generator, which is safe for concurrent use
type Source struct{}

// New returns the default randomness source
func New() Source {
	return Source{}
}

// Intn returns a uniform integer in [0, n)
func (Source) Intn(n int) int {
	return rand.IntN(n)
}

// Shuffle pseudo-randomly permutes n elements
func (Source) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}
