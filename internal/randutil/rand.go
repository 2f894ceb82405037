// Package randutil derives reproducible random sources for dealing hands.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Both PCG seeds are mixed from the one value so that a seed printed in a
// log reproduces the whole run.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// FromFlag uses seed when set and the wall clock otherwise, returning the
// seed actually used alongside the source.
func FromFlag(seed *int64) (int64, *rand.Rand) {
	s := time.Now().UnixNano()
	if seed != nil {
		s = *seed
	}
	return s, New(s)
}

// Split derives an independent source for worker i of a run.
func Split(seed int64, i int) *rand.Rand {
	return New(int64(mix(uint64(seed) + uint64(i+1)*goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
