package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Both PCG words are derived from the one seed so that a simulation can be
// replayed from the value printed in its report.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Seed returns *seed when set, or a time-derived seed otherwise.
func Seed(seed *int64) int64 {
	if seed != nil {
		return *seed
	}
	return int64(mix(uint64(time.Now().UnixNano())) >> 1)
}

// Split derives the seed for stream i from a base seed, so workers started
// from the same base never share a sequence.
func Split(seed int64, i int) int64 {
	return int64(mix(uint64(seed) + uint64(i+1)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
