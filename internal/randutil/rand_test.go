package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a, b := New(7), New(7)
	for i := 0; i < 16; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestSeed(t *testing.T) {
	fixed := int64(99)
	assert.Equal(t, int64(99), Seed(&fixed))
	assert.GreaterOrEqual(t, Seed(nil), int64(0))
}

func TestSplit(t *testing.T) {
	seen := make(map[int64]bool)
	for i := 0; i < 64; i++ {
		s := Split(1234, i)
		assert.False(t, seen[s], "stream %d repeats a seed", i)
		seen[s] = true
	}
	assert.Equal(t, Split(1234, 3), Split(1234, 3))
}
