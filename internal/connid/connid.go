package connid

import (
	"fmt"
	rand "math/rand/v2"
	"strings"
	"sync"

	"github.com/coder/quartz"
)

// Crockford's base32, which sorts in the same order as the values it encodes
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded ID: 48 timestamp bits and 32 random bits, 5 bits per
// character.
const Length = 16

// Generator issues connection IDs that sort by the millisecond they were
// issued in.
type Generator struct {
	clock quartz.Clock
	mu    sync.Mutex
	rng   *rand.Rand
}

// NewGenerator creates a generator stamping IDs from clock. rng supplies the
// random suffix and must not be shared with other goroutines.
func NewGenerator(clock quartz.Clock, rng *rand.Rand) *Generator {
	return &Generator{clock: clock, rng: rng}
}

// Next returns a new ID
func (g *Generator) Next() string {
	ms := uint64(g.clock.Now().UnixMilli()) & (1<<48 - 1)

	g.mu.Lock()
	r := g.rng.Uint32()
	g.mu.Unlock()

	return encode(ms, r)
}

func encode(ms uint64, r uint32) string {
	hi := ms >> 32
	lo := ms<<32 | uint64(r)

	var out [Length]byte
	for i := Length - 1; i >= 0; i-- {
		out[i] = alphabet[lo&31]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out[:])
}

// Validate checks that id has the right length and alphabet
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("connection ID must be exactly %d characters, got %d", Length, len(id))
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}
