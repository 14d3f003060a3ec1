package simulator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat/combin"

	"github.com/lox/handodds/internal/deck"
	"github.com/lox/handodds/odds"
)

// MaxEnumeration bounds the number of hands Enumerate will visit.
const MaxEnumeration = 5_000_000

var ErrTooManyHands = errors.New("too many hands to enumerate")

// Enumerate visits every possible hand of d and returns the exact share that
// satisfies every category. It refuses decks with more than MaxEnumeration
// distinct hands.
func Enumerate(ctx context.Context, d *deck.Deck) (Result, error) {
	if err := d.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid deck: %w", err)
	}

	hands := math.Round(math.Exp(odds.LogBinomial(d.Size, d.HandSize)))
	if hands > MaxEnumeration {
		return Result{}, fmt.Errorf("%w: C(%d,%d) = %.0f", ErrTooManyHands, d.Size, d.HandSize, hands)
	}

	all := d.All()
	labels := make([]int, 0, d.Size)
	for i, c := range all {
		for n := 0; n < c.Amount; n++ {
			labels = append(labels, i)
		}
	}

	start := time.Now()
	result := Result{Exact: true}
	counts := make([]int, len(all))
	hand := make([]int, d.HandSize)
	gen := combin.NewCombinationGenerator(d.Size, d.HandSize)

	for gen.Next() {
		if result.Trials%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, fmt.Errorf("enumeration aborted: %w", err)
			}
		}
		gen.Combination(hand)
		clear(counts)
		for _, idx := range hand {
			counts[labels[idx]]++
		}
		result.Add(d.Satisfied(counts))
	}

	result.Duration = time.Since(start)
	return result, nil
}
