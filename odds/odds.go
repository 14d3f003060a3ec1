// Package odds computes the probability of drawing a combination of card
// categories in a single hand drawn without replacement.
//
// All results are percentages in [0, 100]. Invalid input never panics or
// returns an error; it yields 0.
package odds

import "math"

// Condition constrains how many cards of one category may appear in the hand.
// A valid condition satisfies 0 <= Min <= Max <= Amount.
type Condition struct {
	Amount int // copies of the category in the deck
	Min    int // fewest copies accepted in the hand
	Max    int // most copies accepted in the hand
}

// LogBinomial returns ln(C(n, k)). It returns 0 for k <= 0. Callers keep
// k <= n; at k = n+1 the result is -Inf, a zero coefficient.
func LogBinomial(n, k int) float64 {
	result := 0.0
	for i := 0; i < k; i++ {
		result += math.Log(float64(n - i))
		result -= math.Log(float64(i + 1))
	}
	return result
}

// Hypergeometric returns the probability, as a percentage, of drawing exactly
// successesNeeded copies of a category with successesInDeck copies when
// handSize cards are drawn from a deck of deckSize cards.
func Hypergeometric(deckSize, handSize, successesInDeck, successesNeeded int) float64 {
	if successesNeeded > successesInDeck || successesNeeded > handSize {
		return 0
	}
	if successesNeeded < 0 || handSize < 0 || successesInDeck < 0 {
		return 0
	}
	if deckSize < handSize || successesInDeck > deckSize {
		return 0
	}
	if handSize-successesNeeded > deckSize-successesInDeck {
		return 0
	}

	logNumerator := LogBinomial(successesInDeck, successesNeeded) +
		LogBinomial(deckSize-successesInDeck, handSize-successesNeeded)
	logDenominator := LogBinomial(deckSize, handSize)

	return math.Exp(logNumerator-logDenominator) * 100
}

// MultiCondition returns the probability, as a percentage, that a hand of
// handSize cards drawn from deckSize cards satisfies every condition at once.
//
// Conditions partition the deck in order. Each one is evaluated against the
// cards not claimed by earlier conditions and the hand slots they left open,
// so the result does not depend on the order of conditions. Deck cards that
// no condition describes take up whatever hand slots remain.
//
// Evaluating every condition against the full deck instead would make the
// result depend on order and drift from the exact value: the worked example
// of one Allure (1..1 of 1) and DARK (1..4 of 10) in 40 cards drawing 5 gives
// 8.8905% here, where a full-deck calculator reports 8.7516%.
//
// If any condition breaks 0 <= Min <= Max <= Amount the result is 0.
func MultiCondition(deckSize, handSize int, conditions []Condition) float64 {
	for _, c := range conditions {
		if c.Min > c.Amount || c.Max > c.Amount || c.Min > c.Max {
			return 0
		}
	}

	total := 0.0
	var walk func(index, remainingHand, remainingDeck int, probability float64)
	walk = func(index, remainingHand, remainingDeck int, probability float64) {
		if index == len(conditions) {
			// Leftover slots are filled from undescribed cards.
			if remainingHand >= 0 {
				total += probability
			}
			return
		}

		c := conditions[index]
		upper := min(c.Max, remainingHand, c.Amount)
		for i := c.Min; i <= upper; i++ {
			p := Hypergeometric(remainingDeck, remainingHand, c.Amount, i) / 100
			if p == 0 {
				continue
			}
			walk(index+1, remainingHand-i, remainingDeck-c.Amount, probability*p)
		}
	}

	walk(0, handSize, deckSize, 1)
	return total * 100
}
