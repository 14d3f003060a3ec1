package deck

import rand "math/rand/v2"

// Card is the index into Deck.All of the category a card belongs to.
type Card int

// Pile is a shuffled, dealable deck whose cards only carry their category.
type Pile struct {
	template []Card
	cards    []Card
	rng      *rand.Rand
}

// NewPile lays out Amount cards for every category of d, Miscellaneous last,
// and shuffles them.
func NewPile(d *Deck, rng *rand.Rand) *Pile {
	p := &Pile{rng: rng}
	for i, c := range d.All() {
		for n := 0; n < c.Amount; n++ {
			p.template = append(p.template, Card(i))
		}
	}
	p.cards = make([]Card, 0, len(p.template))
	p.Reset()
	return p
}

// Shuffle randomizes the order of the cards left in the pile.
func (p *Pile) Shuffle() {
	p.rng.Shuffle(len(p.cards), func(i, j int) {
		p.cards[i], p.cards[j] = p.cards[j], p.cards[i]
	})
}

// Deal removes and returns the top card.
func (p *Pile) Deal() (Card, bool) {
	if len(p.cards) == 0 {
		return 0, false
	}
	card := p.cards[0]
	p.cards = p.cards[1:]
	return card, true
}

// DealN deals up to n cards.
func (p *Pile) DealN(n int) []Card {
	n = min(n, len(p.cards))
	hand := make([]Card, n)
	for i := range hand {
		hand[i], _ = p.Deal()
	}
	return hand
}

// Draw picks n cards uniformly without replacement and tallies them per
// category into counts, which must have one slot per category. Cards are
// swapped into the first n positions and nothing is removed, so repeated
// draws need no Reset.
func (p *Pile) Draw(n int, counts []int) {
	clear(counts)
	n = min(n, len(p.cards))
	for i := 0; i < n; i++ {
		j := i + p.rng.IntN(len(p.cards)-i)
		p.cards[i], p.cards[j] = p.cards[j], p.cards[i]
		counts[p.cards[i]]++
	}
}

// Remaining returns the number of cards left in the pile.
func (p *Pile) Remaining() int {
	return len(p.cards)
}

// Reset restores every card and shuffles.
func (p *Pile) Reset() {
	p.cards = append(p.cards[:0], p.template...)
	p.Shuffle()
}
