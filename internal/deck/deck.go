package deck

import (
	"errors"
	"fmt"

	"github.com/lox/handodds/odds"
)

// MiscellaneousName names the catch-all category built by Miscellaneous.
const MiscellaneousName = "Miscellaneous"

// MaxBranches bounds the count combinations Probability will explore.
const MaxBranches = 250_000

var (
	ErrDeckSize         = errors.New("deck size must be greater than 0")
	ErrHandSize         = errors.New("hand size must be between 1 and the deck size")
	ErrNegative         = errors.New("all values must be non-negative")
	ErrMinExceedsAmount = errors.New("min cannot exceed the amount of cards entered")
	ErrMaxExceedsAmount = errors.New("max cannot exceed the amount of cards entered")
	ErrMinExceedsMax    = errors.New("min cannot be greater than max")
	ErrTotalMismatch    = errors.New("total amount of cards must equal deck size")
	ErrTooComplex       = errors.New("too many category combinations to calculate")
)

// Category is a named group of cards with an accepted range of copies in hand.
type Category struct {
	Name   string
	Amount int
	Min    int
	Max    int
}

// Condition returns the category as a composer condition.
func (c Category) Condition() odds.Condition {
	return odds.Condition{Amount: c.Amount, Min: c.Min, Max: c.Max}
}

// Deck describes one probability question: draw HandSize cards from Size
// cards and accept the hand when every category's range is met.
type Deck struct {
	Name       string
	Size       int
	HandSize   int
	Categories []Category
}

// New returns an empty deck with the given sizes.
func New(name string, size, handSize int) *Deck {
	return &Deck{Name: name, Size: size, HandSize: handSize}
}

// Add appends a category and returns the deck for chaining.
func (d *Deck) Add(name string, amount, min, max int) *Deck {
	d.Categories = append(d.Categories, Category{Name: name, Amount: amount, Min: min, Max: max})
	return d
}

// Remove deletes the category at index i. Out of range indexes are ignored.
func (d *Deck) Remove(i int) {
	if i < 0 || i >= len(d.Categories) {
		return
	}
	d.Categories = append(d.Categories[:i], d.Categories[i+1:]...)
}

// Clamp limits an entered count to [0, Size].
func (d *Deck) Clamp(v int) int {
	return max(0, min(v, d.Size))
}

// Miscellaneous returns the category covering every card the user did not
// describe. Its range is whatever the other categories leave open in the hand.
func (d *Deck) Miscellaneous() Category {
	var amount, maxSum, minSum int
	for _, c := range d.Categories {
		amount += c.Amount
		maxSum += c.Max
		minSum += c.Min
	}

	misc := Category{Name: MiscellaneousName}
	misc.Amount = max(0, d.Size-amount)
	misc.Min = max(0, d.HandSize-maxSum)
	misc.Max = max(min(d.HandSize-minSum, misc.Amount), misc.Min)
	return misc
}

// All returns the user categories followed by Miscellaneous.
func (d *Deck) All() []Category {
	all := make([]Category, 0, len(d.Categories)+1)
	all = append(all, d.Categories...)
	return append(all, d.Miscellaneous())
}

// Conditions returns All as composer conditions.
func (d *Deck) Conditions() []odds.Condition {
	all := d.All()
	conditions := make([]odds.Condition, len(all))
	for i, c := range all {
		conditions[i] = c.Condition()
	}
	return conditions
}

// Validate reports the first problem that would make the probability
// meaningless. Category errors wrap one of the package sentinels.
func (d *Deck) Validate() error {
	if d.Size <= 0 {
		return ErrDeckSize
	}
	if d.HandSize <= 0 || d.HandSize > d.Size {
		return ErrHandSize
	}

	total := 0
	for _, c := range d.All() {
		if c.Amount < 0 || c.Min < 0 || c.Max < 0 {
			return fmt.Errorf("%s: %w", c.label(), ErrNegative)
		}
		if c.Min > c.Amount {
			return fmt.Errorf("%s: %w", c.label(), ErrMinExceedsAmount)
		}
		if c.Max > c.Amount {
			return fmt.Errorf("%s: %w", c.label(), ErrMaxExceedsAmount)
		}
		if c.Min > c.Max {
			return fmt.Errorf("%s: %w", c.label(), ErrMinExceedsMax)
		}
		total += c.Amount
	}

	if total != d.Size {
		return fmt.Errorf("%w: categories hold %d of %d cards", ErrTotalMismatch, total, d.Size)
	}

	if b := d.Branches(); b > MaxBranches {
		return fmt.Errorf("%w: more than %d, narrow some min/max ranges", ErrTooComplex, MaxBranches)
	}
	return nil
}

// Branches returns how many per-category count combinations the composer
// may visit for this deck. Counting stops just past MaxBranches.
func (d *Deck) Branches() int {
	branches := 1
	for _, c := range d.All() {
		width := max(0, min(c.Max, d.HandSize)-c.Min+1)
		branches *= width
		if branches > MaxBranches {
			return MaxBranches + 1
		}
	}
	return branches
}

// Probability validates the deck and returns the chance, as a percentage,
// of drawing a hand that satisfies every category.
func (d *Deck) Probability() (float64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	return odds.MultiCondition(d.Size, d.HandSize, d.Conditions()), nil
}

// Satisfied reports whether per-category counts, indexed like All, meet every
// category's range.
func (d *Deck) Satisfied(counts []int) bool {
	all := d.All()
	if len(counts) != len(all) {
		return false
	}
	for i, c := range all {
		if counts[i] < c.Min || counts[i] > c.Max {
			return false
		}
	}
	return true
}

func (c Category) label() string {
	if c.Name == "" {
		return "unnamed category"
	}
	return fmt.Sprintf("category %q", c.Name)
}
