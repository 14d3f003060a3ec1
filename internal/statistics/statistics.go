package statistics

import (
	"fmt"
	"math"
)

// z95 is the two-sided normal quantile for 95% confidence.
const z95 = 1.959963984540054

// Proportion tracks how many trials out of a run succeeded.
type Proportion struct {
	Trials int
	Hits   int
}

// Add records one trial.
func (p *Proportion) Add(hit bool) {
	p.Trials++
	if hit {
		p.Hits++
	}
}

// Merge folds another tally into p.
func (p *Proportion) Merge(other Proportion) {
	p.Trials += other.Trials
	p.Hits += other.Hits
}

// Rate returns the observed success fraction.
func (p Proportion) Rate() float64 {
	if p.Trials == 0 {
		return 0
	}
	return float64(p.Hits) / float64(p.Trials)
}

// Percent returns Rate as a percentage.
func (p Proportion) Percent() float64 {
	return p.Rate() * 100
}

// StdError returns the standard error of Percent.
func (p Proportion) StdError() float64 {
	if p.Trials == 0 {
		return 0
	}
	r := p.Rate()
	return math.Sqrt(r*(1-r)/float64(p.Trials)) * 100
}

// Wilson95 returns the 95% Wilson score interval in percent. Unlike the
// normal interval it stays inside [0, 100] when hits are 0 or all trials.
func (p Proportion) Wilson95() (float64, float64) {
	if p.Trials == 0 {
		return 0, 100
	}
	n := float64(p.Trials)
	r := p.Rate()
	z2 := z95 * z95

	center := (r + z2/(2*n)) / (1 + z2/n)
	margin := z95 * math.Sqrt(r*(1-r)/n+z2/(4*n*n)) / (1 + z2/n)

	lo := math.Max(0, center-margin)
	hi := math.Min(1, center+margin)
	return lo * 100, hi * 100
}

// Contains reports whether percent lies inside the Wilson interval.
func (p Proportion) Contains(percent float64) bool {
	lo, hi := p.Wilson95()
	return percent >= lo && percent <= hi
}

// Validate checks the tally is internally consistent.
func (p Proportion) Validate() error {
	if p.Trials < 0 || p.Hits < 0 {
		return fmt.Errorf("negative tally: trials=%d hits=%d", p.Trials, p.Hits)
	}
	if p.Hits > p.Trials {
		return fmt.Errorf("hits exceed trials: hits=%d trials=%d", p.Hits, p.Trials)
	}
	return nil
}

// String formats the tally as "12.34% ± 0.10% (n=100000)".
func (p Proportion) String() string {
	return fmt.Sprintf("%.2f%% ± %.2f%% (n=%d)", p.Percent(), z95*p.StdError(), p.Trials)
}
