package statistics

import (
	"math"
	"testing"
)

func TestProportion_Empty(t *testing.T) {
	var p Proportion

	if p.Rate() != 0 {
		t.Errorf("Expected rate of 0 for empty tally, got %f", p.Rate())
	}
	if p.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty tally, got %f", p.StdError())
	}
	lo, hi := p.Wilson95()
	if lo != 0 || hi != 100 {
		t.Errorf("Expected [0, 100] interval for empty tally, got [%f, %f]", lo, hi)
	}
}

func TestProportion_Add(t *testing.T) {
	var p Proportion
	for i := 0; i < 100; i++ {
		p.Add(i%4 == 0)
	}

	if p.Trials != 100 {
		t.Errorf("Expected 100 trials, got %d", p.Trials)
	}
	if p.Hits != 25 {
		t.Errorf("Expected 25 hits, got %d", p.Hits)
	}
	if math.Abs(p.Percent()-25) > 1e-9 {
		t.Errorf("Expected 25%%, got %f", p.Percent())
	}
	// sqrt(0.25*0.75/100) = 0.0433
	if math.Abs(p.StdError()-4.3301) > 1e-3 {
		t.Errorf("Expected stderr of 4.3301, got %f", p.StdError())
	}
}

func TestProportion_Merge(t *testing.T) {
	a := Proportion{Trials: 10, Hits: 3}
	b := Proportion{Trials: 30, Hits: 7}
	a.Merge(b)

	if a.Trials != 40 || a.Hits != 10 {
		t.Errorf("Expected 10/40 after merge, got %d/%d", a.Hits, a.Trials)
	}
}

func TestProportion_Wilson95(t *testing.T) {
	p := Proportion{Trials: 1000, Hits: 500}
	lo, hi := p.Wilson95()

	if lo >= 50 || hi <= 50 {
		t.Errorf("Expected interval around 50, got [%f, %f]", lo, hi)
	}
	if math.Abs((hi-lo)/2-3.09) > 0.05 {
		t.Errorf("Expected half-width near 3.09, got %f", (hi-lo)/2)
	}

	none := Proportion{Trials: 200}
	lo, hi = none.Wilson95()
	if lo > 1e-9 {
		t.Errorf("Expected lower bound 0 with no hits, got %f", lo)
	}
	if hi <= 0 || hi > 3 {
		t.Errorf("Expected small positive upper bound with no hits, got %f", hi)
	}

	if !p.Contains(50) {
		t.Error("Expected interval to contain 50")
	}
	if p.Contains(60) {
		t.Error("Expected interval to exclude 60")
	}
}

func TestProportion_Validate(t *testing.T) {
	if err := (Proportion{Trials: 5, Hits: 5}).Validate(); err != nil {
		t.Errorf("Expected valid tally, got %v", err)
	}
	if err := (Proportion{Trials: 5, Hits: 6}).Validate(); err == nil {
		t.Error("Expected error when hits exceed trials")
	}
	if err := (Proportion{Trials: -1}).Validate(); err == nil {
		t.Error("Expected error for negative trials")
	}
}
