package simulator

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/handodds/internal/deck"
	"github.com/lox/handodds/internal/randutil"
	"github.com/lox/handodds/internal/statistics"
)

// checkEvery is how many trials a worker runs between context checks.
const checkEvery = 4096

var ErrNoTrials = errors.New("trials must be positive")

// Config holds configuration for a Monte Carlo run
type Config struct {
	Trials  int
	Workers int
	Seed    int64
	Logger  *log.Logger
}

// Result summarises an estimate of a deck's probability
type Result struct {
	statistics.Proportion
	Seed     int64
	Duration time.Duration
	Exact    bool
}

// Simulator estimates deck probabilities by dealing random hands
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = min(runtime.NumCPU(), 8)
	}
	logger := config.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Simulator{config: config, logger: logger.WithPrefix("simulator")}
}

// Run deals config.Trials hands from d across the worker pool and counts the
// hands that satisfy every category.
func (s *Simulator) Run(ctx context.Context, d *deck.Deck) (Result, error) {
	if s.config.Trials <= 0 {
		return Result{}, ErrNoTrials
	}
	if err := d.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid deck: %w", err)
	}

	workers := min(s.config.Workers, s.config.Trials)
	perWorker := s.config.Trials / workers
	remainder := s.config.Trials % workers

	s.logger.Debug("Starting simulation",
		"deck", d.Name,
		"trials", s.config.Trials,
		"workers", workers,
		"seed", s.config.Seed)

	start := time.Now()
	tallies := make([]statistics.Proportion, workers)
	g, ctx := errgroup.WithContext(ctx)

	for w := 0; w < workers; w++ {
		trials := perWorker
		if w < remainder {
			trials++
		}
		seed := randutil.Split(s.config.Seed, w)

		g.Go(func() error {
			tally, err := runWorker(ctx, d, trials, seed)
			tallies[w] = tally
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("simulation aborted: %w", err)
	}

	result := Result{Seed: s.config.Seed, Duration: time.Since(start)}
	for _, tally := range tallies {
		result.Merge(tally)
	}
	if err := result.Validate(); err != nil {
		return Result{}, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.logger.Debug("Simulation complete",
		"hits", result.Hits,
		"trials", result.Trials,
		"duration", result.Duration)
	return result, nil
}

func runWorker(ctx context.Context, d *deck.Deck, trials int, seed int64) (statistics.Proportion, error) {
	var tally statistics.Proportion
	pile := deck.NewPile(d, randutil.New(seed))
	counts := make([]int, len(d.All()))

	for i := 0; i < trials; i++ {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return tally, err
			}
		}
		pile.Draw(d.HandSize, counts)
		tally.Add(d.Satisfied(counts))
	}
	return tally, nil
}
