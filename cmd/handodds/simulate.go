package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/handodds/internal/randutil"
	"github.com/lox/handodds/internal/simulator"
)

// SimulateCmd checks the calculated probability against dealt hands
type SimulateCmd struct {
	DeckFlags `embed:""`

	Trials     int    `short:"t" default:"100000" help:"Number of hands to deal"`
	Workers    int    `short:"w" help:"Number of workers (defaults to the CPU count, at most 8)"`
	Seed       *int64 `help:"Random seed for reproducible results"`
	Exhaustive bool   `short:"x" help:"Visit every possible hand instead of sampling"`
}

func (c *SimulateCmd) Run(logger *log.Logger) error {
	d, err := c.Load()
	if err != nil {
		return err
	}
	exact, err := d.Probability()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var result simulator.Result
	if c.Exhaustive {
		logger.Info("Enumerating hands", "deck", d.Name, "size", d.Size, "hand", d.HandSize)
		result, err = simulator.Enumerate(ctx, d)
	} else {
		seed := randutil.Seed(c.Seed)
		logger.Info("Dealing hands", "deck", d.Name, "trials", c.Trials, "seed", seed)
		result, err = simulator.New(simulator.Config{
			Trials:  c.Trials,
			Workers: c.Workers,
			Seed:    seed,
			Logger:  logger,
		}).Run(ctx, d)
	}
	if err != nil {
		return err
	}

	if err := printDeck(os.Stdout, d); err != nil {
		return err
	}
	return printResult(os.Stdout, exact, result)
}

func printResult(w io.Writer, exact float64, result simulator.Result) error {
	lo, hi := result.Wilson95()

	lines := []string{
		fmt.Sprintf("\ncalculated  %s", formatPercent(exact)),
	}
	if result.Exact {
		lines = append(lines,
			fmt.Sprintf("enumerated  %s  (%d of %d hands)", formatPercent(result.Percent()), result.Hits, result.Trials))
	} else {
		verdict := categoryStyle.Render("within the 95% interval")
		if !result.Contains(exact) {
			verdict = headerStyle.Render("outside the 95% interval")
		}
		lines = append(lines,
			fmt.Sprintf("simulated   %s", formatPercent(result.Percent())),
			fmt.Sprintf("interval    %.2f%% to %.2f%%, %s", lo, hi, verdict),
			fmt.Sprintf("seed        %d", result.Seed))
	}
	lines = append(lines, fmt.Sprintf("\n%d hands in %v", result.Trials, result.Duration.Truncate(time.Millisecond)))

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
