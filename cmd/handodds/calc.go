package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// CalcCmd prints the exact probability of opening a deck's hand
type CalcCmd struct {
	DeckFlags `embed:""`
}

func (c *CalcCmd) Run(logger *log.Logger) error {
	d, err := c.Load()
	if err != nil {
		return err
	}

	p, err := d.Probability()
	if err != nil {
		return err
	}
	logger.Debug("Calculated probability", "deck", d.Name, "categories", len(d.Categories), "probability", p)

	if err := printDeck(os.Stdout, d); err != nil {
		return err
	}
	fmt.Printf("\nprobability  %s\n", formatPercent(p))
	return nil
}
