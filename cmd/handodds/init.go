package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/handodds/internal/config"
)

var ErrFileExists = errors.New("file already exists, use --force to overwrite")

// InitCmd writes the example decks to a new deck file
type InitCmd struct {
	File  string `arg:"" optional:"" default:"decks.hcl" help:"Deck file to create" type:"path"`
	Force bool   `short:"f" help:"Overwrite an existing file"`
}

func (c *InitCmd) Run(logger *log.Logger) error {
	if _, err := os.Stat(c.File); err == nil && !c.Force {
		return fmt.Errorf("%s: %w", c.File, ErrFileExists)
	}

	f := config.Example()
	if err := f.Save(c.File); err != nil {
		return err
	}
	logger.Info("Wrote example decks", "file", c.File, "decks", f.Names())
	return nil
}
