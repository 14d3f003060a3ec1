package main

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/handodds/internal/config"
	"github.com/lox/handodds/internal/tui"
)

// EditCmd opens a deck in the interactive editor
type EditCmd struct {
	File string `arg:"" optional:"" default:"decks.hcl" help:"Deck file to edit, created on save" type:"path"`
	Deck string `short:"d" help:"Deck name within the file, added on save if missing"`
}

func (c *EditCmd) Run(g *Globals) error {
	file, err := config.Load(c.File)
	if err != nil {
		return err
	}

	name := c.Deck
	if name == "" && len(file.Decks) > 0 {
		name = file.Decks[0].Name
	}
	d, err := file.Deck(name)
	if err != nil {
		d = config.Default().Decks[0].Deck()
		d.Name = name
	}

	// The editor owns the terminal, so logs go to a file or nowhere
	logger := log.New(io.Discard)
	if g.LogLevel == "debug" {
		f, err := tea.LogToFile("handodds-debug.log", "")
		if err != nil {
			return err
		}
		defer f.Close()
		logger = log.New(f)
		logger.SetLevel(log.DebugLevel)
	}

	return tui.Run(tui.NewEditor(d, file, c.File, logger))
}
