package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/handodds/internal/config"
	"github.com/lox/handodds/internal/deck"
	"github.com/lox/handodds/internal/tui"
)

var ErrBadCategory = errors.New("category must be name:amount[:min[:max]]")

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))
)

// DeckFlags select a deck from a file, optionally overridden on the command
// line.
type DeckFlags struct {
	File       string   `arg:"" optional:"" default:"decks.hcl" help:"Deck file" type:"path"`
	Deck       string   `short:"d" help:"Deck name within the file"`
	Size       *int     `short:"s" help:"Deck size (overrides the file)"`
	Hand       *int     `short:"n" help:"Hand size (overrides the file)"`
	Categories []string `name:"category" short:"c" sep:"none" help:"Category as name:amount[:min[:max]], replaces the file's categories"`
}

// Load resolves the selected deck. Categories given on the command line
// replace the file entirely.
func (f DeckFlags) Load() (*deck.Deck, error) {
	var d *deck.Deck
	if len(f.Categories) > 0 {
		d = deck.New("command line", config.DefaultDeckSize, config.DefaultHandSize)
		for _, s := range f.Categories {
			c, err := parseCategory(s)
			if err != nil {
				return nil, err
			}
			d.Categories = append(d.Categories, c)
		}
	} else {
		file, err := config.Load(f.File)
		if err != nil {
			return nil, err
		}
		name := f.Deck
		if name == "" && len(file.Decks) > 0 {
			name = file.Decks[0].Name
		}
		d, err = file.Deck(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.File, err)
		}
	}

	if f.Size != nil {
		d.Size = *f.Size
	}
	if f.Hand != nil {
		d.HandSize = *f.Hand
	}
	return d, nil
}

// parseCategory parses name:amount[:min[:max]]. Min defaults to 0 and max to
// the amount, as in deck files.
func parseCategory(s string) (deck.Category, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 4 || strings.TrimSpace(parts[0]) == "" {
		return deck.Category{}, fmt.Errorf("%q: %w", s, ErrBadCategory)
	}

	counts := make([]int, len(parts)-1)
	for i, p := range parts[1:] {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return deck.Category{}, fmt.Errorf("%q: %w", s, ErrBadCategory)
		}
		counts[i] = n
	}

	c := deck.Category{Name: strings.TrimSpace(parts[0]), Amount: counts[0], Max: counts[0]}
	if len(counts) > 1 {
		c.Min = counts[1]
	}
	if len(counts) > 2 {
		c.Max = counts[2]
	}
	return c, nil
}

// printDeck writes the deck's categories, including Miscellaneous, as an
// aligned table. Cells are padded as plain text before styling so escape
// codes never count towards column widths.
func printDeck(w io.Writer, d *deck.Deck) error {
	if _, err := fmt.Fprintf(w, "%s  %s\n\n",
		headerStyle.Render(d.Name),
		countStyle.Render(fmt.Sprintf("%d cards, draw %d", d.Size, d.HandSize))); err != nil {
		return err
	}

	rows := [][]string{{"category", "amount", "min", "max"}}
	for _, c := range d.All() {
		rows = append(rows, []string{c.Name, strconv.Itoa(c.Amount), strconv.Itoa(c.Min), strconv.Itoa(c.Max)})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			padded := cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			cells[i] = cellStyle(r, i, row[0]).Render(padded)
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " ")); err != nil {
			return err
		}
	}
	return nil
}

func cellStyle(row, col int, name string) lipgloss.Style {
	switch {
	case row == 0:
		return headerStyle
	case col > 0:
		return countStyle
	case name == deck.MiscellaneousName:
		return tui.MiscStyle
	default:
		return categoryStyle
	}
}

func formatPercent(p float64) string {
	return tui.ProbabilityStyle(p).Render(fmt.Sprintf("%.2f%%", p))
}
