package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/lox/handodds/internal/deck"
	"github.com/lox/handodds/internal/fileutil"
)

const (
	DefaultDeckSize = 40
	DefaultHandSize = 5
)

var (
	ErrDeckNotFound = errors.New("deck not found")
	ErrNoDecks      = errors.New("file defines no decks")
)

// File represents a deck file
type File struct {
	Decks []DeckConfig `hcl:"deck,block"`
}

// DeckConfig defines one deck and the categories to look for in a hand
type DeckConfig struct {
	Name       string           `hcl:"name,label"`
	Size       *int             `hcl:"size,optional"`
	Hand       *int             `hcl:"hand,optional"`
	Categories []CategoryConfig `hcl:"category,block"`
}

// CategoryConfig defines a category within a deck
type CategoryConfig struct {
	Name   string `hcl:"name,label"`
	Amount int    `hcl:"amount"`
	Min    *int   `hcl:"min,optional"`
	Max    *int   `hcl:"max,optional"`
}

// Default returns a file with a single empty deck of default size
func Default() *File {
	return &File{
		Decks: []DeckConfig{{Name: "default", Size: intPtr(DefaultDeckSize), Hand: intPtr(DefaultHandSize)}},
	}
}

// Example returns the two worked examples: one copy of Allure of Darkness
// with at least one of ten DARK monsters, and one of five Dragon Ravine
// with at least one Dux or Phalanx.
func Example() *File {
	return FromDecks(
		deck.New("allure", 40, 5).
			Add("Allure", 1, 1, 1).
			Add("DARK", 10, 1, 4),
		deck.New("ravine", 40, 5).
			Add("Ravine", 5, 1, 5).
			Add("Dux or Phalanx", 6, 1, 6),
	)
}

// Load loads a deck file. A missing file yields Default.
func Load(filename string) (*File, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	return decode(file.Body)
}

// Parse decodes a deck file held in memory. filename is only used in
// diagnostics.
func Parse(src []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file.Body)
}

func decode(body hcl.Body) (*File, error) {
	var f File
	if diags := gohcl.DecodeBody(body, nil, &f); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	for i := range f.Decks {
		d := &f.Decks[i]
		if d.Size == nil {
			d.Size = intPtr(DefaultDeckSize)
		}
		if d.Hand == nil {
			d.Hand = intPtr(DefaultHandSize)
		}
		for j := range d.Categories {
			c := &d.Categories[j]
			if c.Min == nil {
				c.Min = intPtr(0)
			}
			if c.Max == nil {
				c.Max = intPtr(c.Amount)
			}
		}
	}

	return &f, nil
}

// Names returns the deck names in file order
func (f *File) Names() []string {
	names := make([]string, len(f.Decks))
	for i, d := range f.Decks {
		names[i] = d.Name
	}
	return names
}

// Deck returns the named deck. An empty name selects the only deck of a
// single-deck file.
func (f *File) Deck(name string) (*deck.Deck, error) {
	if len(f.Decks) == 0 {
		return nil, ErrNoDecks
	}
	if name == "" {
		if len(f.Decks) > 1 {
			return nil, fmt.Errorf("%w: file has %d decks, pick one of %v", ErrDeckNotFound, len(f.Decks), f.Names())
		}
		return f.Decks[0].Deck(), nil
	}
	for _, d := range f.Decks {
		if d.Name == name {
			return d.Deck(), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrDeckNotFound, name)
}

// Deck converts the block into a deck model
func (c DeckConfig) Deck() *deck.Deck {
	d := deck.New(c.Name, deref(c.Size, DefaultDeckSize), deref(c.Hand, DefaultHandSize))
	for _, cat := range c.Categories {
		d.Add(cat.Name, cat.Amount, deref(cat.Min, 0), deref(cat.Max, cat.Amount))
	}
	return d
}

// FromDecks builds a file holding the given decks
func FromDecks(decks ...*deck.Deck) *File {
	f := &File{}
	for _, d := range decks {
		dc := DeckConfig{Name: d.Name, Size: intPtr(d.Size), Hand: intPtr(d.HandSize)}
		for _, c := range d.Categories {
			dc.Categories = append(dc.Categories, CategoryConfig{
				Name:   c.Name,
				Amount: c.Amount,
				Min:    intPtr(c.Min),
				Max:    intPtr(c.Max),
			})
		}
		f.Decks = append(f.Decks, dc)
	}
	return f
}

// Bytes renders the file as HCL
func (f *File) Bytes() []byte {
	out := hclwrite.NewEmptyFile()
	root := out.Body()

	for i, d := range f.Decks {
		if i > 0 {
			root.AppendNewline()
		}
		block := root.AppendNewBlock("deck", []string{d.Name}).Body()
		block.SetAttributeValue("size", cty.NumberIntVal(int64(deref(d.Size, DefaultDeckSize))))
		block.SetAttributeValue("hand", cty.NumberIntVal(int64(deref(d.Hand, DefaultHandSize))))

		for _, c := range d.Categories {
			block.AppendNewline()
			cat := block.AppendNewBlock("category", []string{c.Name}).Body()
			cat.SetAttributeValue("amount", cty.NumberIntVal(int64(c.Amount)))
			cat.SetAttributeValue("min", cty.NumberIntVal(int64(deref(c.Min, 0))))
			cat.SetAttributeValue("max", cty.NumberIntVal(int64(deref(c.Max, c.Amount))))
		}
	}

	return hclwrite.Format(out.Bytes())
}

// Save writes the file atomically
func (f *File) Save(filename string) error {
	if err := fileutil.WriteFileAtomic(filename, f.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to save deck file: %w", err)
	}
	return nil
}

// Put replaces the deck with the same name, or appends it
func (f *File) Put(d *deck.Deck) {
	dc := FromDecks(d).Decks[0]
	for i := range f.Decks {
		if f.Decks[i].Name == d.Name {
			f.Decks[i] = dc
			return
		}
	}
	f.Decks = append(f.Decks, dc)
}

func intPtr(v int) *int {
	return &v
}

func deref(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}
