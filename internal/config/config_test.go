package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/handodds/internal/deck"
)

const allureHCL = `
deck "allure" {
  size = 40
  hand = 5

  category "Allure" {
    amount = 1
    min    = 1
    max    = 1
  }

  category "DARK" {
    amount = 10
    min    = 1
    max    = 4
  }
}

deck "defaults" {
  category "Staple" {
    amount = 3
  }
}
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(allureHCL), "decks.hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{"allure", "defaults"}, f.Names())

	t.Run("explicit values", func(t *testing.T) {
		d, err := f.Deck("allure")
		require.NoError(t, err)
		assert.Equal(t, 40, d.Size)
		assert.Equal(t, 5, d.HandSize)
		assert.Equal(t, []deck.Category{
			{Name: "Allure", Amount: 1, Min: 1, Max: 1},
			{Name: "DARK", Amount: 10, Min: 1, Max: 4},
		}, d.Categories)
	})

	t.Run("defaults", func(t *testing.T) {
		d, err := f.Deck("defaults")
		require.NoError(t, err)
		assert.Equal(t, DefaultDeckSize, d.Size)
		assert.Equal(t, DefaultHandSize, d.HandSize)
		require.Len(t, d.Categories, 1)
		assert.Equal(t, deck.Category{Name: "Staple", Amount: 3, Min: 0, Max: 3}, d.Categories[0])
	})

	t.Run("lookup errors", func(t *testing.T) {
		_, err := f.Deck("missing")
		assert.ErrorIs(t, err, ErrDeckNotFound)

		_, err = f.Deck("")
		assert.ErrorIs(t, err, ErrDeckNotFound)

		_, err = (&File{}).Deck("")
		assert.ErrorIs(t, err, ErrNoDecks)
	})
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`deck "x" {`), "broken.hcl")
	assert.Error(t, err)

	_, err = Parse([]byte(`deck "x" { category "c" { min = 1 } }`), "missing.hcl")
	assert.Error(t, err, "amount is required")

	_, err = Parse([]byte(`deck "x" { colour = "red" }`), "unknown.hcl")
	assert.Error(t, err)
}

func TestLoadMissingFileUsesDefault(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	d, err := f.Deck("")
	require.NoError(t, err)
	assert.Equal(t, DefaultDeckSize, d.Size)
	assert.Equal(t, DefaultHandSize, d.HandSize)
	assert.Empty(t, d.Categories)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decks.hcl")
	require.NoError(t, Example().Save(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `deck "allure"`)
	assert.Contains(t, string(raw), `category "Dux or Phalanx"`)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Example(), loaded)

	ravine, err := loaded.Deck("ravine")
	require.NoError(t, err)
	p, err := ravine.Probability()
	require.NoError(t, err)
	assert.Greater(t, p, 0.0)
	assert.Less(t, p, 100.0)
}

func TestPut(t *testing.T) {
	f := Example()
	f.Put(deck.New("allure", 40, 6).Add("Allure", 1, 1, 1))
	f.Put(deck.New("new", 60, 5))

	assert.Equal(t, []string{"allure", "ravine", "new"}, f.Names())
	d, err := f.Deck("allure")
	require.NoError(t, err)
	assert.Equal(t, 6, d.HandSize)
	assert.Len(t, d.Categories, 1)
}
