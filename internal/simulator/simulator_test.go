package simulator

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/handodds/internal/deck"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func allureDeck() *deck.Deck {
	return deck.New("allure", 40, 5).
		Add("Allure", 1, 1, 1).
		Add("DARK", 10, 1, 4)
}

func TestNew(t *testing.T) {
	sim := New(Config{Trials: 100, Seed: 12345, Logger: quietLogger()})
	require.NotNil(t, sim)
	assert.Equal(t, 100, sim.config.Trials)
	assert.Positive(t, sim.config.Workers)
	assert.Equal(t, int64(12345), sim.config.Seed)
}

func TestRun(t *testing.T) {
	d := allureDeck()
	want, err := d.Probability()
	require.NoError(t, err)

	sim := New(Config{Trials: 200_000, Workers: 4, Seed: 42, Logger: quietLogger()})
	result, err := sim.Run(context.Background(), d)
	require.NoError(t, err)

	assert.Equal(t, 200_000, result.Trials)
	assert.False(t, result.Exact)
	// 5 standard errors keeps a fixed-seed run well clear of flakiness.
	assert.InDelta(t, want, result.Percent(), 5*result.StdError())
}

func TestRunIsReproducible(t *testing.T) {
	d := allureDeck()
	cfg := Config{Trials: 20_000, Workers: 3, Seed: 7, Logger: quietLogger()}

	a, err := New(cfg).Run(context.Background(), d)
	require.NoError(t, err)
	b, err := New(cfg).Run(context.Background(), d)
	require.NoError(t, err)

	assert.Equal(t, a.Hits, b.Hits)
}

func TestRunErrors(t *testing.T) {
	t.Run("no trials", func(t *testing.T) {
		_, err := New(Config{Logger: quietLogger()}).Run(context.Background(), allureDeck())
		assert.ErrorIs(t, err, ErrNoTrials)
	})

	t.Run("invalid deck", func(t *testing.T) {
		d := deck.New("", 40, 5).Add("A", 2, 3, 3)
		_, err := New(Config{Trials: 10, Logger: quietLogger()}).Run(context.Background(), d)
		assert.ErrorIs(t, err, deck.ErrMinExceedsAmount)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := New(Config{Trials: 1000, Logger: quietLogger()}).Run(ctx, allureDeck())
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestEnumerate(t *testing.T) {
	t.Run("matches composer exactly", func(t *testing.T) {
		decks := []*deck.Deck{
			allureDeck(),
			deck.New("ravine", 40, 5).Add("Ravine", 5, 1, 5).Add("Dux or Phalanx", 6, 1, 6),
			deck.New("small", 15, 6).Add("A", 4, 1, 2).Add("B", 3, 0, 1).Add("C", 5, 2, 3),
		}
		for _, d := range decks {
			want, err := d.Probability()
			require.NoError(t, err)

			result, err := Enumerate(context.Background(), d)
			require.NoError(t, err, d.Name)
			assert.True(t, result.Exact)
			assert.InDelta(t, want, result.Percent(), 1e-9, d.Name)
		}
	})

	t.Run("counts every hand", func(t *testing.T) {
		result, err := Enumerate(context.Background(), allureDeck())
		require.NoError(t, err)
		assert.Equal(t, 658008, result.Trials)
		assert.Equal(t, 58500, result.Hits)
	})

	t.Run("refuses huge decks", func(t *testing.T) {
		_, err := Enumerate(context.Background(), deck.New("", 60, 15))
		assert.ErrorIs(t, err, ErrTooManyHands)
	})
}
