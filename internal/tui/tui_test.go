package tui

import (
	"io"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/handodds/internal/config"
	"github.com/lox/handodds/internal/deck"
)

const allurePercent = 100 * 58500.0 / 658008.0

func newTestEditor(t *testing.T, path string) *Editor {
	t.Helper()

	f := config.Example()
	d, err := f.Deck("allure")
	require.NoError(t, err)
	return NewEditor(d, f, path, log.New(io.Discard))
}

func press(t *testing.T, e *Editor, msgs ...tea.KeyMsg) tea.Cmd {
	t.Helper()

	var cmd tea.Cmd
	for _, msg := range msgs {
		var model tea.Model
		model, cmd = e.Update(msg)
		require.Same(t, e, model)
	}
	return cmd
}

func typeText(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEditorInitialState(t *testing.T) {
	e := newTestEditor(t, "")

	p, err := e.Probability()
	require.NoError(t, err)
	assert.InEpsilon(t, allurePercent, p, 1e-9)
	assert.Equal(t, 2, e.Categories())

	row, col := e.Focus()
	assert.Equal(t, 0, row)
	assert.Equal(t, ColDeckSize, col)

	view := e.View()
	assert.Contains(t, view, "Miscellaneous")
	assert.Contains(t, view, "8.89%")
}

func TestEditorTypingRecalculates(t *testing.T) {
	e := newTestEditor(t, "")

	press(t, e,
		tea.KeyMsg{Type: tea.KeyBackspace},
		tea.KeyMsg{Type: tea.KeyBackspace},
		typeText("30"),
	)

	d, err := e.Deck()
	require.NoError(t, err)
	assert.Equal(t, 30, d.Size)
	assert.Equal(t, 19, d.Miscellaneous().Amount)

	p, err := e.Probability()
	require.NoError(t, err)
	want, err := d.Probability()
	require.NoError(t, err)
	assert.Equal(t, want, p)
	assert.Greater(t, p, allurePercent, "a thinner deck finds the single card more often")
}

func TestEditorInvalidInput(t *testing.T) {
	e := newTestEditor(t, "")

	// deck size, hand size, row 1 name, row 1 amount
	press(t, e,
		tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeyTab},
	)
	row, col := e.Focus()
	require.Equal(t, 1, row)
	require.Equal(t, ColAmount, col)

	press(t, e, typeText("x"))
	_, err := e.Probability()
	require.ErrorIs(t, err, ErrNotANumber)
	assert.Contains(t, err.Error(), "row 1 amount")
	assert.Contains(t, e.View(), "row 1 amount must be a whole number")

	press(t, e, tea.KeyMsg{Type: tea.KeyBackspace})
	_, err = e.Probability()
	assert.NoError(t, err)
}

func TestEditorRejectsInvalidDeck(t *testing.T) {
	e := newTestEditor(t, "")

	e.SetField(2, ColMin, "5")
	_, err := e.Probability()
	require.ErrorIs(t, err, deck.ErrMinExceedsMax)
	assert.Contains(t, err.Error(), "DARK")

	e.SetField(2, ColMin, "1")
	_, err = e.Probability()
	assert.NoError(t, err)
}

func TestEditorRejectsOversizedDeck(t *testing.T) {
	d := deck.New("wide", 200, 60)
	for i := 0; i < 10; i++ {
		d.Add("c", 20, 0, 20)
	}
	e := NewEditor(d, nil, "", log.New(io.Discard))

	_, err := e.Probability()
	require.ErrorIs(t, err, deck.ErrTooComplex)
	assert.Contains(t, e.View(), "too many category combinations")
}

func TestEditorClampsCounts(t *testing.T) {
	e := newTestEditor(t, "")

	e.SetField(2, ColAmount, "500")
	d, err := e.Deck()
	require.NoError(t, err)
	assert.Equal(t, 40, d.Categories[1].Amount)
}

func TestEditorFocusWraps(t *testing.T) {
	e := newTestEditor(t, "")

	press(t, e, tea.KeyMsg{Type: tea.KeyShiftTab})
	row, col := e.Focus()
	assert.Equal(t, 2, row)
	assert.Equal(t, ColMax, col)

	press(t, e, tea.KeyMsg{Type: tea.KeyTab})
	row, col = e.Focus()
	assert.Equal(t, 0, row)
	assert.Equal(t, ColDeckSize, col)

	press(t, e, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	row, _ = e.Focus()
	assert.Equal(t, 2, row, "down stops at the last row")
}

func TestEditorAddAndRemove(t *testing.T) {
	e := newTestEditor(t, "")

	press(t, e, tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Equal(t, 3, e.Categories())
	row, col := e.Focus()
	assert.Equal(t, 3, row)
	assert.Equal(t, ColName, col)

	press(t, e, typeText("Terraforming"))
	d, err := e.Deck()
	require.NoError(t, err)
	assert.Equal(t, deck.Category{Name: "Terraforming", Amount: 1, Min: 1, Max: 1}, d.Categories[2])

	press(t, e, tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.Equal(t, 2, e.Categories())
	row, _ = e.Focus()
	assert.Equal(t, 2, row)

	p, err := e.Probability()
	require.NoError(t, err)
	assert.InEpsilon(t, allurePercent, p, 1e-9)

	// Out of range rows are ignored
	e.RemoveCategory(-1)
	assert.Equal(t, 2, e.Categories())
}

func TestEditorSave(t *testing.T) {
	t.Run("writes deck file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "decks.hcl")
		e := newTestEditor(t, path)
		e.SetField(0, ColHandSize, "6")

		press(t, e, tea.KeyMsg{Type: tea.KeyCtrlS})
		assert.Contains(t, e.Status(), "Saved allure")

		f, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"allure", "ravine"}, f.Names())

		d, err := f.Deck("allure")
		require.NoError(t, err)
		assert.Equal(t, 6, d.HandSize)
	})

	t.Run("without path", func(t *testing.T) {
		e := newTestEditor(t, "")
		assert.ErrorIs(t, e.Save(), ErrNoPath)

		press(t, e, tea.KeyMsg{Type: tea.KeyCtrlS})
		_, err := e.Probability()
		assert.ErrorIs(t, err, ErrNoPath)
	})
}

func TestEditorQuit(t *testing.T) {
	e := newTestEditor(t, "")

	cmd := press(t, e, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, e.View())
}

func TestProbabilityStyle(t *testing.T) {
	tests := []struct {
		percent float64
		want    string
	}{
		{99, "#4ADE80"},
		{75, "#4ADE80"},
		{60, "#FACC15"},
		{25, "#FB923C"},
		{8.89, "#DC2626"},
		{0, "#DC2626"},
	}

	for _, tt := range tests {
		got := ProbabilityStyle(tt.percent).GetForeground()
		assert.Equal(t, lipgloss.Color(tt.want), got, "percent %v", tt.percent)
	}
}
